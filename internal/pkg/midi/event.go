package midi

import (
	"fmt"
)

const (
	// message types
	NoteOff uint8 = 0b1000 << 4
	NoteOn  uint8 = 0b1001 << 4
)

func noteToString(note byte) string {
	return fmt.Sprintf("%-2s%2d", NoteToPitch(note), NoteToOctave(note))
}

// Event is a raw midi message as delivered by the driver
type Event []byte

// String renders note messages, velocity is shown as "---" when message carries none.
func (e Event) String() string {
	if len(e) == 0 {
		return "Warning: empty Midi event"
	}
	if len(e) < 2 {
		return unexpected(e)
	}

	velocity := "---"
	if len(e) > 2 {
		velocity = fmt.Sprintf("%3d", e[2])
	}
	channel := e[0]&0b1111 + 1

	switch e[0] & 0b11110000 {
	case NoteOff:
		return fmt.Sprintf("Note Off: %s (channel: %2d, velocity: %s)", noteToString(e[1]), channel, velocity)
	case NoteOn:
		return fmt.Sprintf("Note On : %s (channel: %2d, velocity: %s)", noteToString(e[1]), channel, velocity)
	default:
		return unexpected(e)
	}
}

func unexpected(e Event) string {
	msg := "Unexpected event format: "
	for _, v := range e {
		msg += fmt.Sprintf("0x%02x ", v)
	}
	return msg
}

func NoteEvent(messageType, channel, note, velocity uint8) Event {
	return Event{messageType | channel, note, velocity}
}
