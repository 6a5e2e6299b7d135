package midi

const (
	StatusRelease uint8 = 0b1000
	StatusPress   uint8 = 0b1001
)

type Status uint8

const (
	Release Status = iota
	Press
)

func (s Status) String() string {
	switch s {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "???"
	}
}

// NoteMessage is a decoded note-on/note-off message.
// Note is widened to int as it takes part in fret arithmetic.
type NoteMessage struct {
	Channel uint8 // 1-16
	Status  Status
	Note    int
}

// Decode extracts note message out of raw midi bytes.
// Messages shorter than 2 bytes and messages other than note-on/note-off are ignored (ok=false).
// Note-on with zero velocity is kept as press, controllers are expected to send note-off.
func Decode(raw []byte) (NoteMessage, bool) {
	if len(raw) < 2 {
		return NoteMessage{}, false
	}

	msg := NoteMessage{
		Channel: raw[0]&0x0F + 1,
		Note:    int(raw[1]),
	}

	switch raw[0] >> 4 {
	case StatusPress:
		msg.Status = Press
	case StatusRelease:
		msg.Status = Release
	default:
		return NoteMessage{}, false
	}
	return msg, true
}
