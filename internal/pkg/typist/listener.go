package typist

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
	"github.com/kitara-midi/kitara/internal/pkg/keyboard"
	"github.com/kitara-midi/kitara/internal/pkg/logger"
	"github.com/kitara-midi/kitara/internal/pkg/midi"
	"github.com/kitara-midi/kitara/internal/pkg/midi/driver"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

var ConnectionLost = errors.New("midi connection lost")

// Diagnostic describes one processed note message.
type Diagnostic struct {
	GuitarString int // -1 when channel is not assigned to any string
	Fret         int
	Channel      uint8
	Note         int
	Token        fretboard.Token
	Status       midi.Status
	Emitted      keyboard.Action // keyboard call made, empty when none
	Err          error
}

func (d Diagnostic) String() string {
	if errors.Is(d.Err, fretboard.UnknownChannel) {
		return fmt.Sprintf("Failed mapping channel %d", d.Channel)
	}
	return fmt.Sprintf(
		"string=%d, fret=%d, channel=%d, note=%d, key=%s, action=%s",
		d.GuitarString, d.Fret, d.Channel, d.Note, d.Token, d.Status,
	)
}

func (d Diagnostic) fields() []zap.Field {
	return []zap.Field{
		zap.Int("string", d.GuitarString),
		zap.Int("fret", d.Fret),
		zap.Uint8("channel", d.Channel),
		zap.Int("note", d.Note),
		zap.String("key", d.Token.String()),
		zap.String("action", d.Status.String()),
	}
}

// Listener turns incoming midi messages into keyboard actions.
// Messages are handled one at a time, in order of arrival.
type Listener struct {
	mapping     *fretboard.Mapping
	keyboard    keyboard.Keyboard
	diagnostics chan<- Diagnostic
}

// NewListener creates listener, diagnostics channel is optional and never blocks processing.
func NewListener(mapping *fretboard.Mapping, kbd keyboard.Keyboard, diagnostics chan<- Diagnostic) *Listener {
	return &Listener{
		mapping:     mapping,
		keyboard:    kbd,
		diagnostics: diagnostics,
	}
}

// Process handles single raw message, ok is false for messages other than note on/off.
func (l *Listener) Process(raw []byte) (Diagnostic, bool) {
	msg, ok := midi.Decode(raw)
	if !ok {
		return Diagnostic{}, false
	}
	log.Info(midi.Event(raw).String(), logger.Midi)

	d := Diagnostic{
		GuitarString: -1,
		Channel:      msg.Channel,
		Note:         msg.Note,
		Status:       msg.Status,
	}

	str, ok := l.mapping.StringForChannel(msg.Channel)
	if !ok {
		d.Err = fmt.Errorf("%w: %d", fretboard.UnknownChannel, msg.Channel)
		log.Info(d.String(), zap.Uint8("channel", d.Channel), zap.Int("note", d.Note), logger.Warning)
		l.publish(d)
		return d, true
	}
	d.GuitarString = str

	fret, err := fretboard.Resolve(str, msg.Note)
	d.Fret = fret
	if err != nil {
		d.Err = err
		log.Info(fmt.Sprintf("%s, discarded: %v", d, err), append(d.fields(), logger.Warning)...)
		l.publish(d)
		return d, true
	}

	d.Token = l.mapping.TokenAt(str, fret)
	d.Emitted, err = Dispatch(l.keyboard, d.Token, d.Status)
	if err != nil {
		d.Err = err
		log.Info(fmt.Sprintf("keyboard action failed for \"%s\": %v", d.Token, err), append(d.fields(), logger.Warning)...)
	}

	if d.Token.IsMapped() {
		log.Info(d.String(), append(d.fields(), logger.Action)...)
	} else {
		log.Info(d.String(), append(d.fields(), logger.Unassigned)...)
	}
	l.publish(d)
	return d, true
}

func (l *Listener) publish(d Diagnostic) {
	if l.diagnostics == nil {
		return
	}
	select {
	case l.diagnostics <- d:
	default:
	}
}

// Run opens the input and processes its messages until context is done or input is closed.
// Input is always closed on return.
func (l *Listener) Run(ctx context.Context, in driver.MIDIIn) error {
	err := in.Open()
	if err != nil {
		return fmt.Errorf("failed to open \"%s\": %w", in.Name(), err)
	}
	log.Info("Listening", zap.String("device_name", in.Name()), logger.Debug)

	messages := in.ReceiveChannel()
	for {
		select {
		case <-ctx.Done():
			log.Info("Listening stopped", zap.String("device_name", in.Name()), logger.Debug)
			return in.Close()
		case raw, ok := <-messages:
			if !ok {
				_ = in.Close()
				return fmt.Errorf("%w: %s", ConnectionLost, in.Name())
			}
			l.Process(raw)
		}
	}
}
