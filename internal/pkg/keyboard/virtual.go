package keyboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
)

const (
	keyReleased int32 = 0
	keyPressed  int32 = 1

	busVirtual uint16 = 0x06
)

type eventWriter interface {
	WriteOne(event *evdev.InputEvent) error
	Close() error
}

// Virtual is a uinput backed keyboard, one instance is kept for the process lifetime.
// Calls are serialized, so sequences like shift+key never interleave.
type Virtual struct {
	mutex        sync.Mutex
	dev          eventWriter
	shiftPressed bool // shift modifier held down by KeyDown
}

// NewVirtual creates virtual keyboard device (requires write access to /dev/uinput).
func NewVirtual(name string) (*Virtual, error) {
	dev, err := evdev.CreateDevice(
		name,
		evdev.InputID{
			BusType: busVirtual,
			Vendor:  0x4b54, // "KT"
			Product: 0x0001,
			Version: 1,
		},
		map[evdev.EvType][]evdev.EvCode{
			evdev.EV_KEY: supportedCodes(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual keyboard: %w", err)
	}

	// newly created device is not picked up by the system immediately
	time.Sleep(time.Millisecond * 200)

	return &Virtual{dev: dev}, nil
}

func (v *Virtual) Close() error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.dev.Close()
}

func (v *Virtual) KeyDown(t fretboard.Token) error {
	return v.send(t, keyPressed)
}

func (v *Virtual) KeyUp(t fretboard.Token) error {
	return v.send(t, keyReleased)
}

func (v *Virtual) KeyClick(t fretboard.Token) error {
	return v.send(t, keyPressed, keyReleased)
}

type keyStroke struct {
	code  evdev.EvCode
	shift bool
}

func resolve(t fretboard.Token) (keyStroke, error) {
	switch t.Kind {
	case fretboard.Modifier, fretboard.Whitespace:
		code, ok := LookupKey(t.Key)
		if !ok {
			return keyStroke{}, fmt.Errorf("no key code for %s", t.Key)
		}
		return keyStroke{code: code}, nil
	case fretboard.Character:
		code, shift, ok := LookupRune(t.Char)
		if !ok {
			return keyStroke{}, fmt.Errorf("character %q not available in keyboard layout", t.Char)
		}
		return keyStroke{code: code, shift: shift}, nil
	default:
		return keyStroke{}, fmt.Errorf("token is not mapped")
	}
}

// send emits given key values in order, shifted characters are wrapped with shift press/release
// unless shift modifier is already held.
func (v *Virtual) send(t fretboard.Token, values ...int32) error {
	stroke, err := resolve(t)
	if err != nil {
		return err
	}

	v.mutex.Lock()
	defer v.mutex.Unlock()

	if stroke.shift && v.shiftPressed {
		stroke.shift = false
	}

	for _, value := range values {
		if stroke.shift && value == keyPressed {
			err = v.write(evdev.KEY_LEFTSHIFT, keyPressed)
			if err != nil {
				return err
			}
		}
		err = v.write(stroke.code, value)
		if err != nil {
			return err
		}
		if stroke.shift && value == keyReleased {
			err = v.write(evdev.KEY_LEFTSHIFT, keyReleased)
			if err != nil {
				return err
			}
		}
		if t.Kind == fretboard.Modifier && t.Key == fretboard.Shift {
			v.shiftPressed = value == keyPressed
		}
	}
	return nil
}

func (v *Virtual) write(code evdev.EvCode, value int32) error {
	err := v.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value})
	if err != nil {
		return fmt.Errorf("failed to write key event: %w", err)
	}
	err = v.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0})
	if err != nil {
		return fmt.Errorf("failed to write sync event: %w", err)
	}
	return nil
}
