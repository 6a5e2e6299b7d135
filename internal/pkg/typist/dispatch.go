package typist

import (
	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
	"github.com/kitara-midi/kitara/internal/pkg/keyboard"
	"github.com/kitara-midi/kitara/internal/pkg/midi"
)

// Dispatch performs keyboard action for given token and note status, returns action made
// (empty when none).
//
// Modifiers follow the note: press emits key down, release emits key up.
// Every other mapped token is clicked on press only, release is ignored.
// Unmapped tokens never reach the keyboard.
func Dispatch(kbd keyboard.Keyboard, t fretboard.Token, status midi.Status) (keyboard.Action, error) {
	switch t.Kind {
	case fretboard.Modifier:
		if status == midi.Press {
			return keyboard.Down, kbd.KeyDown(t)
		}
		return keyboard.Up, kbd.KeyUp(t)
	case fretboard.Whitespace, fretboard.Character:
		if status == midi.Press {
			return keyboard.Click, kbd.KeyClick(t)
		}
		return "", nil
	default:
		return "", nil
	}
}
