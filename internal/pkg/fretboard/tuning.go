package fretboard

import (
	"errors"
	"fmt"
)

// Tuning holds open string notes, high string first: E4 B3 G3 D3 A2 E2
var Tuning = [NumStrings]int{64, 59, 55, 50, 45, 40}

var OutOfRangeFret = errors.New("fret outside of fretboard")

// Resolve returns fret played on given string for absolute MIDI note.
// Computed fret is returned along with OutOfRangeFret error for notes not playable on the string.
func Resolve(str, note int) (int, error) {
	if str < 0 || str >= NumStrings {
		return 0, fmt.Errorf("string index %d outside of 0-%d range", str, NumStrings-1)
	}
	fret := note - Tuning[str]
	if fret < 0 || fret >= NumFrets {
		return fret, fmt.Errorf("%w: string %d, note %d, fret %d", OutOfRangeFret, str, note, fret)
	}
	return fret, nil
}
