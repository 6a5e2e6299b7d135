package keyboard

import (
	"github.com/holoplot/go-evdev"
	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
)

var namedKeys = map[fretboard.Key]evdev.EvCode{
	fretboard.Shift:   evdev.KEY_LEFTSHIFT,
	fretboard.Control: evdev.KEY_LEFTCTRL,
	fretboard.Alt:     evdev.KEY_LEFTALT,
	fretboard.Meta:    evdev.KEY_LEFTMETA,

	fretboard.Space:      evdev.KEY_SPACE,
	fretboard.Tab:        evdev.KEY_TAB,
	fretboard.Backspace:  evdev.KEY_BACKSPACE,
	fretboard.Enter:      evdev.KEY_ENTER,
	fretboard.Escape:     evdev.KEY_ESC,
	fretboard.ArrowLeft:  evdev.KEY_LEFT,
	fretboard.ArrowUp:    evdev.KEY_UP,
	fretboard.ArrowRight: evdev.KEY_RIGHT,
	fretboard.ArrowDown:  evdev.KEY_DOWN,
}

type layoutKey struct {
	code  evdev.EvCode
	shift bool
}

// US layout
var runeKeys = map[rune]layoutKey{
	'1': {evdev.KEY_1, false}, '!': {evdev.KEY_1, true},
	'2': {evdev.KEY_2, false}, '@': {evdev.KEY_2, true},
	'3': {evdev.KEY_3, false}, '#': {evdev.KEY_3, true},
	'4': {evdev.KEY_4, false}, '$': {evdev.KEY_4, true},
	'5': {evdev.KEY_5, false}, '%': {evdev.KEY_5, true},
	'6': {evdev.KEY_6, false}, '^': {evdev.KEY_6, true},
	'7': {evdev.KEY_7, false}, '&': {evdev.KEY_7, true},
	'8': {evdev.KEY_8, false}, '*': {evdev.KEY_8, true},
	'9': {evdev.KEY_9, false}, '(': {evdev.KEY_9, true},
	'0': {evdev.KEY_0, false}, ')': {evdev.KEY_0, true},

	'-': {evdev.KEY_MINUS, false}, '_': {evdev.KEY_MINUS, true},
	'=': {evdev.KEY_EQUAL, false}, '+': {evdev.KEY_EQUAL, true},
	'[': {evdev.KEY_LEFTBRACE, false}, '{': {evdev.KEY_LEFTBRACE, true},
	']': {evdev.KEY_RIGHTBRACE, false}, '}': {evdev.KEY_RIGHTBRACE, true},
	';': {evdev.KEY_SEMICOLON, false}, ':': {evdev.KEY_SEMICOLON, true},
	'\'': {evdev.KEY_APOSTROPHE, false}, '"': {evdev.KEY_APOSTROPHE, true},
	'`': {evdev.KEY_GRAVE, false}, '~': {evdev.KEY_GRAVE, true},
	'\\': {evdev.KEY_BACKSLASH, false}, '|': {evdev.KEY_BACKSLASH, true},
	',': {evdev.KEY_COMMA, false}, '<': {evdev.KEY_COMMA, true},
	'.': {evdev.KEY_DOT, false}, '>': {evdev.KEY_DOT, true},
	'/': {evdev.KEY_SLASH, false}, '?': {evdev.KEY_SLASH, true},

	' ':  {evdev.KEY_SPACE, false},
	'\t': {evdev.KEY_TAB, false},
	'\n': {evdev.KEY_ENTER, false},
}

var letters = [26]evdev.EvCode{
	evdev.KEY_A, evdev.KEY_B, evdev.KEY_C, evdev.KEY_D, evdev.KEY_E, evdev.KEY_F,
	evdev.KEY_G, evdev.KEY_H, evdev.KEY_I, evdev.KEY_J, evdev.KEY_K, evdev.KEY_L,
	evdev.KEY_M, evdev.KEY_N, evdev.KEY_O, evdev.KEY_P, evdev.KEY_Q, evdev.KEY_R,
	evdev.KEY_S, evdev.KEY_T, evdev.KEY_U, evdev.KEY_V, evdev.KEY_W, evdev.KEY_X,
	evdev.KEY_Y, evdev.KEY_Z,
}

// LookupRune returns key code producing given character and whether shift has to be held.
func LookupRune(r rune) (evdev.EvCode, bool, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return letters[r-'a'], false, true
	case r >= 'A' && r <= 'Z':
		return letters[r-'A'], true, true
	}
	k, ok := runeKeys[r]
	return k.code, k.shift, ok
}

// LookupKey returns key code for named key.
func LookupKey(k fretboard.Key) (evdev.EvCode, bool) {
	code, ok := namedKeys[k]
	return code, ok
}

// supportedCodes lists every key code virtual keyboard is able to emit.
func supportedCodes() []evdev.EvCode {
	var seen = make(map[evdev.EvCode]bool)
	var codes []evdev.EvCode

	add := func(c evdev.EvCode) {
		if !seen[c] {
			seen[c] = true
			codes = append(codes, c)
		}
	}

	for _, c := range letters {
		add(c)
	}
	for _, k := range runeKeys {
		add(k.code)
	}
	for _, c := range namedKeys {
		add(c)
	}
	return codes
}
