package fretboard

import "fmt"

// Literal tokens used in mapping files
const (
	// modifier keys
	ShiftToken   = "SH"
	ControlToken = "CT"
	MetaToken    = "CM"
	AltToken     = "AL"

	// whitespace + other keys
	SpaceToken      = "SP"
	TabToken        = "TA"
	BackspaceToken  = "BA"
	EnterToken      = "EN"
	EscapeToken     = "ES"
	ArrowLeftToken  = "LE"
	ArrowUpToken    = "UP"
	ArrowRightToken = "RI"
	ArrowDownToken  = "DO"
)

type TokenKind int

const (
	Unmapped TokenKind = iota
	Modifier
	Whitespace // whitespace, control and navigation keys
	Character
)

func (k TokenKind) String() string {
	switch k {
	case Unmapped:
		return "Unmapped"
	case Modifier:
		return "Modifier"
	case Whitespace:
		return "Whitespace"
	case Character:
		return "Character"
	default:
		return "Unknown"
	}
}

// Key is a named (non-character) keyboard key.
type Key int

const (
	NoKey Key = iota
	Shift
	Control
	Alt
	Meta
	Space
	Tab
	Backspace
	Enter
	Escape
	ArrowLeft
	ArrowUp
	ArrowRight
	ArrowDown
)

var keyNames = map[Key]string{
	NoKey:      "None",
	Shift:      "Shift",
	Control:    "Control",
	Alt:        "Alt",
	Meta:       "Meta",
	Space:      "Space",
	Tab:        "Tab",
	Backspace:  "Backspace",
	Enter:      "Enter",
	Escape:     "Escape",
	ArrowLeft:  "ArrowLeft",
	ArrowUp:    "ArrowUp",
	ArrowRight: "ArrowRight",
	ArrowDown:  "ArrowDown",
}

func (k Key) String() string {
	name, ok := keyNames[k]
	if !ok {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return name
}

var modifierTokens = map[string]Key{
	ShiftToken:   Shift,
	ControlToken: Control,
	AltToken:     Alt,
	MetaToken:    Meta,
}

var whitespaceTokens = map[string]Key{
	SpaceToken:      Space,
	TabToken:        Tab,
	BackspaceToken:  Backspace,
	EnterToken:      Enter,
	EscapeToken:     Escape,
	ArrowLeftToken:  ArrowLeft,
	ArrowUpToken:    ArrowUp,
	ArrowRightToken: ArrowRight,
	ArrowDownToken:  ArrowDown,
}

// Token is a decoded mapping cell.
// Key is set for Modifier and Whitespace kinds, Char for Character kind.
// Raw keeps the cell exactly as configured.
type Token struct {
	Kind TokenKind
	Key  Key
	Char rune
	Raw  string
}

// ParseToken decodes a mapping cell. Any non-empty cell that is not one of
// the named literals is a character token, only its first character counts.
func ParseToken(raw string) Token {
	if raw == "" {
		return Token{Kind: Unmapped}
	}
	if key, ok := modifierTokens[raw]; ok {
		return Token{Kind: Modifier, Key: key, Raw: raw}
	}
	if key, ok := whitespaceTokens[raw]; ok {
		return Token{Kind: Whitespace, Key: key, Raw: raw}
	}
	var first rune
	for _, r := range raw {
		first = r
		break
	}
	return Token{Kind: Character, Char: first, Raw: raw}
}

func (t Token) IsMapped() bool {
	return t.Kind != Unmapped
}

// String returns configured token, "<unmapped>" for empty cells.
func (t Token) String() string {
	if t.Kind == Unmapped {
		return "<unmapped>"
	}
	return t.Raw
}

// Describe returns token name resolved to the key it represents.
func (t Token) Describe() string {
	switch t.Kind {
	case Modifier, Whitespace:
		return t.Key.String()
	case Character:
		return fmt.Sprintf("%q", t.Char)
	default:
		return "<unmapped>"
	}
}
