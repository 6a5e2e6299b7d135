package fretboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	for _, tc := range []struct {
		raw      string
		expected Token
	}{
		{raw: "", expected: Token{Kind: Unmapped}},

		{raw: "SH", expected: Token{Kind: Modifier, Key: Shift, Raw: "SH"}},
		{raw: "CT", expected: Token{Kind: Modifier, Key: Control, Raw: "CT"}},
		{raw: "AL", expected: Token{Kind: Modifier, Key: Alt, Raw: "AL"}},
		{raw: "CM", expected: Token{Kind: Modifier, Key: Meta, Raw: "CM"}},

		{raw: "SP", expected: Token{Kind: Whitespace, Key: Space, Raw: "SP"}},
		{raw: "TA", expected: Token{Kind: Whitespace, Key: Tab, Raw: "TA"}},
		{raw: "BA", expected: Token{Kind: Whitespace, Key: Backspace, Raw: "BA"}},
		{raw: "EN", expected: Token{Kind: Whitespace, Key: Enter, Raw: "EN"}},
		{raw: "ES", expected: Token{Kind: Whitespace, Key: Escape, Raw: "ES"}},
		{raw: "LE", expected: Token{Kind: Whitespace, Key: ArrowLeft, Raw: "LE"}},
		{raw: "UP", expected: Token{Kind: Whitespace, Key: ArrowUp, Raw: "UP"}},
		{raw: "RI", expected: Token{Kind: Whitespace, Key: ArrowRight, Raw: "RI"}},
		{raw: "DO", expected: Token{Kind: Whitespace, Key: ArrowDown, Raw: "DO"}},

		{raw: "a", expected: Token{Kind: Character, Char: 'a', Raw: "a"}},
		{raw: "Z", expected: Token{Kind: Character, Char: 'Z', Raw: "Z"}},
		{raw: "sp", expected: Token{Kind: Character, Char: 's', Raw: "sp"}},
		{raw: "SPACE", expected: Token{Kind: Character, Char: 'S', Raw: "SPACE"}},
		{raw: " ", expected: Token{Kind: Character, Char: ' ', Raw: " "}},
		{raw: "ä", expected: Token{Kind: Character, Char: 'ä', Raw: "ä"}},
		{raw: ",", expected: Token{Kind: Character, Char: ',', Raw: ","}},
	} {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseToken(tc.raw))
		})
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "<unmapped>", ParseToken("").String())
	assert.Equal(t, "SP", ParseToken("SP").String())
	assert.Equal(t, "abc", ParseToken("abc").String())

	assert.Equal(t, "<unmapped>", ParseToken("").Describe())
	assert.Equal(t, "Space", ParseToken("SP").Describe())
	assert.Equal(t, "Meta", ParseToken("CM").Describe())
	assert.Equal(t, "'a'", ParseToken("abc").Describe())
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "Unmapped", Unmapped.String())
	assert.Equal(t, "Modifier", Modifier.String())
	assert.Equal(t, "Whitespace", Whitespace.String())
	assert.Equal(t, "Character", Character.String())
	assert.Equal(t, "Unknown", TokenKind(42).String())
	assert.Equal(t, "Key(99)", Key(99).String())
}
