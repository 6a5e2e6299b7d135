package fretboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testRows generates full table where every cell is unique ("s<string>f<fret>"),
// some cells are left empty on purpose.
func testRows() [][]string {
	var rows = make([][]string, NumStrings)
	for i := 0; i < NumStrings; i++ {
		row := []string{strconv.Itoa(i + 1)}
		for j := 0; j < NumFrets; j++ {
			if j%5 == 4 {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("s%df%d", i, j))
		}
		rows[i] = row
	}
	return rows
}

func TestNewMappingRoundTrip(t *testing.T) {
	rows := testRows()
	rows[0][1] = SpaceToken
	rows[1][2] = ShiftToken

	m, err := NewMapping(rows)
	assert.Equal(t, nil, err)

	for i := 0; i < NumStrings; i++ {
		for j := 0; j < NumFrets; j++ {
			assert.Equal(t, rows[i][j+1], m.TokenAt(i, j).Raw, "string %d, fret %d", i, j)
		}
	}
	assert.Equal(t, rows, m.Rows())
}

func TestNewMappingTokens(t *testing.T) {
	rows := testRows()
	rows[0][1] = SpaceToken
	rows[1][2] = ShiftToken

	m, err := NewMapping(rows)
	assert.Equal(t, nil, err)

	assert.Equal(t, Token{Kind: Whitespace, Key: Space, Raw: "SP"}, m.TokenAt(0, 0))
	assert.Equal(t, Token{Kind: Modifier, Key: Shift, Raw: "SH"}, m.TokenAt(1, 1))
	assert.Equal(t, Token{Kind: Character, Char: 's', Raw: "s2f3"}, m.TokenAt(2, 3))
	assert.Equal(t, Token{Kind: Unmapped}, m.TokenAt(2, 4))
}

func TestNewMappingFail(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(rows [][]string) [][]string
	}{
		{name: "no rows", modify: func(rows [][]string) [][]string { return nil }},
		{name: "five rows", modify: func(rows [][]string) [][]string { return rows[:5] }},
		{name: "seven rows", modify: func(rows [][]string) [][]string { return append(rows, rows[0]) }},
		{name: "missing column", modify: func(rows [][]string) [][]string {
			rows[3] = rows[3][:NumColumns-1]
			return rows
		}},
		{name: "extra column", modify: func(rows [][]string) [][]string {
			rows[5] = append(rows[5], "x")
			return rows
		}},
		{name: "channel not a number", modify: func(rows [][]string) [][]string {
			rows[2][0] = "two"
			return rows
		}},
		{name: "channel empty", modify: func(rows [][]string) [][]string {
			rows[2][0] = ""
			return rows
		}},
		{name: "channel zero", modify: func(rows [][]string) [][]string {
			rows[0][0] = "0"
			return rows
		}},
		{name: "channel 17", modify: func(rows [][]string) [][]string {
			rows[0][0] = "17"
			return rows
		}},
		{name: "channel negative", modify: func(rows [][]string) [][]string {
			rows[4][0] = "-1"
			return rows
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMapping(tc.modify(testRows()))
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, ConfigError), "unexpected error: %v", err)
		})
	}
}

func TestStringForChannel(t *testing.T) {
	rows := testRows()
	channels := []string{"10", "3", "16", "1", "7", "2"}
	for i := range rows {
		rows[i][0] = channels[i]
	}

	m, err := NewMapping(rows)
	assert.Equal(t, nil, err)

	for i, c := range channels {
		ch, _ := strconv.Atoi(c)
		s, ok := m.StringForChannel(uint8(ch))
		assert.True(t, ok)
		assert.Equal(t, i, s)
		assert.Equal(t, uint8(ch), m.Channel(i))
	}

	for _, ch := range []uint8{0, 4, 5, 6, 8, 9, 11, 15, 17, 255} {
		t.Run(strconv.Itoa(int(ch)), func(t *testing.T) {
			_, ok := m.StringForChannel(ch)
			assert.False(t, ok)
		})
	}
}

func TestStringForChannelDuplicate(t *testing.T) {
	rows := testRows()
	rows[2][0] = "9"
	rows[4][0] = "9"

	m, err := NewMapping(rows)
	assert.Equal(t, nil, err)

	s, ok := m.StringForChannel(9)
	assert.True(t, ok)
	assert.Equal(t, 2, s)
}

func TestMappingTable(t *testing.T) {
	rows := testRows()
	m, err := NewMapping(rows)
	assert.Equal(t, nil, err)

	lines := strings.Split(m.Table(), "\n")
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "Keyboard Mapping:", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "0\t1\t2\t"))
	assert.True(t, strings.HasSuffix(lines[2], "22\t"))
	assert.Equal(t, strings.Repeat("----", NumFrets), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "1|s0f0\ts0f1\t"))
	assert.True(t, strings.HasPrefix(lines[9], "6|s5f0\t"))
}
