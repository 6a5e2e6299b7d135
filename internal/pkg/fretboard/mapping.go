package fretboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	NumStrings = 6
	NumFrets   = 23 // 22 frets + open string
	NumColumns = NumFrets + 1

	MinChannel = 1
	MaxChannel = 16
)

var (
	ConfigError    = errors.New("invalid mapping configuration")
	UnknownChannel = errors.New("channel not assigned to any string")
)

// Mapping is an immutable fretboard -> keyboard lookup table.
// Index in channels is the string index.
type Mapping struct {
	channels [NumStrings]uint8
	keymap   [NumStrings][NumFrets]Token

	// channel -> string index + 1, zero when not assigned
	strings [MaxChannel + 1]uint8
}

// NewMapping builds mapping out of table rows, one row per string (high string first),
// first column is a MIDI channel (1-16), next 23 columns are tokens for frets 0-22.
func NewMapping(rows [][]string) (*Mapping, error) {
	if len(rows) != NumStrings {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ConfigError, NumStrings, len(rows))
	}

	var m Mapping

	for i, row := range rows {
		if len(row) != NumColumns {
			return nil, fmt.Errorf("%w: row %d: expected %d columns, got %d", ConfigError, i, NumColumns, len(row))
		}

		channel, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: channel \"%s\" is not a number", ConfigError, i, row[0])
		}
		if channel < MinChannel || channel > MaxChannel {
			return nil, fmt.Errorf("%w: row %d: channel %d outside of %d-%d range", ConfigError, i, channel, MinChannel, MaxChannel)
		}
		m.channels[i] = uint8(channel)

		// first match wins for duplicated channels
		if m.strings[channel] == 0 {
			m.strings[channel] = uint8(i + 1)
		}

		for j, cell := range row[1:] {
			m.keymap[i][j] = ParseToken(cell)
		}
	}

	return &m, nil
}

// StringForChannel returns string index assigned to given MIDI channel (1-16).
func (m *Mapping) StringForChannel(channel uint8) (int, bool) {
	if channel < MinChannel || channel > MaxChannel {
		return 0, false
	}
	s := m.strings[channel]
	if s == 0 {
		return 0, false
	}
	return int(s) - 1, true
}

// TokenAt returns token for given coordinate, panics when coordinate is outside of fretboard.
func (m *Mapping) TokenAt(str, fret int) Token {
	return m.keymap[str][fret]
}

// Channel returns MIDI channel assigned to given string.
func (m *Mapping) Channel(str int) uint8 {
	return m.channels[str]
}

func (m *Mapping) Channels() [NumStrings]uint8 {
	return m.channels
}

// Rows returns the mapping in the same tabular form it was built from.
func (m *Mapping) Rows() [][]string {
	var rows = make([][]string, NumStrings)
	for i := range m.keymap {
		row := make([]string, 0, NumColumns)
		row = append(row, strconv.Itoa(int(m.channels[i])))
		for _, t := range m.keymap[i] {
			row = append(row, t.Raw)
		}
		rows[i] = row
	}
	return rows
}

// Table renders human-readable mapping overview.
func (m *Mapping) Table() string {
	var b strings.Builder

	b.WriteString("\nKeyboard Mapping:\n")
	for j := 0; j < NumFrets; j++ {
		fmt.Fprintf(&b, "%d\t", j)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("----", NumFrets))
	b.WriteString("\n")

	for i := 0; i < NumStrings; i++ {
		fmt.Fprintf(&b, "%d|", m.channels[i])
		for j := 0; j < NumFrets; j++ {
			fmt.Fprintf(&b, "%s\t", m.keymap[i][j].Raw)
		}
		b.WriteString("\n")
	}
	return b.String()
}
