package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
	"github.com/kitara-midi/kitara/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
)

const exampleMapping = "../../../../cmd/kitara/kitara-config/mapping.csv"

func TestMain(m *testing.M) {
	go func() {
		for range logger.Messages {
		}
	}()
	os.Exit(m.Run())
}

func TestLoadExampleMapping(t *testing.T) {
	m, err := LoadMapping(exampleMapping)
	assert.Equal(t, nil, err)

	assert.Equal(t, [fretboard.NumStrings]uint8{1, 2, 3, 4, 5, 6}, m.Channels())

	for _, tc := range []struct {
		str, fret int
		expected  fretboard.Token
	}{
		{str: 0, fret: 0, expected: fretboard.Token{Kind: fretboard.Whitespace, Key: fretboard.Space, Raw: "SP"}},
		{str: 0, fret: 1, expected: fretboard.Token{Kind: fretboard.Character, Char: 'e', Raw: "e"}},
		{str: 0, fret: 12, expected: fretboard.Token{Kind: fretboard.Whitespace, Key: fretboard.Backspace, Raw: "BA"}},
		{str: 0, fret: 22, expected: fretboard.Token{Kind: fretboard.Unmapped}},
		{str: 2, fret: 8, expected: fretboard.Token{Kind: fretboard.Character, Char: ',', Raw: ","}},
		{str: 3, fret: 0, expected: fretboard.Token{Kind: fretboard.Modifier, Key: fretboard.Shift, Raw: "SH"}},
		{str: 4, fret: 7, expected: fretboard.Token{Kind: fretboard.Character, Char: '\'', Raw: "'"}},
		{str: 4, fret: 13, expected: fretboard.Token{Kind: fretboard.Whitespace, Key: fretboard.ArrowUp, Raw: "UP"}},
		{str: 5, fret: 1, expected: fretboard.Token{Kind: fretboard.Modifier, Key: fretboard.Meta, Raw: "CM"}},
	} {
		assert.Equal(t, tc.expected, m.TokenAt(tc.str, tc.fret), "string %d, fret %d", tc.str, tc.fret)
	}
}

func TestLoadFormatsAreEquivalent(t *testing.T) {
	expected, err := LoadMapping(exampleMapping)
	assert.Equal(t, nil, err)

	for _, path := range []string{"testdata/mapping.toml", "testdata/mapping.yaml"} {
		t.Run(path, func(t *testing.T) {
			m, err := LoadMapping(path)
			assert.Equal(t, nil, err)
			assert.Equal(t, expected.Rows(), m.Rows())
		})
	}
}

func TestLoadMappingFail(t *testing.T) {
	for _, path := range []string{
		"testdata/short_row.csv",
		"testdata/bad_channel.toml",
		"testdata/five_strings.yaml",
	} {
		t.Run(path, func(t *testing.T) {
			m, err := LoadMapping(path)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, fretboard.ConfigError), "unexpected error: %v", err)
		})
	}
}

func TestLoadMappingUnsupported(t *testing.T) {
	_, err := LoadMapping("testdata/mapping.json")
	assert.True(t, errors.Is(err, UnsupportedFormat))

	_, err = LoadMapping("testdata/does-not-exist.csv")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseMalformed(t *testing.T) {
	for _, tc := range []struct {
		name  string
		parse parser
		data  string
	}{
		{name: "csv empty", parse: ParseCSV, data: ""},
		{name: "csv header only", parse: ParseCSV, data: "channel,0,1\n"},
		{name: "csv bare quote", parse: ParseCSV, data: "channel\n1,a\"b\n"},
		{name: "toml syntax", parse: ParseTOML, data: "[[strings]\n"},
		{name: "toml unknown field", parse: ParseTOML, data: "[[strings]]\nchannel = 1\ntuning = 64\n"},
		{name: "toml channel type", parse: ParseTOML, data: "[[strings]]\nchannel = \"one\"\n"},
		{name: "yaml syntax", parse: ParseYAML, data: "strings: [\n"},
		{name: "yaml unknown field", parse: ParseYAML, data: "strings:\n  - channel: 1\n    tuning: 64\n"},
		{name: "yaml empty", parse: ParseYAML, data: "strings: []\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := tc.parse([]byte(tc.data))
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, fretboard.ConfigError), "unexpected error: %v", err)
		})
	}
}

func TestWatchMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.csv")
	data, err := os.ReadFile(exampleMapping)
	assert.Equal(t, nil, err)
	assert.Equal(t, nil, os.WriteFile(path, data, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	changes := WatchMapping(ctx, path)

	// watcher is set up asynchronously, keep touching the file until it is noticed
	var noticed bool
	for i := 0; i < 50 && !noticed; i++ {
		assert.Equal(t, nil, os.WriteFile(filepath.Join(dir, "other.csv"), data, 0o644))
		assert.Equal(t, nil, os.WriteFile(path, data, 0o644))
		select {
		case name := <-changes:
			assert.Equal(t, "mapping.csv", filepath.Base(name))
			noticed = true
		case <-time.After(time.Millisecond * 100):
		}
	}
	assert.True(t, noticed)

	cancel()
	for range changes {
	}
}
