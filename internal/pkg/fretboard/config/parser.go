package config

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type StringMapping struct {
	Channel int      `toml:"channel" yaml:"channel"`
	Frets   []string `toml:"frets" yaml:"frets"`
}

type TOMLMapping struct {
	Strings []StringMapping `toml:"strings"`
}

type YamlMapping struct {
	Strings []StringMapping `yaml:"strings"`
}

func toRows(strings []StringMapping) [][]string {
	var rows = make([][]string, 0, len(strings))
	for _, s := range strings {
		row := make([]string, 0, len(s.Frets)+1)
		row = append(row, strconv.Itoa(s.Channel))
		row = append(row, s.Frets...)
		rows = append(rows, row)
	}
	return rows
}

// ParseCSV reads comma separated mapping, first line is a header and gets skipped.
// Every next line describes one string (high string first): channel followed by 23 fret tokens.
func ParseCSV(data []byte) (*fretboard.Mapping, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // column count is validated by the mapping itself

	var rows [][]string
	var header = true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parsing csv failed: %v", fretboard.ConfigError, err)
		}
		if header {
			header = false
			continue
		}
		rows = append(rows, record)
	}

	return fretboard.NewMapping(rows)
}

func ParseTOML(data []byte) (*fretboard.Mapping, error) {
	cfg := TOMLMapping{}

	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()

	err := d.Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing toml failed: %v", fretboard.ConfigError, err)
	}
	return fretboard.NewMapping(toRows(cfg.Strings))
}

func ParseYAML(data []byte) (*fretboard.Mapping, error) {
	cfg := YamlMapping{}

	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)

	err := d.Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing yaml failed: %v", fretboard.ConfigError, err)
	}
	return fretboard.NewMapping(toRows(cfg.Strings))
}
