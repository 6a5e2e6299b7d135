package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
)

var UnsupportedFormat = errors.New("unsupported mapping file format")

type parser func(data []byte) (*fretboard.Mapping, error)

var parsers = map[string]parser{
	".csv":  ParseCSV,
	".toml": ParseTOML,
	".yaml": ParseYAML,
	".yml":  ParseYAML,
}

// LoadMapping reads mapping file, format is picked by file extension.
func LoadMapping(path string) (*fretboard.Mapping, error) {
	ext := strings.ToLower(filepath.Ext(path))
	parse, ok := parsers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: \"%s\" (supported: .csv, .toml, .yaml)", UnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file with path %s: %w", path, err)
	}

	m, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("\"%s\": %w", path, err)
	}
	return m, nil
}
