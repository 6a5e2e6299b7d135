package driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedPort struct {
	name string
}

func (p *namedPort) Name() string                  { return p.name }
func (p *namedPort) Open() error                   { return nil }
func (p *namedPort) Close() error                  { return nil }
func (p *namedPort) ReceiveChannel() <-chan []byte { return nil }

func ports(names ...string) []MIDIIn {
	var out = make([]MIDIIn, 0, len(names))
	for _, n := range names {
		out = append(out, &namedPort{name: n})
	}
	return out
}

func TestSelectPort(t *testing.T) {
	for _, tc := range []struct {
		ports     []MIDIIn
		substring string
		expected  string
	}{
		{ports: ports("Foo MIDI", "Bar-kitara-Device"), substring: "kitara", expected: "Bar-kitara-Device"},
		{ports: ports("Foo MIDI", "Bar-kitara-Device"), substring: "KITARA", expected: "Bar-kitara-Device"},
		{ports: ports("Foo MIDI", "Bar-kitara-Device"), substring: "KiTaRa", expected: "Bar-kitara-Device"},
		{ports: ports("Foo MIDI", "Bar-kitara-Device"), substring: "midi", expected: "Foo MIDI"},
		{ports: ports("Kitara A", "Kitara B"), substring: "kitara", expected: "Kitara A"},
		{ports: ports("Kitara A", "Kitara B"), substring: "", expected: "Kitara A"},
	} {
		t.Run(tc.substring, func(t *testing.T) {
			p, err := SelectPort(tc.ports, tc.substring)
			assert.Equal(t, nil, err)
			assert.Equal(t, tc.expected, p.Name())
		})
	}
}

func TestSelectPortNotFound(t *testing.T) {
	for _, tc := range []struct {
		name      string
		ports     []MIDIIn
		substring string
	}{
		{name: "no ports", ports: nil, substring: "kitara"},
		{name: "no match", ports: ports("Foo MIDI", "Midi Through"), substring: "kitara"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := SelectPort(tc.ports, tc.substring)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, DeviceNotFound))
		})
	}
}
