package driver

import (
	"errors"
	"fmt"
	"strings"
)

var DeviceNotFound = errors.New("midi input device not found")

type MIDIPort interface {
	Name() string
	Open() error
	Close() error
}

// MIDIIn delivers raw messages through ReceiveChannel once opened,
// channel is closed by Close.
type MIDIIn interface {
	MIDIPort
	ReceiveChannel() <-chan []byte
}

// SelectPort picks the first port (in enumeration order) which name contains
// given substring, case-insensitive.
func SelectPort(ports []MIDIIn, substring string) (MIDIIn, error) {
	wanted := strings.ToLower(substring)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.Name()), wanted) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: no input port found matching \"%s\"", DeviceNotFound, substring)
}
