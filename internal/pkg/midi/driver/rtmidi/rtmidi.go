package rtmidi

import (
	"fmt"
	"sync"

	"github.com/kitara-midi/kitara/internal/pkg/midi/driver"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

type MIDIInPortFromDriver struct {
	c        chan []byte
	done     chan struct{}
	port     drivers.In
	stopFunc func()

	mutex  sync.RWMutex
	closed bool
	once   sync.Once
}

func (in *MIDIInPortFromDriver) Name() string {
	return in.port.String()
}

func (in *MIDIInPortFromDriver) Open() error {
	err := in.port.Open()
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}

	stopFn, err := in.port.Listen(in.receive, drivers.ListenConfig{
		TimeCode:        false,
		ActiveSense:     false,
		SysEx:           false,
		SysExBufferSize: 0,
		OnErr:           func(err error) {},
	})
	if err != nil {
		_ = in.port.Close()
		return fmt.Errorf("failed to listen on device: %w", err)
	}
	in.stopFunc = stopFn
	return nil
}

// receive runs on the driver thread, messages are forwarded in order of arrival
func (in *MIDIInPortFromDriver) receive(msg []byte, milliseconds int32) {
	in.mutex.RLock()
	defer in.mutex.RUnlock()
	if in.closed {
		return
	}

	var data = make([]byte, len(msg))
	copy(data, msg)

	select {
	case in.c <- data:
	case <-in.done:
	}
}

func (in *MIDIInPortFromDriver) Close() error {
	var err error
	in.once.Do(func() {
		close(in.done)

		in.mutex.Lock()
		in.closed = true
		in.mutex.Unlock()

		if in.stopFunc != nil {
			in.stopFunc()
		}
		close(in.c)
		err = in.port.Close()
	})
	return err
}

func (in *MIDIInPortFromDriver) ReceiveChannel() <-chan []byte {
	return in.c
}

func NewMIDIInPortFromDriver(in drivers.In, size int) driver.MIDIIn {
	if size < 1 {
		size = 1
	}
	return &MIDIInPortFromDriver{
		c:    make(chan []byte, size),
		done: make(chan struct{}),
		port: in,
	}
}

// GetInPorts returns all available midi input ports in driver enumeration order.
func GetInPorts(queueSize int) []driver.MIDIIn {
	inPorts := gomidi.GetInPorts()

	var ports = make([]driver.MIDIIn, 0, len(inPorts))
	for _, p := range inPorts {
		ports = append(ports, NewMIDIInPortFromDriver(p, queueSize))
	}
	return ports
}

// PortNames lists names of available midi input ports.
func PortNames() []string {
	inPorts := gomidi.GetInPorts()

	var names = make([]string, 0, len(inPorts))
	for _, p := range inPorts {
		names = append(names, p.String())
	}
	return names
}

// CloseDriver releases underlying rtmidi driver, to be called on exit.
func CloseDriver() {
	gomidi.CloseDriver()
}
