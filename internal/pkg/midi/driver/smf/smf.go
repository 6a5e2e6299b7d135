package smf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kitara-midi/kitara/internal/pkg/midi"
	"github.com/kitara-midi/kitara/internal/pkg/midi/driver"
	mmidi "github.com/moutend/go-midi"
	mmidiev "github.com/moutend/go-midi/event"
)

// Player replays note events of a Standard MIDI File as if they came from a device.
// Notes still sounding when playback ends or gets stopped are released.
type Player struct {
	name string
	data []byte
	bpm  int

	c      chan []byte
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewPlayer(name string, data []byte, bpm int) *Player {
	if bpm <= 0 {
		bpm = 120
	}
	return &Player{
		name: name,
		data: data,
		bpm:  bpm,
		c:    make(chan []byte),
	}
}

// LoadPlayer reads given file, port name is the file base name.
func LoadPlayer(path string, bpm int) (*Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read midi file: %w", err)
	}
	return NewPlayer(filepath.Base(path), data, bpm), nil
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Open() error {
	parser := mmidi.NewParser(p.data)
	mevents, err := parser.Parse()
	if err != nil {
		return fmt.Errorf("failed to parse midi file: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(p.c)

		// sounding notes by channel and note number
		enabledNotes := make(map[[2]uint8]struct{})
	root:
		for _, track := range mevents.Tracks {
			for _, event := range track.Events {
				dt := time.Duration(event.DeltaTime().Quantity().Uint32()) * time.Second / time.Duration(p.bpm) / 2
				select {
				case <-time.After(dt):
				case <-ctx.Done():
					break root
				}

				var e midi.Event
				switch v := event.(type) {
				case *mmidiev.NoteOnEvent:
					enabledNotes[[2]uint8{v.Channel(), uint8(v.Note())}] = struct{}{}
					e = midi.NoteEvent(midi.NoteOn, v.Channel(), uint8(v.Note()), 100)
				case *mmidiev.NoteOffEvent:
					delete(enabledNotes, [2]uint8{v.Channel(), uint8(v.Note())})
					e = midi.NoteEvent(midi.NoteOff, v.Channel(), uint8(v.Note()), 0)
				default:
					continue
				}

				select {
				case p.c <- e:
				case <-ctx.Done():
					break root
				}
			}
		}

		for n := range enabledNotes {
			select {
			case p.c <- midi.NoteEvent(midi.NoteOff, n[0], n[1], 0):
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (p *Player) Close() error {
	p.once.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
	})
	p.wg.Wait()
	return nil
}

func (p *Player) ReceiveChannel() <-chan []byte {
	return p.c
}

var _ driver.MIDIIn = (*Player)(nil)
