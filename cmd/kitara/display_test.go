package main

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kitara-midi/kitara/internal/pkg/display"
	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
	"github.com/kitara-midi/kitara/internal/pkg/midi"
	"github.com/kitara-midi/kitara/internal/pkg/typist"
	"github.com/kitara-midi/kitara/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func press(str, fret int, raw string) typist.Diagnostic {
	return typist.Diagnostic{
		GuitarString: str, Fret: fret, Channel: uint8(str + 1), Note: fretboard.Tuning[str] + fret,
		Token: fretboard.ParseToken(raw), Status: midi.Press, Emitted: "click",
	}
}

func TestActivity(t *testing.T) {
	a := NewActivity()
	_, ok := a.Snapshot().Last()
	assert.False(t, ok)

	a.Record(press(0, 0, "SP"))
	assert.True(t, a.Pressed(0, 0))

	release := press(0, 0, "SP")
	release.Status = midi.Release
	release.Emitted = ""
	a.Record(release)
	assert.False(t, a.Pressed(0, 0))

	a.Record(press(2, 3, ""))
	a.Record(typist.Diagnostic{GuitarString: -1, Channel: 9, Err: fretboard.UnknownChannel})
	a.Record(typist.Diagnostic{GuitarString: 1, Fret: 30, Err: fretboard.OutOfRangeFret})

	s := a.Snapshot()
	assert.Equal(t, uint(5), s.Events)
	assert.Equal(t, uint(2), s.Keys)
	assert.Equal(t, uint(1), s.Unmapped)
	assert.Equal(t, uint(2), s.Discarded)
	assert.False(t, a.Pressed(1, 30))

	last, ok := s.Last()
	assert.True(t, ok)
	assert.True(t, errors.Is(last.Err, fretboard.OutOfRangeFret))

	for i := 0; i < recentSize*2; i++ {
		a.Record(press(0, i%fretboard.NumFrets, "a"))
	}
	assert.Equal(t, recentSize, len(a.Snapshot().Recent))
}

func TestEventGraph(t *testing.T) {
	var graph [graphSize]uint
	assert.Equal(t, "                    ", eventGraph(graph, 0))

	graph[0] = 9
	graph[1] = 1
	g := []rune(eventGraph(graph, 0))
	assert.Equal(t, graphSize, len(g))
	assert.Equal(t, '▇', g[0])
	assert.Equal(t, '▁', g[1])

	// pointer marks the oldest sample
	g = []rune(eventGraph(graph, 1))
	assert.Equal(t, '▁', g[0])
	assert.Equal(t, '▇', g[graphSize-1])
}

func TestDisplayLines(t *testing.T) {
	a := NewActivity()
	lines := displayLines(a.Snapshot(), 0, "")
	assert.Equal(t, [4]string{"waiting for notes", "", "keys: 0 ev/s: 0", ""}, lines)

	a.Record(press(4, 12, "LE"))
	lines = displayLines(a.Snapshot(), 3, "graph")
	assert.Equal(t, [4]string{"key: ArrowLeft press", "string 5 fret 12", "keys: 1 ev/s: 3", "graph"}, lines)

	a.Record(typist.Diagnostic{GuitarString: -1, Channel: 11, Err: fretboard.UnknownChannel})
	lines = displayLines(a.Snapshot(), 0, "")
	assert.Equal(t, "channel 11 unknown", lines[0])
}

func TestExitLines(t *testing.T) {
	lines := exitLines(display.ScreenConfig{}, 42)
	assert.Equal(t, " thanks for playing ", lines[1])
	assert.Equal(t, "     (keys: 42)     ", lines[3])

	cfg := display.ScreenConfig{ExitMessage: [4]string{"see", "you"}}
	assert.Equal(t, [4]string{"see", "you", "", ""}, exitLines(cfg, 42))
}

func TestGenerateDisplayData(t *testing.T) {
	a := NewActivity()
	a.Record(press(0, 1, "e"))

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}
	wg.Add(1)
	dd := GenerateDisplayData(ctx, &wg, display.ScreenConfig{UpdateRate: 1}, a)

	first := <-dd
	assert.False(t, first.LastMsg)
	assert.Equal(t, "key: 'e' press", first.Lines[0])
	assert.Equal(t, "keys: 1 ev/s: 1", first.Lines[2])

	cancel()
	var last display.DisplayData
	for data := range dd {
		last = data
	}
	assert.True(t, last.LastMsg)
	wg.Wait()
}

func TestLCDFrames(t *testing.T) {
	input := make(chan display.DisplayData)
	frames := newLCDFrames(input)

	_, ok := frames.ScreenDropped()
	assert.False(t, ok)

	screen, err := frames.SpawnScreen()
	assert.Equal(t, nil, err)
	preview, err := frames.SpawnPreview()
	assert.Equal(t, nil, err)

	assert.Equal(t, nil, frames.ClosePreview())
	_, open := <-preview
	assert.False(t, open)
	assert.Equal(t, nil, frames.ClosePreview())

	// screen is not read, only the first frame fits its buffer
	for i := 0; i < 3; i++ {
		input <- display.DisplayData{}
	}
	close(input)
	var received int
	for range screen {
		received++
	}
	assert.Equal(t, 1, received)

	dropped, ok := frames.ScreenDropped()
	assert.True(t, ok)
	assert.Equal(t, uint(2), dropped)

	_, err = frames.SpawnPreview()
	assert.True(t, errors.Is(err, utils.FanOutClosed))
}

func TestLogBuffer(t *testing.T) {
	b := newLogBuffer(3)
	assert.Equal(t, 0, len(b.ReadLastMessages(5)))

	b.WriteMessage([]byte("1"))
	b.WriteMessage([]byte("2"))
	assert.Equal(t, [][]byte{[]byte("1"), []byte("2")}, b.ReadLastMessages(5))

	b.WriteMessage([]byte("3"))
	b.WriteMessage([]byte("4"))
	assert.Equal(t, [][]byte{[]byte("2"), []byte("3"), []byte("4")}, b.ReadLastMessages(5))
	assert.Equal(t, [][]byte{[]byte("3"), []byte("4")}, b.ReadLastMessages(2))
	assert.Equal(t, 0, len(b.ReadLastMessages(0)))
}
