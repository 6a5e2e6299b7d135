package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kitara-midi/kitara/internal/pkg/display"
	"github.com/kitara-midi/kitara/internal/pkg/utils"
)

const graphSize = 20

// eventGraph renders per-second event counts as bar characters, oldest first.
func eventGraph(graph [graphSize]uint, pointer int) string {
	var maxGraph uint
	for _, graphVal := range graph {
		if graphVal > maxGraph {
			maxGraph = graphVal
		}
	}
	if maxGraph < 8 {
		maxGraph = 8
	}

	var s string
	for i := 0; i < graphSize; i++ {
		graphVal := graph[(pointer+i)%graphSize]
		if graphVal == 0 {
			s += " "
			continue
		}
		realVal := float64(graphVal) / (float64(maxGraph) + 1) * 7
		s += string(display.Bars[int(realVal)])
	}
	return s
}

func displayLines(snapshot ActivitySnapshot, eventsPerSecond uint, graph string) [4]string {
	var lines [4]string

	last, ok := snapshot.Last()
	switch {
	case !ok:
		lines[0] = "waiting for notes"
	case last.GuitarString < 0:
		lines[0] = fmt.Sprintf("channel %d unknown", last.Channel)
	default:
		lines[0] = fmt.Sprintf("key: %s %s", last.Token.Describe(), last.Status)
		lines[1] = fmt.Sprintf("string %d fret %d", last.GuitarString+1, last.Fret)
	}
	lines[2] = fmt.Sprintf("keys: %d ev/s: %d", snapshot.Keys, eventsPerSecond)
	lines[3] = graph
	return lines
}

func exitLines(cfg display.ScreenConfig, keys uint) [4]string {
	if cfg.HaveExitMessage() {
		return cfg.ExitMessage
	}
	return [4]string{
		"",
		display.Center("thanks for playing", 20),
		display.Center(fmt.Sprintf("%c with kitara %c", display.FretMarker, display.NoteSymbol), 20),
		display.Center(fmt.Sprintf("(keys: %d)", keys), 20),
	}
}

func GenerateDisplayData(ctx context.Context, wg *sync.WaitGroup, cfg display.ScreenConfig, activity *Activity) <-chan display.DisplayData {
	data := make(chan display.DisplayData, 2)

	go func() {
		defer wg.Done()
		defer close(data)

		var graph [graphSize]uint
		var graphPointer int
		var lastEvents uint
		var lastProcessingDuration time.Duration
		var period = time.Duration(cfg.UpdateRate) * time.Second

	root:
		for {
			start := time.Now()

			snapshot := activity.Snapshot()
			eventsPerSecond := (snapshot.Events - lastEvents) / uint(cfg.UpdateRate)
			lastEvents = snapshot.Events

			graph[graphPointer] = eventsPerSecond
			graphPointer = (graphPointer + 1) % graphSize

			lines := displayLines(snapshot, eventsPerSecond, eventGraph(graph, graphPointer))
			lastProcessingDuration = time.Since(start)

			select {
			case data <- display.DisplayData{Lines: lines}:
			case <-ctx.Done():
				break root
			}

			select {
			case <-ctx.Done():
				break root
			case <-time.After(period - lastProcessingDuration):
			}
		}

		data <- display.DisplayData{
			Lines:   exitLines(cfg, activity.Snapshot().Keys),
			LastMsg: true,
		}
	}()

	return data
}

// lcdFrames hands LCD frames over to the hardware screen and the ui preview.
type lcdFrames struct {
	fan *utils.DynamicFanOut[display.DisplayData]

	screenID, previewID int64
	screen, preview     bool
}

func newLCDFrames(frames <-chan display.DisplayData) *lcdFrames {
	return &lcdFrames{fan: utils.NewDynamicFanOut(frames)}
}

func (f *lcdFrames) SpawnScreen() (<-chan display.DisplayData, error) {
	id, out, err := f.fan.SpawnOutput()
	if err != nil {
		return nil, err
	}
	f.screenID, f.screen = id, true
	return out, nil
}

func (f *lcdFrames) SpawnPreview() (<-chan display.DisplayData, error) {
	id, out, err := f.fan.SpawnOutput()
	if err != nil {
		return nil, err
	}
	f.previewID, f.preview = id, true
	return out, nil
}

// ScreenDropped reports frames the hardware screen missed, ok is false without a screen.
func (f *lcdFrames) ScreenDropped() (uint, bool) {
	if f == nil || !f.screen {
		return 0, false
	}
	return f.fan.Dropped(f.screenID), true
}

// ClosePreview detaches ui preview, its channel gets closed.
func (f *lcdFrames) ClosePreview() error {
	if f == nil || !f.preview {
		return nil
	}
	f.preview = false
	return f.fan.DespawnOutput(f.previewID)
}
