package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/kitara-midi/kitara/internal/pkg/display"
	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
	"github.com/kitara-midi/kitara/internal/pkg/logger"
	"github.com/logrusorgru/aurora"
)

// overviewLines renders fretboard grid, currently held positions are highlighted.
func overviewLines(m *fretboard.Mapping, activity *Activity, lcdDropped func() (uint, bool), au aurora.Aurora) []string {
	var lines []string

	header := "  |"
	for f := 0; f < fretboard.NumFrets; f++ {
		header += fmt.Sprintf("%-3d", f)
	}
	lines = append(lines, au.Gray(12, header).String())

	for s := 0; s < fretboard.NumStrings; s++ {
		line := fmt.Sprintf("%2d|", m.Channel(s))
		for f := 0; f < fretboard.NumFrets; f++ {
			token := m.TokenAt(s, f)
			cell := fmt.Sprintf("%-3s", token.Raw)
			switch {
			case activity.Pressed(s, f):
				cell = au.BgIndex(16+36*1+6*5+2, au.Black(cell)).String()
			case !token.IsMapped():
				cell = au.Gray(8, ".  ").String()
			}
			line += cell
		}
		lines = append(lines, line)
	}

	snapshot := activity.Snapshot()
	stats := fmt.Sprintf(
		"events: %d, keys: %d, unmapped: %d, discarded: %d",
		snapshot.Events, snapshot.Keys, snapshot.Unmapped, snapshot.Discarded,
	)
	if dropped, ok := lcdDropped(); ok {
		stats += fmt.Sprintf(", lcd frames dropped: %d", dropped)
	}
	lines = append(lines, stats)
	if last, ok := snapshot.Last(); ok {
		lines = append(lines, fmt.Sprintf("last: %s", last))
	}
	return lines
}

func overviewView(g *gocui.Gui, colors bool, m *fretboard.Mapping, activity *Activity, lcdDropped func() (uint, bool), rate time.Duration) {
	view, err := g.View(ViewOverview)
	if err != nil {
		log.Info(fmt.Sprintf("overview view not available: %v", err), logger.Error)
		return
	}

	au := aurora.NewAurora(colors)

	for {
		viewData := overviewLines(m, activity, lcdDropped, au)
		x, y := view.Size()

		view.Rewind()
		for i := 0; i < y; i++ {
			var line string
			if i < len(viewData) {
				line = viewData[i]
			}
			freeSpace := x - rawStringLen(line)
			if freeSpace < 0 {
				freeSpace = 0
			}
			view.Write([]byte(line + strings.Repeat(" ", freeSpace)))
			view.Write([]byte{'\n'})
		}
		time.Sleep(rate)
	}
}

func logView(g *gocui.Gui, color bool, logLevel, bufSize int, rate time.Duration) {
	feeder, err := NewFeeder(g, ViewLogs, logLevel, aurora.NewAurora(color))
	if err != nil {
		log.Info(fmt.Sprintf("log view not available: %v", err), logger.Error)
		for range logger.Messages {
		}
		return
	}

	buf := newLogBuffer(bufSize)

	var newMessage = make(chan bool, 1)
	go func() {
		for msg := range logger.Messages {
			buf.WriteMessage(msg)
			select {
			case newMessage <- true:
			default:
			}
		}
		close(newMessage)
	}()

	var lastX, lastY int
	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	for {
		select {
		case _, ok := <-newMessage:
			if !ok {
				return
			}
		case <-ticker.C:
			x, y := feeder.view.Size()
			if x == lastX && y == lastY {
				continue
			}
			lastX, lastY = x, y
		}

		feeder.view.Rewind()
		_, y := feeder.view.Size()
		for _, msg := range buf.ReadLastMessages(y) {
			feeder.Write(msg)
		}
		time.Sleep(rate)
	}
}

func lcdView(g *gocui.Gui, dd <-chan display.DisplayData) {
	view, err := g.View(ViewLCD)
	if err != nil {
		log.Info(fmt.Sprintf("lcd view not available: %v", err), logger.Error)
		for range dd {
		}
		return
	}

	for data := range dd {
		view.Rewind()
		for _, s := range data.Lines {
			view.Write([]byte(s))
			view.Write([]byte{'\n'})
		}
	}
}
