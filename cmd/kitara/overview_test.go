package main

import (
	"strings"
	"testing"

	"github.com/kitara-midi/kitara/internal/pkg/fretboard/config"
	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/assert"
)

func TestOverviewLines(t *testing.T) {
	m, err := config.LoadMapping("kitara-config/mapping.csv")
	assert.Equal(t, nil, err)

	var frames *lcdFrames
	a := NewActivity()
	lines := overviewLines(m, a, frames.ScreenDropped, aurora.NewAurora(false))
	assert.Equal(t, 1+6+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "  |0  1  2  "))
	assert.True(t, strings.HasPrefix(lines[1], " 1|SP e  r  t  "))
	assert.True(t, strings.HasPrefix(lines[6], " 6|AL CM .  .  "))
	assert.Equal(t, "events: 0, keys: 0, unmapped: 0, discarded: 0", lines[7])

	a.Record(press(0, 0, "SP"))
	lines = overviewLines(m, a, frames.ScreenDropped, aurora.NewAurora(false))
	assert.Equal(t, 1+6+2, len(lines))
	assert.Equal(t, "last: string=0, fret=0, channel=1, note=64, key=SP, action=press", lines[8])
}

func TestOverviewLinesScreenDrops(t *testing.T) {
	m, err := config.LoadMapping("kitara-config/mapping.csv")
	assert.Equal(t, nil, err)

	dropped := func() (uint, bool) { return 3, true }
	lines := overviewLines(m, NewActivity(), dropped, aurora.NewAurora(false))
	assert.Equal(t, "events: 0, keys: 0, unmapped: 0, discarded: 0, lcd frames dropped: 3", lines[7])
}
