package main

import (
	"sync"

	"github.com/kitara-midi/kitara/internal/pkg/midi"
	"github.com/kitara-midi/kitara/internal/pkg/typist"
)

const recentSize = 8

type ActivitySnapshot struct {
	Events    uint // note messages processed
	Keys      uint // keyboard calls made
	Unmapped  uint
	Discarded uint // unknown channel, fret out of range, keyboard failure
	Recent    []typist.Diagnostic // newest first
}

func (s ActivitySnapshot) Last() (typist.Diagnostic, bool) {
	if len(s.Recent) == 0 {
		return typist.Diagnostic{}, false
	}
	return s.Recent[0], true
}

// Activity aggregates diagnostics for UI and LCD.
type Activity struct {
	mutex    sync.Mutex
	snapshot ActivitySnapshot
	pressed  map[[2]int]bool // string, fret
}

func NewActivity() *Activity {
	return &Activity{pressed: make(map[[2]int]bool)}
}

func (a *Activity) Record(d typist.Diagnostic) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	s := &a.snapshot
	s.Events++
	switch {
	case d.Err != nil:
		s.Discarded++
	case !d.Token.IsMapped():
		s.Unmapped++
	}
	if d.Emitted != "" {
		s.Keys++
	}

	if d.GuitarString >= 0 && d.Err == nil {
		pos := [2]int{d.GuitarString, d.Fret}
		if d.Status == midi.Press {
			a.pressed[pos] = true
		} else {
			delete(a.pressed, pos)
		}
	}

	s.Recent = append([]typist.Diagnostic{d}, s.Recent...)
	if len(s.Recent) > recentSize {
		s.Recent = s.Recent[:recentSize]
	}
}

// Consume records diagnostics until channel is closed.
func (a *Activity) Consume(diagnostics <-chan typist.Diagnostic) {
	for d := range diagnostics {
		a.Record(d)
	}
}

func (a *Activity) Snapshot() ActivitySnapshot {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	s := a.snapshot
	s.Recent = append([]typist.Diagnostic(nil), a.snapshot.Recent...)
	return s
}

func (a *Activity) Pressed(str, fret int) bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.pressed[[2]int{str, fret}]
}
