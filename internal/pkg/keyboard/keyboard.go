package keyboard

import (
	"fmt"
	"sync"

	"github.com/kitara-midi/kitara/internal/pkg/fretboard"
)

// Keyboard emulates physical keyboard actions.
type Keyboard interface {
	KeyDown(t fretboard.Token) error
	KeyUp(t fretboard.Token) error
	KeyClick(t fretboard.Token) error // down + up
}

type Action string

const (
	Down  Action = "down"
	Up    Action = "up"
	Click Action = "click"
)

type Call struct {
	Action Action
	Token  fretboard.Token
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Action, c.Token.Describe())
}

// Recorder is a Keyboard that only remembers calls made against it.
type Recorder struct {
	mutex sync.Mutex
	calls []Call
}

func (r *Recorder) record(a Action, t fretboard.Token) error {
	r.mutex.Lock()
	r.calls = append(r.calls, Call{Action: a, Token: t})
	r.mutex.Unlock()
	return nil
}

func (r *Recorder) KeyDown(t fretboard.Token) error  { return r.record(Down, t) }
func (r *Recorder) KeyUp(t fretboard.Token) error    { return r.record(Up, t) }
func (r *Recorder) KeyClick(t fretboard.Token) error { return r.record(Click, t) }

// Calls returns copy of recorded calls.
func (r *Recorder) Calls() []Call {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var calls = make([]Call, len(r.calls))
	copy(calls, r.calls)
	return calls
}

func (r *Recorder) Reset() {
	r.mutex.Lock()
	r.calls = nil
	r.mutex.Unlock()
}

// Null discards all key actions.
type Null struct{}

func (Null) KeyDown(fretboard.Token) error  { return nil }
func (Null) KeyUp(fretboard.Token) error    { return nil }
func (Null) KeyClick(fretboard.Token) error { return nil }
