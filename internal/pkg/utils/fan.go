package utils

import (
	"errors"
	"fmt"
	"sync"
)

var FanOutClosed = errors.New("fan-out input is closed")

// DynamicFanOut copies every value of input channel into all currently spawned outputs.
// Slow outputs do not stall the others, a value is dropped for an output that is full.
type DynamicFanOut[T any] struct {
	input    <-chan T
	inputCap int

	mutex   sync.Mutex
	closed  bool
	nextID  int64
	outputs map[int64]chan T
	dropped map[int64]uint
}

func NewDynamicFanOut[T any](input <-chan T) *DynamicFanOut[T] {
	f := &DynamicFanOut[T]{
		input:    input,
		inputCap: cap(input),
		outputs:  make(map[int64]chan T),
		dropped:  make(map[int64]uint),
	}
	go f.run()
	return f
}

func (f *DynamicFanOut[T]) run() {
	for e := range f.input {
		f.mutex.Lock()
		for id, o := range f.outputs {
			select {
			case o <- e:
			default:
				f.dropped[id]++
			}
		}
		f.mutex.Unlock()
	}

	f.mutex.Lock()
	f.closed = true
	for id, o := range f.outputs {
		close(o)
		delete(f.outputs, id)
	}
	f.mutex.Unlock()
}

// SpawnOutput creates new output channel and its ID for later despawning.
// Output channel has the size of input channel, but it is always buffered with at least size 1.
// Outputs are closed when input channel gets closed.
func (f *DynamicFanOut[T]) SpawnOutput() (int64, <-chan T, error) {
	ocap := f.inputCap
	if ocap == 0 {
		ocap = 1
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.closed {
		return 0, nil, FanOutClosed
	}

	id := f.nextID
	f.nextID++
	o := make(chan T, ocap)
	f.outputs[id] = o
	return id, o, nil
}

// DespawnOutput removes output channel with given ID
func (f *DynamicFanOut[T]) DespawnOutput(id int64) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	o, ok := f.outputs[id]
	if !ok {
		return fmt.Errorf("output id %d not found", id)
	}
	close(o)
	delete(f.outputs, id)
	return nil
}

// Dropped returns amount of values that given output missed because it was full.
func (f *DynamicFanOut[T]) Dropped(id int64) uint {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.dropped[id]
}
