package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Messages = make(chan []byte, 128)

const (
	ErrorLvl      = 0
	WarningLvl    = 1
	InfoLvl       = 2
	ActionLvl     = 3 // mapped key events
	UnassignedLvl = 4 // events without mapping, discarded events
	MidiLvl       = 5 // raw midi messages

	DebugLvl = 378
)

var (
	Error      = zap.Int("level", ErrorLvl)
	Warning    = zap.Int("level", WarningLvl)
	Info       = zap.Int("level", InfoLvl)
	Action     = zap.Int("level", ActionLvl)
	Unassigned = zap.Int("level", UnassignedLvl)
	Midi       = zap.Int("level", MidiLvl)

	Debug = zap.Int("level", DebugLvl)
)

type chanWriter struct {
	sync.Mutex
	messages chan<- []byte
}

func (w *chanWriter) Write(p []byte) (n int, err error) {
	w.Lock()
	var newSlice = make([]byte, len(p))
	copy(newSlice, p)
	w.messages <- newSlice
	w.Unlock()
	return len(p), nil
}

func (w *chanWriter) Sync() error {
	return nil
}

var (
	once   sync.Once
	shared *zap.Logger
)

// GetLogger returns process wide logger, all entries end up in Messages channel.
func GetLogger() *zap.Logger {
	once.Do(func() {
		shared = NewChannelLogger(Messages)
	})
	return shared
}

// NewChannelLogger builds a logger writing JSON entries (one per message) into given channel.
func NewChannelLogger(messages chan<- []byte) *zap.Logger {
	writer := &chanWriter{messages: messages}
	cfg := zap.NewProductionEncoderConfig()
	cfg.SkipLineEnding = true
	cfg.EncodeTime = zapcore.EpochNanosTimeEncoder
	cfg.LevelKey = ""
	encoder := zapcore.NewJSONEncoder(cfg)

	return zap.New(
		zapcore.NewCore(encoder, zapcore.Lock(writer), zap.DebugLevel),
		zap.AddCaller(),
	)
}
