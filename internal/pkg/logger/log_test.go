package logger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewChannelLogger(t *testing.T) {
	messages := make(chan []byte, 4)
	log := NewChannelLogger(messages)

	log.Info("string=0, fret=3", zap.Int("fret", 3), Action)

	var entry struct {
		Msg   string `json:"msg"`
		Level int    `json:"level"`
		Fret  int    `json:"fret"`
		Ts    int64  `json:"ts"`
	}
	data := <-messages
	err := json.Unmarshal(data, &entry)
	assert.Equal(t, nil, err)
	assert.Equal(t, "string=0, fret=3", entry.Msg)
	assert.Equal(t, ActionLvl, entry.Level)
	assert.Equal(t, 3, entry.Fret)
	assert.NotEqual(t, int64(0), entry.Ts)
	assert.NotEqual(t, byte('\n'), data[len(data)-1])
}

func TestGetLoggerShared(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}
