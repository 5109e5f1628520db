package common

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		info  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"bogus", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := NewLogger(&bytes.Buffer{}, tt.level)
			assert.Equal(t, tt.debug, l.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.info, l.Enabled(context.Background(), slog.LevelInfo))
		})
	}
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "info").Info("batch.finished", "complete", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "batch.finished", line["msg"])
	assert.EqualValues(t, 3, line["complete"])
}
