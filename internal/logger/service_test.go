package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "", expected: slog.LevelInfo},
		{input: "debug", expected: slog.LevelDebug},
		{input: "WARN", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "loud", expected: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, slog.LevelInfo, "").Info("deployed", "address", "erd1qqq")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "deployed", entry["msg"])
		assert.Equal(t, "erd1qqq", entry["address"])
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, slog.LevelInfo, "TEXT").Info("deployed")
		assert.Contains(t, buf.String(), "msg=deployed")
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, slog.LevelWarn, FormatJSON).Info("hidden")
		assert.Empty(t, buf.String())
	})
}
