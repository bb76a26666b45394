package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&config.Config{LogFormat: "json", LogLevel: "warn"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "backend", "redis")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "redis", line["backend"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{level: "debug", want: "DEBUG"},
		{level: "WARNING", want: "WARN"},
		{level: "error", want: "ERROR"},
		{level: "", want: "INFO"},
		{level: "verbose", want: "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(&config.Config{LogLevel: tt.level}).String())
		})
	}
	assert.Equal(t, "INFO", parseLevel(nil).String())
}
