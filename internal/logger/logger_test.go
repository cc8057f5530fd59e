package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainkit/internal/config"
)

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLoggerTo(config.LoggerConfig{Level: "warn", Encoding: "json"}, &buf)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewLoggerToFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLoggerTo(config.LoggerConfig{Level: "loud", Encoding: "console"}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLoggerToReportsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewLoggerTo(config.LoggerConfig{Level: "loud", Encoding: "json"}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Unknown log level")
}

func TestNewLoggerToRejectsUnknownEncoding(t *testing.T) {
	_, err := NewLoggerTo(config.LoggerConfig{Level: "info", Encoding: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "xml")
}
