package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "json", "info")
	require.NoError(t, err)

	log.Debug("hidden")
	log.InfoWithContext(context.Background(), "scan done", zap.Uint64("minimum", 46))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "scan done", entry["msg"])
	require.Equal(t, "info", entry["level"])
	require.InDelta(t, 46, entry["minimum"], 0)
	require.Contains(t, entry, "timestamp")
	require.Contains(t, entry, "build.version")
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	log := MustNewLogger(&buf, "text", "warn")
	log.Info("hidden")
	log.Warn("odd batch size")
	require.Contains(t, buf.String(), "WARN")
	require.Contains(t, buf.String(), "odd batch size")
	require.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerNone(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "json", "none")
	require.NoError(t, err)
	log.Error("dropped")
	require.Zero(t, buf.Len())
}

func TestNewLoggerRejectsUnknown(t *testing.T) {
	_, err := NewLogger(nil, "json", "loud")
	require.ErrorContains(t, err, "unknown log level")

	_, err = NewLogger(nil, "xml", "info")
	require.ErrorContains(t, err, "unknown log format")

	require.Panics(t, func() { MustNewLogger(nil, "xml", "info") })
}

func TestWithAddsFieldsToChildOnly(t *testing.T) {
	var buf bytes.Buffer
	parent := MustNewLogger(&buf, "json", "info")
	child := parent.With(zap.String("source", "a.txt"))

	child.Info("child")
	parent.Info("parent")
	require.NoError(t, parent.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var c, p map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &c))
	require.NoError(t, json.Unmarshal(lines[1], &p))
	require.Equal(t, "a.txt", c["source"])
	require.NotContains(t, p, "source")
}

func TestNoopLoggerWith(t *testing.T) {
	log := NewNoopLogger().With(zap.String("source", "x"))
	require.NotNil(t, log)
	log.Warn("dropped")
}
