package schedlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdapterWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("task scheduled", "name", "blink", "at", uint64(1000))

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "task scheduled", line["msg"])
	require.Equal(t, "blink", line["name"])
}

func TestAdapterLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Warn("isr ring full", "name", "note", "err", errors.New("boom"))

	require.True(t, strings.Contains(buf.String(), "isr ring full"))
}
