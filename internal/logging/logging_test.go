package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipshelf/internal/history"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatText, ParseFormat("TINT"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatAuto, ParseFormat("bogus"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug", slog.LevelInfo))
	assert.Equal(t, slog.LevelError, ParseLevel("ERROR", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, ParseLevel("", slog.LevelWarn))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud", slog.LevelInfo))
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func withLogger(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(NewHandler(&buf, FormatJSON, level)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogEntries(t *testing.T) {
	entries := []history.Entry{
		{ID: "1", Content: strings.Repeat("s", 80), ContentType: "text"},
		{ID: "2", Content: "short", ContentType: "text"},
	}

	t.Run("info hides content", func(t *testing.T) {
		buf := withLogger(t, slog.LevelInfo)
		LogEntries("history listed", entries)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
		assert.Equal(t, "history listed", rec["msg"])
		assert.EqualValues(t, 2, rec["entries"])
		assert.NotContains(t, buf.String(), "short")
	})

	t.Run("debug adds previews", func(t *testing.T) {
		buf := withLogger(t, slog.LevelDebug)
		LogEntries("history listed", entries)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
		assert.Equal(t, strings.Repeat("s", 60)+"…", rec["preview"])
	})
}
