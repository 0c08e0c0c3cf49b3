package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler_AddsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug)

	ctx := WithAttrs(context.Background(), slog.String("session_id", "abc123"))
	ctx = WithAttrs(ctx, slog.Int("level", 2))
	logger.InfoContext(ctx, "answer checked", slog.Bool("correct", true))

	out := buf.String()
	assert.Contains(t, out, "session_id=abc123")
	assert.Contains(t, out, "level=2")
	assert.Contains(t, out, "correct=true")
}

func TestWithAttrs_DoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug)

	parent := WithAttrs(context.Background(), slog.String("a", "1"))
	_ = WithAttrs(parent, slog.String("b", "2"))
	logger.InfoContext(parent, "msg")

	assert.Contains(t, buf.String(), "a=1")
	assert.NotContains(t, buf.String(), "b=2")
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "detective.log")
	logger, closer, err := OpenFile(path, slog.LevelInfo)
	require.NoError(t, err)

	logger.Info("hello", slog.String("k", "v"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "k=v")
}
