package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLevel("warn", slog.LevelInfo))
	assert.Equal(t, slog.LevelDebug, parseLevel(" DEBUG ", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud", slog.LevelInfo))
}
