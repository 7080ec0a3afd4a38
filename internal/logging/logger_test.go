package logging_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docmodel/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level string
		want  log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive", "DEBUG", log.DebugLevel},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			logger := logging.New(tt.level)
			require.NotNil(t, logger)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"", "debug", "INFO", "warn", "warning", "error"} {
		assert.True(t, logging.ValidLevel(level), level)
	}
	for _, level := range []string{"trace", "verbose", "fatal"} {
		assert.False(t, logging.ValidLevel(level), level)
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")
	logger.Debug("insert", logging.FieldPos, 3, logging.FieldLength, 2)

	out := buf.String()
	assert.Contains(t, out, "insert")
	assert.Contains(t, out, "pos=3")
	assert.Contains(t, out, "length=2")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	require.NotNil(t, logger)
	assert.Equal(t, log.ErrorLevel, logger.GetLevel())
}

func TestDefault(t *testing.T) {
	t.Parallel()

	logger := logging.Default()
	require.NotNil(t, logger)
	assert.Same(t, logger, logging.Default())
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}
