package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoggerConfig_ToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		cfg := &LoggerConfig{Level: in}
		assert.Equal(t, want, cfg.ToZapLevel(), "level %q", in)
	}
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "catalog.log")
	l := NewLogger(&LoggerConfig{Level: "info", Format: "json", OutputFile: path})
	require.NotNil(t, l)

	named := l.Named("test")
	assert.NotSame(t, l, named)
	named.Info("hello")
	_ = l.Sync()

	assert.FileExists(t, path)
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Named("x").Info("discarded")
	})
}
