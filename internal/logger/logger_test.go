package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notaryweb/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	require.NoError(t, err)

	log.Info("content mutated", zap.String("resource", "links"))
	log.Debug("suppressed")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	require.True(t, strings.Contains(body, `"resource":"links"`), "expected structured field in %s", body)
	require.False(t, strings.Contains(body, "suppressed"), "debug entries must be filtered at info level")
}
