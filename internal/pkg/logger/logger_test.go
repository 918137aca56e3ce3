package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	s, z, ok := ParseLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, s)
	assert.Equal(t, zapcore.DebugLevel, z)

	s, _, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, s)
}

func TestInit_RoutesSlogToZap(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	core, logs := observer.New(zapcore.DebugLevel)
	Init(zap.New(core), "info")

	Debug("hidden")
	Info("market refreshed", "tokens", 20)
	NewComponentAdapter("market").Warn("slow upstream", "source", "coincap")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "market refreshed", entries[0].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "slow upstream", entries[1].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	}
}
