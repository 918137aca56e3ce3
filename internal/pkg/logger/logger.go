// Package logger routes log/slog through zap and exposes package-level helpers.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config level name onto slog and zap levels. Unknown names fall back
// to info.
func ParseLevel(levelStr string) (slog.Level, zapcore.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, zapcore.DebugLevel, true
	case "INFO", "":
		return slog.LevelInfo, zapcore.InfoLevel, true
	case "WARN", "WARNING":
		return slog.LevelWarn, zapcore.WarnLevel, true
	case "ERROR":
		return slog.LevelError, zapcore.ErrorLevel, true
	default:
		return slog.LevelInfo, zapcore.InfoLevel, false
	}
}

// NewZap builds the process zap logger. Development mode uses the console encoder.
func NewZap(levelStr string, development bool) (*zap.Logger, error) {
	_, zapLevel, _ := ParseLevel(levelStr)

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return cfg.Build()
}

// Init makes zapLogger the backend of slog.Default.
func Init(zapLogger *zap.Logger, levelStr string) {
	slogLevel, _, ok := ParseLevel(levelStr)

	handler := slogzap.Option{
		Level:  slogLevel,
		Logger: zapLogger,
	}.NewZapHandler()
	slog.SetDefault(slog.New(handler))

	if !ok {
		slog.Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	slog.Default().Log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	slog.Default().Log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	slog.Default().Log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	slog.Default().Log(context.Background(), slog.LevelError, msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	// пишем всегда, независимо от уровня
	slog.Default().Error(msg, args...)
	os.Exit(1)
}
