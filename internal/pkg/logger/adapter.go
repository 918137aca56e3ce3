package logger

import (
	"log/slog"

	"crypto_dashboard/internal/app/port"
)

// slogAdapter реализует port.Logger поверх slog.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a port.Logger writing through slog.Default.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewComponentAdapter returns a port.Logger that tags every record with component.
func NewComponentAdapter(component string) port.Logger {
	return &slogAdapter{l: slog.Default().With("component", component)}
}

func (a *slogAdapter) logger() *slog.Logger {
	if a.l != nil {
		return a.l
	}
	return slog.Default()
}

func (a *slogAdapter) Info(msg string, args ...any)  { a.logger().Info(msg, args...) }
func (a *slogAdapter) Debug(msg string, args ...any) { a.logger().Debug(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.logger().Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.logger().Error(msg, args...) }

// Nop discards everything. Used by tests and the report CLI's quiet mode.
type Nop struct{}

func (Nop) Info(string, ...any)  {}
func (Nop) Debug(string, ...any) {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(string, ...any) {}
