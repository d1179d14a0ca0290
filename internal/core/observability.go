package core

import (
	"time"

	"github.com/rs/zerolog"
)

// Logger is the leveled structured logger consumed by the container. Key
// value pairs alternate in args.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// NoopLogger returns a logger that discards everything.
func NoopLogger() Logger { return noopLogger{} }

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger wraps the provided zerolog logger.
func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Debug(msg string, args ...any) { emit(z.l.Debug(), msg, args) }
func (z *ZerologLogger) Info(msg string, args ...any)  { emit(z.l.Info(), msg, args) }
func (z *ZerologLogger) Warn(msg string, args ...any)  { emit(z.l.Warn(), msg, args) }
func (z *ZerologLogger) Error(msg string, args ...any) { emit(z.l.Error(), msg, args) }

func emit(e *zerolog.Event, msg string, args []any) {
	fields := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		fields[key] = args[i+1]
	}
	e.Fields(fields).Msg(msg)
}

// MetricsRecorder observes dispatch outcomes. Success means the action was
// applied and, when a change resulted, the snapshot was persisted.
type MetricsRecorder interface {
	Observe(action string, success bool, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) Observe(string, bool, time.Duration) {}
