package logger

import (
	"context"
	"log/slog"
)

// Interface is the logger injected into use cases, repositories and handlers.
// The *w variants take alternating key/value pairs.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type slogLogger struct {
	l *slog.Logger
}

func NewLogger() Interface {
	return &slogLogger{l: Get()}
}

func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{l: l}
}

// NewNop discards everything. Intended for tests.
func NewNop() Interface {
	return &slogLogger{l: slog.New(discardHandler{})}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *slogLogger) With(args ...any) Interface {
	return &slogLogger{l: s.l.With(args...)}
}

func (s *slogLogger) Named(name string) Interface {
	return &slogLogger{l: s.l.With("logger", name)}
}

func (s *slogLogger) Debugw(msg string, kv ...any) { s.l.Debug(msg, kv...) }
func (s *slogLogger) Infow(msg string, kv ...any)  { s.l.Info(msg, kv...) }
func (s *slogLogger) Warnw(msg string, kv ...any)  { s.l.Warn(msg, kv...) }
func (s *slogLogger) Errorw(msg string, kv ...any) { s.l.Error(msg, kv...) }

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
