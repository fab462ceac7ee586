package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		from       slog.Level
		level      slog.Level
		wantSource bool
	}{
		{name: "info below warn threshold", from: slog.LevelWarn, level: slog.LevelInfo, wantSource: false},
		{name: "warn at threshold", from: slog.LevelWarn, level: slog.LevelWarn, wantSource: true},
		{name: "error above threshold", from: slog.LevelWarn, level: slog.LevelError, wantSource: true},
		{name: "debug threshold shows info", from: slog.LevelDebug, level: slog.LevelInfo, wantSource: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			l := slog.New(NewSourceHandler(base, tt.from))

			l.Log(context.Background(), tt.level, "hello")

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewNopDiscards(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.With("k", "v").Named("x").Errorw("boom", "error", assert.AnError)
	})
}
