package fixturetest

import (
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// NewLogger creates a logger writing to w. An unknown level falls back to
// info, like a missing one.
func NewLogger(cfg LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if strings.ToLower(cfg.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Str("component", "fixture").Logger()
}

// testWriter sends log lines to the test log, so they are only printed for
// failing or verbose tests.
type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
