package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}

	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerWithFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "appdex.log")

	log := NewLogger(Config{Level: "debug", LogFile: logFile, Quiet: true})
	log.Info().Str("component", "test").Msg("hello")

	if log.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", log.GetLevel())
	}
}

func TestTestLoggerWritesToBuffer(t *testing.T) {
	var buf bytes.Buffer
	log := NewTestLogger(&buf)
	log.Warn().Msg("recorded")

	if !strings.Contains(buf.String(), "recorded") {
		t.Fatalf("expected buffer to contain message, got %q", buf.String())
	}
}
