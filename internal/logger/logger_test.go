package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/samvad-hq/petstore-client/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitSetsPackageLogger(t *testing.T) {
	t.Cleanup(func() { S = nil })

	log, err := Init(&config.Config{AppName: "test", LogLevel: "debug"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if log == nil || S == nil {
		t.Fatal("expected logger to be initialized")
	}
	if !S.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level to be enabled")
	}
}

func TestZapLoggerWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core))

	log.InfoObj("pet seen", "pet", map[string]any{"id": 7})
	log.ErrorObj("publish failed", "error", "boom")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "pet seen" || entries[0].ContextMap()["pet"] == nil {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %v", entries[1].Level)
	}
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	if _, ok := l.(*NopLogger); !ok {
		t.Fatalf("expected *NopLogger, got %T", l)
	}
	l.InfoObj("discarded", "k", "v")
}
