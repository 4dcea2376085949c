package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapSink_Error(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := NewZapSink(zap.New(core))

	sink.Error("dump failed", errors.New("boom"), zap.String("variable", "x"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Message != "dump failed" || e.Level != zapcore.ErrorLevel {
		t.Errorf("entry = %q at %v", e.Message, e.Level)
	}
	ctx := e.ContextMap()
	if ctx["variable"] != "x" || ctx["error"] != "boom" {
		t.Errorf("context = %v", ctx)
	}
}

func TestZapSink_PackageLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	NewZapSink(nil).Error("recovered", errors.New("bad"))

	if logs.Len() != 1 {
		t.Errorf("expected 1 entry on the package logger, got %d", logs.Len())
	}
}

func TestLogger_DefaultNop(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	if Logger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("default logger should be a no-op")
	}
}

func TestNew(t *testing.T) {
	l, err := New("debug", true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}

	if _, err := New("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSinkFunc(t *testing.T) {
	calls := 0
	var s Sink = SinkFunc(func(string, error, ...zap.Field) { calls++ })
	s.Error("x", nil)
	Nop().Error("y", nil)

	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}
