package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("request_id", "abc").Info("handled", "status", 200)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "abc" {
		t.Errorf("request_id = %v, want abc", fields["request_id"])
	}
	if fields["status"] != int64(200) {
		t.Errorf("status = %v (%T), want 200", fields["status"], fields["status"])
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) error: %v", mode, err)
		}
		l.Debug("ok")
	}
}

func TestNewLevels(t *testing.T) {
	dev, err := New("dev")
	if err != nil {
		t.Fatalf("New(dev) error: %v", err)
	}
	if !dev.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel) {
		t.Error("dev logger should enable debug")
	}

	prod, err := New("prod")
	if err != nil {
		t.Fatalf("New(prod) error: %v", err)
	}
	core := prod.SugaredLogger.Desugar().Core()
	if core.Enabled(zap.DebugLevel) {
		t.Error("prod logger should not enable debug")
	}
	if !core.Enabled(zap.InfoLevel) {
		t.Error("prod logger should enable info")
	}
}
