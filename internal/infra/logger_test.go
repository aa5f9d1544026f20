package infra

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Infof(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core))
	logger.Infof("test message %s", "value")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("expected info level, got %s", entries[0].Level)
	}
	if entries[0].Message != "test message value" {
		t.Fatalf("unexpected message: %s", entries[0].Message)
	}
}

func TestZapLogger_Errorf(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core))
	logger.Errorf("error message %s", "error")

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 error entry, got %d", len(entries))
	}
	if entries[0].Message != "error message error" {
		t.Fatalf("unexpected message: %s", entries[0].Message)
	}
}

func TestNewProductionLogger(t *testing.T) {
	l, err := NewProductionLogger("debug")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level enabled")
	}
	if _, err := NewProductionLogger("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	if logger == nil {
		t.Fatalf("expected non-nil logger")
	}
	logger.Infof("test")
	logger.Errorf("test")
}
