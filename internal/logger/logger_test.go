package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplace(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := Replace(zap.New(core))

	Get().Infow("summary cached", "user_id", "u-1")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "summary cached" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.ContextMap()["user_id"] != "u-1" {
		t.Errorf("expected user_id field, got %v", entry.ContextMap())
	}

	restore()
	Get().Info("after restore")
	if logs.Len() != 1 {
		t.Error("restored logger should not write to the observer")
	}
}

func TestGetInitializesLazily(t *testing.T) {
	if Get() == nil {
		t.Fatal("expected a logger")
	}
	Sync()
}
