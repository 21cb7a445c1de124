package logging

import "testing"

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		logger := New(level)
		if logger == nil || logger.Logger == nil {
			t.Fatalf("New(%q) returned nil logger", level)
		}
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("Default returned nil")
	}
	logger.Info("smoke", "key", "value")
}

func TestWithComponent(t *testing.T) {
	child := Default().WithComponent("booking")
	if child == nil || child.Logger == nil {
		t.Fatal("WithComponent returned nil")
	}

	var nilLogger *Logger
	if nilLogger.WithComponent("booking") == nil {
		t.Fatal("WithComponent on nil logger should fall back to default")
	}
}
