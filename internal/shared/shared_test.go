package shared

import (
	"bytes"
	"strings"
	"testing"
)

func TestShared(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		if logger == nil {
			t.Fatal("expected logger to be created")
		}

		logger.Info("hello")
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "run", "abc123")

		logger.Info("tagged")
		out := buf.String()
		if !strings.Contains(out, "abc123") {
			t.Errorf("expected log output to carry the run field, got %q", out)
		}
	})

	t.Run("NewRunID", func(t *testing.T) {
		a := NewRunID()
		b := NewRunID()
		if a == "" || b == "" {
			t.Fatal("expected non-empty run ids")
		}
		if a == b {
			t.Error("expected run ids to be unique")
		}
	})
}
