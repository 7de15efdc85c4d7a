package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Medium: 42 * time.Second})

	if got := Medium(); got != 42*time.Second {
		t.Errorf("Medium: got %v, want 42s", got)
	}
	if got := Ping(); got != DefaultPing {
		t.Errorf("Ping: got %v, want default %v", got, DefaultPing)
	}
	if got := Short(); got != DefaultShort {
		t.Errorf("Short: got %v, want default %v", got, DefaultShort)
	}
}

func TestReset(t *testing.T) {
	Configure(Config{Ping: time.Minute, Short: time.Minute, Medium: time.Minute})
	Reset()

	if Ping() != DefaultPing || Short() != DefaultShort || Medium() != DefaultMedium {
		t.Errorf("Reset did not restore defaults: %v %v %v", Ping(), Short(), Medium())
	}
}

func TestWithTimeout_LogsOnDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, log, "browse resources")
	<-ctx.Done()
	cancel()

	if logs.Len() != 1 {
		t.Fatalf("warnings: got %d, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "operation timed out" {
		t.Errorf("message: got %q", entry.Message)
	}
	if op := entry.ContextMap()["operation"]; op != "browse resources" {
		t.Errorf("operation field: got %v", op)
	}
}

func TestWithTimeout_SilentOnCancel(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	_, cancel := WithTimeout(context.Background(), time.Hour, zap.New(core), "noop")
	cancel()

	if logs.Len() != 0 {
		t.Errorf("warnings: got %d, want 0", logs.Len())
	}
}
