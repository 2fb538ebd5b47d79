package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Environments(t *testing.T) {
	for _, env := range []string{"local", "dev", "docker", "prod", "test"} {
		t.Run(env, func(t *testing.T) {
			l, err := NewLogger(env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l == nil {
				t.Fatal("expected logger")
			}
		})
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging"); err == nil {
		t.Error("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level enabled")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestContextWithLogger(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected nop logger")
	}

	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Error("expected stored logger")
	}
}

func TestEventFields(t *testing.T) {
	// Without an event, annotations are dropped.
	AddEventFields(context.Background(), zap.String("dropped", "x"))
	if got := EventFields(context.Background()); got != nil {
		t.Errorf("expected nil fields, got %v", got)
	}

	ctx := ContextWithEvent(context.Background())
	AddEventFields(ctx, zap.Int("result_count", 3))
	AddEventFields(ctx, zap.String("chat_rule", "greeting"))

	got := EventFields(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(got))
	}
	if got[0].Key != "result_count" || got[1].Key != "chat_rule" {
		t.Errorf("unexpected keys: %q, %q", got[0].Key, got[1].Key)
	}

	// Returned slice is a copy.
	got[0] = zap.Skip()
	if EventFields(ctx)[0].Key != "result_count" {
		t.Error("EventFields must not expose internal state")
	}
}
