package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type (
	ctxKey   struct{}
	eventKey struct{}
)

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// event collects fields for the canonical per-request log line.
type event struct {
	mu     sync.Mutex
	fields []zap.Field
}

// ContextWithEvent starts a wide event: fields added through AddEventFields
// below this context end up on one log line emitted by the caller.
func ContextWithEvent(ctx context.Context) context.Context {
	return context.WithValue(ctx, eventKey{}, &event{})
}

// AddEventFields annotates the current wide event. A no-op without one.
func AddEventFields(ctx context.Context, fields ...zap.Field) {
	e, ok := ctx.Value(eventKey{}).(*event)
	if !ok {
		return
	}
	e.mu.Lock()
	e.fields = append(e.fields, fields...)
	e.mu.Unlock()
}

// EventFields returns a copy of the fields added so far.
func EventFields(ctx context.Context) []zap.Field {
	e, ok := ctx.Value(eventKey{}).(*event)
	if !ok {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]zap.Field(nil), e.fields...)
}
