// Package db defines the key-value capability that session data is kept in.
// Drivers live in the memory and redis subpackages.
package db

import (
	"context"
	"time"
)

// Store is what a driver provides: KV access plus lifecycle.
type Store interface {
	Pinger
	KVStore
	// WaitForReady blocks until the backend answers or timeout elapses.
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// Pinger is satisfied by anything health checks can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore stores opaque values under string keys.
// Get returns ErrKeyNotFound for a missing or expired key.
// SetWithTTL with ttl <= 0 behaves like Set.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
