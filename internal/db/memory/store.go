package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yojanadost/yojana/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store implements db.Store in process memory. Data does not survive a restart.
type Store struct {
	cache *gocache.Cache

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewStore creates an in-memory store that sweeps expired keys every
// cleanupInterval until Close. cleanupInterval <= 0 disables the sweep:
// expired keys are still never returned but their memory is only reclaimed
// on overwrite or Close.
func NewStore(cleanupInterval time.Duration) *Store {
	s := &Store{
		// go-cache's own janitor cannot be stopped, so sweeping is driven here.
		cache: gocache.New(gocache.NoExpiration, 0),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	if cleanupInterval <= 0 {
		close(s.done)
		return s
	}
	go s.sweep(cleanupInterval)
	return s
}

func (s *Store) sweep(interval time.Duration) {
	defer close(s.done)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.cache.DeleteExpired()
		case <-s.stop:
			return
		}
	}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// WaitForReady returns immediately.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Close stops the sweeper and drops all keys. Safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	s.cache.Flush()
}

// Get retrieves a copy of the value stored at key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return slices.Clone(v.([]byte)), nil
}

// Set stores a copy of value without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.cache.Set(key, slices.Clone(value), gocache.NoExpiration)
	return nil
}

// SetWithTTL stores a copy of value that expires after ttl.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.cache.Set(key, slices.Clone(value), ttl)
	return nil
}

// Del removes a key. Deleting a missing key is not an error.
func (s *Store) Del(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
