package personalization

import (
	"context"
	"time"

	"github.com/yojanadost/yojana/internal/db"
	"github.com/yojanadost/yojana/internal/domain/profile"
)

const testSession profile.SessionID = "123e4567-e89b-12d3-a456-426614174000"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	data       map[string][]byte
	ttls       map[string]time.Duration
	getFn      func(ctx context.Context, key string) ([]byte, error)
	setFn      func(ctx context.Context, key string, value []byte) error
	delFn      func(ctx context.Context, key string) error
	setTTLHits int
}

func newMockStore() *mockStore {
	return &mockStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.data[key] = value
	return nil
}

func (m *mockStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.setTTLHits++
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	delete(m.data, key)
	return nil
}
