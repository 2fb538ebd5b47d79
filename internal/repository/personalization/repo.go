package personalization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yojanadost/yojana/internal/db"
	"github.com/yojanadost/yojana/internal/domain/profile"
)

// store is the consumer interface for personalization data (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/personalization.Repository over a key-value store.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a personalization repository. ttl <= 0 keeps keys forever.
func New(s store, prefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, prefix: prefix, ttl: ttl}
}

// Bookmarks returns the bookmarked scheme ids in insertion order.
func (r *Repo) Bookmarks(ctx context.Context, session profile.SessionID) ([]string, error) {
	ids := []string{}
	found, err := r.load(ctx, bookmarksKey(r.prefix, session), &ids)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	if !found {
		return []string{}, nil
	}
	return ids, nil
}

// SaveBookmarks replaces the bookmark list. An empty list deletes the key.
func (r *Repo) SaveBookmarks(ctx context.Context, session profile.SessionID, ids []string) error {
	key := bookmarksKey(r.prefix, session)
	if len(ids) == 0 {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("del bookmarks: %w", err)
		}
		return nil
	}
	if err := r.save(ctx, key, ids); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

// DeleteBookmarks removes all bookmarks of a session.
func (r *Repo) DeleteBookmarks(ctx context.Context, session profile.SessionID) error {
	if err := r.store.Del(ctx, bookmarksKey(r.prefix, session)); err != nil {
		return fmt.Errorf("del bookmarks: %w", err)
	}
	return nil
}

// Preferences returns the saved preferences and whether any were found.
func (r *Repo) Preferences(ctx context.Context, session profile.SessionID) (profile.Preferences, bool, error) {
	p := profile.DefaultPreferences()
	found, err := r.load(ctx, preferencesKey(r.prefix, session), &p)
	if err != nil {
		return profile.Preferences{}, false, fmt.Errorf("load preferences: %w", err)
	}
	return p, found, nil
}

// SavePreferences stores preferences.
func (r *Repo) SavePreferences(ctx context.Context, session profile.SessionID, p profile.Preferences) error {
	if err := r.save(ctx, preferencesKey(r.prefix, session), p); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// DeletePreferences removes saved preferences.
func (r *Repo) DeletePreferences(ctx context.Context, session profile.SessionID) error {
	if err := r.store.Del(ctx, preferencesKey(r.prefix, session)); err != nil {
		return fmt.Errorf("del preferences: %w", err)
	}
	return nil
}

func (r *Repo) load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Repo) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if r.ttl > 0 {
		return r.store.SetWithTTL(ctx, key, data, r.ttl) //nolint:wrapcheck // wrapped by caller
	}
	return r.store.Set(ctx, key, data) //nolint:wrapcheck // wrapped by caller
}

// Key patterns: {prefix}bookmarks:{session}, {prefix}preferences:{session}

func bookmarksKey(prefix string, session profile.SessionID) string {
	return fmt.Sprintf("%sbookmarks:%s", prefix, session)
}

func preferencesKey(prefix string, session profile.SessionID) string {
	return fmt.Sprintf("%spreferences:%s", prefix, session)
}
