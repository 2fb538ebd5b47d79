package personalization

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/profile"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

// Service manages per-session bookmarks and preferences.
type Service struct {
	repo    Repository
	schemes SchemeLookup
}

// New creates a personalization service.
func New(repo Repository, schemes SchemeLookup) *Service {
	return &Service{repo: repo, schemes: schemes}
}

// NewSession mints a session id. Nothing is stored until the session saves something.
func (s *Service) NewSession() profile.SessionID {
	return profile.NewSessionID()
}

// Bookmarks returns bookmarked scheme ids in the order they were added.
func (s *Service) Bookmarks(ctx context.Context, session profile.SessionID) ([]string, error) {
	ids, err := s.repo.Bookmarks(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return ids, nil
}

// BookmarkedSchemes resolves bookmarks to schemes. Ids missing from the dataset are skipped.
func (s *Service) BookmarkedSchemes(ctx context.Context, session profile.SessionID) ([]scheme.Scheme, error) {
	ids, err := s.Bookmarks(ctx, session)
	if err != nil {
		return nil, err
	}

	out := make([]scheme.Scheme, 0, len(ids))
	for _, id := range ids {
		sch, err := s.schemes.Get(id)
		if errors.Is(err, domain.ErrSchemeNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve bookmark %s: %w", id, err)
		}
		out = append(out, sch)
	}
	return out, nil
}

// IsBookmarked reports whether a scheme is bookmarked.
func (s *Service) IsBookmarked(ctx context.Context, session profile.SessionID, id string) (bool, error) {
	ids, err := s.Bookmarks(ctx, session)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// ToggleBookmark adds or removes a bookmark and returns whether it is now bookmarked.
// Adding requires the scheme to exist in the dataset.
func (s *Service) ToggleBookmark(ctx context.Context, session profile.SessionID, id string) (bool, error) {
	ids, err := s.Bookmarks(ctx, session)
	if err != nil {
		return false, err
	}

	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
		if err := s.repo.SaveBookmarks(ctx, session, ids); err != nil {
			return false, fmt.Errorf("remove bookmark: %w", err)
		}
		return false, nil
	}

	if _, err := s.schemes.Get(id); err != nil {
		return false, fmt.Errorf("bookmark %s: %w", id, err)
	}
	if err := s.repo.SaveBookmarks(ctx, session, append(ids, id)); err != nil {
		return false, fmt.Errorf("add bookmark: %w", err)
	}
	return true, nil
}

// RemoveBookmark removes one bookmark. Removing an absent bookmark is a no-op.
func (s *Service) RemoveBookmark(ctx context.Context, session profile.SessionID, id string) error {
	ids, err := s.Bookmarks(ctx, session)
	if err != nil {
		return err
	}
	i := slices.Index(ids, id)
	if i < 0 {
		return nil
	}
	if err := s.repo.SaveBookmarks(ctx, session, slices.Delete(ids, i, i+1)); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// ClearBookmarks removes every bookmark of the session.
func (s *Service) ClearBookmarks(ctx context.Context, session profile.SessionID) error {
	if err := s.repo.DeleteBookmarks(ctx, session); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}
	return nil
}

// Preferences returns saved preferences, or the defaults.
func (s *Service) Preferences(ctx context.Context, session profile.SessionID) (profile.Preferences, error) {
	p, _, err := s.repo.Preferences(ctx, session)
	if err != nil {
		return profile.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}
	return p, nil
}

// SavePreferences validates and stores preferences.
func (s *Service) SavePreferences(ctx context.Context, session profile.SessionID, p profile.Preferences) (profile.Preferences, error) {
	if err := p.Validate(); err != nil {
		return profile.Preferences{}, err
	}
	if err := s.repo.SavePreferences(ctx, session, p); err != nil {
		return profile.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return p, nil
}

// ResetPreferences drops saved preferences and returns the defaults.
func (s *Service) ResetPreferences(ctx context.Context, session profile.SessionID) (profile.Preferences, error) {
	if err := s.repo.DeletePreferences(ctx, session); err != nil {
		return profile.Preferences{}, fmt.Errorf("reset preferences: %w", err)
	}
	return profile.DefaultPreferences(), nil
}
