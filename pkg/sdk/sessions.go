package yojana

import (
	"context"
	"time"

	"github.com/yojanadost/yojana/internal/domain/profile"
)

// SessionService keeps per-session bookmarks and preferences.
// Sessions are identified by the UUID string returned from New.
type SessionService struct {
	svc sessionUseCase
	obs *observer
}

// New issues a fresh session id.
func (s *SessionService) New() string {
	return string(s.svc.NewSession())
}

// Bookmarks returns the bookmarked schemes of a session in the order they were added.
// Bookmarks pointing at schemes no longer in the dataset are skipped.
func (s *SessionService) Bookmarks(ctx context.Context, session string) (_ []Scheme, err error) {
	start := time.Now()
	defer func() { s.obs.observe("sessions.bookmarks", start, err) }()

	id, err := profile.ParseSessionID(session)
	if err != nil {
		return nil, err
	}
	found, err := s.svc.BookmarkedSchemes(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromInternalSchemes(found), nil
}

// IsBookmarked reports whether a scheme is bookmarked in a session.
func (s *SessionService) IsBookmarked(ctx context.Context, session, schemeID string) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("sessions.bookmarks.check", start, err) }()

	id, err := profile.ParseSessionID(session)
	if err != nil {
		return false, err
	}
	return s.svc.IsBookmarked(ctx, id, schemeID)
}

// ToggleBookmark adds or removes a bookmark and reports whether it is now set.
func (s *SessionService) ToggleBookmark(ctx context.Context, session, schemeID string) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("sessions.bookmarks.toggle", start, err) }()

	id, err := profile.ParseSessionID(session)
	if err != nil {
		return false, err
	}
	return s.svc.ToggleBookmark(ctx, id, schemeID)
}

// RemoveBookmark removes a bookmark. Removing a missing bookmark is not an error.
func (s *SessionService) RemoveBookmark(ctx context.Context, session, schemeID string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("sessions.bookmarks.remove", start, err) }()

	id, err := profile.ParseSessionID(session)
	if err != nil {
		return err
	}
	return s.svc.RemoveBookmark(ctx, id, schemeID)
}

// ClearBookmarks removes every bookmark of a session.
func (s *SessionService) ClearBookmarks(ctx context.Context, session string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("sessions.bookmarks.clear", start, err) }()

	id, err := profile.ParseSessionID(session)
	if err != nil {
		return err
	}
	return s.svc.ClearBookmarks(ctx, id)
}

// Preferences returns the saved preferences or the defaults.
func (s *SessionService) Preferences(ctx context.Context, session string) (_ Preferences, err error) {
	start := time.Now()
	defer func() { s.obs.observe("sessions.preferences.get", start, err) }()

	id, err := profile.ParseSessionID(session)
	if err != nil {
		return Preferences{}, err
	}
	return s.svc.Preferences(ctx, id)
}

// SavePreferences validates and stores preferences.
func (s *SessionService) SavePreferences(ctx context.Context, session string, p Preferences) (_ Preferences, err error) {
	start := time.Now()
	defer func() { s.obs.observe("sessions.preferences.save", start, err) }()

	id, err := profile.ParseSessionID(session)
	if err != nil {
		return Preferences{}, err
	}
	return s.svc.SavePreferences(ctx, id, p)
}

// ResetPreferences drops saved preferences and returns the defaults.
func (s *SessionService) ResetPreferences(ctx context.Context, session string) (_ Preferences, err error) {
	start := time.Now()
	defer func() { s.obs.observe("sessions.preferences.reset", start, err) }()

	id, err := profile.ParseSessionID(session)
	if err != nil {
		return Preferences{}, err
	}
	return s.svc.ResetPreferences(ctx, id)
}
