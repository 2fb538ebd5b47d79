package personalization

import (
	"context"

	"github.com/yojanadost/yojana/internal/domain/profile"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

// Repository defines the storage contract for bookmarks and preferences.
type Repository interface {
	Bookmarks(ctx context.Context, session profile.SessionID) ([]string, error)
	SaveBookmarks(ctx context.Context, session profile.SessionID, ids []string) error
	DeleteBookmarks(ctx context.Context, session profile.SessionID) error
	Preferences(ctx context.Context, session profile.SessionID) (profile.Preferences, bool, error)
	SavePreferences(ctx context.Context, session profile.SessionID, p profile.Preferences) error
	DeletePreferences(ctx context.Context, session profile.SessionID) error
}

// SchemeLookup resolves scheme ids against the loaded dataset.
type SchemeLookup interface {
	Get(id string) (scheme.Scheme, error)
}
