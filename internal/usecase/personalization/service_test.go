package personalization

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/profile"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

// --- Mocks ---

type mockRepo struct {
	bookmarks map[profile.SessionID][]string
	prefs     map[profile.SessionID]profile.Preferences
	saveErr   error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		bookmarks: map[profile.SessionID][]string{},
		prefs:     map[profile.SessionID]profile.Preferences{},
	}
}

func (m *mockRepo) Bookmarks(_ context.Context, s profile.SessionID) ([]string, error) {
	return append([]string{}, m.bookmarks[s]...), nil
}

func (m *mockRepo) SaveBookmarks(_ context.Context, s profile.SessionID, ids []string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.bookmarks[s] = append([]string{}, ids...)
	return nil
}

func (m *mockRepo) DeleteBookmarks(_ context.Context, s profile.SessionID) error {
	delete(m.bookmarks, s)
	return nil
}

func (m *mockRepo) Preferences(_ context.Context, s profile.SessionID) (profile.Preferences, bool, error) {
	p, ok := m.prefs[s]
	if !ok {
		return profile.DefaultPreferences(), false, nil
	}
	return p, true, nil
}

func (m *mockRepo) SavePreferences(_ context.Context, s profile.SessionID, p profile.Preferences) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.prefs[s] = p
	return nil
}

func (m *mockRepo) DeletePreferences(_ context.Context, s profile.SessionID) error {
	delete(m.prefs, s)
	return nil
}

type mockLookup struct {
	schemes map[string]scheme.Scheme
	err     error
}

func (m *mockLookup) Get(id string) (scheme.Scheme, error) {
	if m.err != nil {
		return scheme.Scheme{}, m.err
	}
	s, ok := m.schemes[id]
	if !ok {
		return scheme.Scheme{}, domain.ErrSchemeNotFound
	}
	return s, nil
}

func newLookup(ids ...string) *mockLookup {
	m := &mockLookup{schemes: map[string]scheme.Scheme{}}
	for _, id := range ids {
		m.schemes[id] = scheme.Reconstruct(id, "Title "+id, "", "Health", "central", scheme.Central, nil, nil, scheme.Details{})
	}
	return m
}

const sess profile.SessionID = "123e4567-e89b-12d3-a456-426614174000"

// --- Tests ---

func TestToggleBookmark(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, newLookup("a", "b"))
	ctx := context.Background()

	on, err := svc.ToggleBookmark(ctx, sess, "a")
	if err != nil || !on {
		t.Fatalf("expected bookmarked, got %v %v", on, err)
	}
	if _, err := svc.ToggleBookmark(ctx, sess, "b"); err != nil {
		t.Fatal(err)
	}

	ids, _ := svc.Bookmarks(ctx, sess)
	if diff := cmp.Diff([]string{"a", "b"}, ids); diff != "" {
		t.Errorf("bookmarks mismatch (-want +got):\n%s", diff)
	}

	on, err = svc.ToggleBookmark(ctx, sess, "a")
	if err != nil || on {
		t.Fatalf("expected unbookmarked, got %v %v", on, err)
	}
	ids, _ = svc.Bookmarks(ctx, sess)
	if diff := cmp.Diff([]string{"b"}, ids); diff != "" {
		t.Errorf("bookmarks mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleBookmark_UnknownScheme(t *testing.T) {
	svc := New(newMockRepo(), newLookup("a"))

	_, err := svc.ToggleBookmark(context.Background(), sess, "zzz")
	if !errors.Is(err, domain.ErrSchemeNotFound) {
		t.Fatalf("expected ErrSchemeNotFound, got %v", err)
	}
}

func TestToggleBookmark_RemovesStaleId(t *testing.T) {
	repo := newMockRepo()
	repo.bookmarks[sess] = []string{"gone"}
	svc := New(repo, newLookup())

	on, err := svc.ToggleBookmark(context.Background(), sess, "gone")
	if err != nil || on {
		t.Fatalf("expected stale bookmark removed, got %v %v", on, err)
	}
}

func TestToggleBookmark_DatasetUnavailable(t *testing.T) {
	svc := New(newMockRepo(), &mockLookup{err: domain.ErrDatasetUnavailable})

	_, err := svc.ToggleBookmark(context.Background(), sess, "a")
	if !errors.Is(err, domain.ErrDatasetUnavailable) {
		t.Fatalf("expected ErrDatasetUnavailable, got %v", err)
	}
}

func TestToggleBookmark_SaveError(t *testing.T) {
	repo := newMockRepo()
	repo.saveErr = errors.New("store down")
	svc := New(repo, newLookup("a"))

	if _, err := svc.ToggleBookmark(context.Background(), sess, "a"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRemoveAndClearBookmarks(t *testing.T) {
	repo := newMockRepo()
	repo.bookmarks[sess] = []string{"a", "b", "c"}
	svc := New(repo, newLookup("a", "b", "c"))
	ctx := context.Background()

	if err := svc.RemoveBookmark(ctx, sess, "b"); err != nil {
		t.Fatal(err)
	}
	if err := svc.RemoveBookmark(ctx, sess, "missing"); err != nil {
		t.Fatalf("removing absent bookmark should be a no-op: %v", err)
	}
	ok, _ := svc.IsBookmarked(ctx, sess, "b")
	if ok {
		t.Error("expected b removed")
	}
	ok, _ = svc.IsBookmarked(ctx, sess, "c")
	if !ok {
		t.Error("expected c still bookmarked")
	}

	if err := svc.ClearBookmarks(ctx, sess); err != nil {
		t.Fatal(err)
	}
	ids, _ := svc.Bookmarks(ctx, sess)
	if len(ids) != 0 {
		t.Errorf("expected no bookmarks, got %v", ids)
	}
}

func TestBookmarkedSchemes_SkipsUnknown(t *testing.T) {
	repo := newMockRepo()
	repo.bookmarks[sess] = []string{"b", "gone", "a"}
	svc := New(repo, newLookup("a", "b"))

	got, err := svc.BookmarkedSchemes(context.Background(), sess)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID() != "b" || got[1].ID() != "a" {
		t.Errorf("unexpected schemes: %v", got)
	}
}

func TestPreferences_Lifecycle(t *testing.T) {
	svc := New(newMockRepo(), newLookup())
	ctx := context.Background()

	p, err := svc.Preferences(ctx, sess)
	if err != nil || p != profile.DefaultPreferences() {
		t.Fatalf("expected defaults, got %+v %v", p, err)
	}

	p.Language = "ta"
	p.DataSharing = true
	saved, err := svc.SavePreferences(ctx, sess, p)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := svc.Preferences(ctx, sess)
	if got != saved {
		t.Errorf("expected %+v, got %+v", saved, got)
	}

	reset, err := svc.ResetPreferences(ctx, sess)
	if err != nil || reset != profile.DefaultPreferences() {
		t.Fatalf("expected defaults after reset, got %+v %v", reset, err)
	}
	got, _ = svc.Preferences(ctx, sess)
	if got != profile.DefaultPreferences() {
		t.Errorf("expected defaults after reset, got %+v", got)
	}
}

func TestSavePreferences_Invalid(t *testing.T) {
	repo := newMockRepo()
	svc := New(repo, newLookup())

	p := profile.DefaultPreferences()
	p.Language = "x"
	if _, err := svc.SavePreferences(context.Background(), sess, p); !errors.Is(err, domain.ErrInvalidPreferences) {
		t.Fatalf("expected ErrInvalidPreferences, got %v", err)
	}
	if len(repo.prefs) != 0 {
		t.Error("invalid preferences must not be stored")
	}
}

func TestNewSession(t *testing.T) {
	svc := New(newMockRepo(), newLookup())
	a, b := svc.NewSession(), svc.NewSession()
	if a == b {
		t.Error("expected distinct sessions")
	}
	if _, err := profile.ParseSessionID(string(a)); err != nil {
		t.Errorf("minted session should parse: %v", err)
	}
}
