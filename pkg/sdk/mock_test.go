package yojana

import (
	"context"

	"github.com/yojanadost/yojana/internal/domain/profile"
	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
	chatuc "github.com/yojanadost/yojana/internal/usecase/chat"
	healthuc "github.com/yojanadost/yojana/internal/usecase/health"
)

// --- queryUseCase mock ---

type mockQueryUC struct {
	queryFn func(state query.State) (query.Page, query.State, error)
}

func (m *mockQueryUC) Query(state query.State) (query.Page, query.State, error) {
	return m.queryFn(state)
}

func (m *mockQueryUC) DefaultState() query.State {
	return query.DefaultState().WithPageSize(5)
}

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	categoriesFn func() ([]cataloguc.CategorySummary, error)
	regionsFn    func() ([]cataloguc.RegionSummary, error)
	statsFn      func() (cataloguc.Stats, error)
	suggestFn    func(query string, limit int) ([]scheme.Scheme, error)
	schemeFn     func(id string) (scheme.Scheme, error)
}

func (m *mockCatalogUC) Categories() ([]cataloguc.CategorySummary, error) { return m.categoriesFn() }

func (m *mockCatalogUC) Regions() ([]cataloguc.RegionSummary, error) { return m.regionsFn() }

func (m *mockCatalogUC) Stats() (cataloguc.Stats, error) { return m.statsFn() }

func (m *mockCatalogUC) Suggest(query string, limit int) ([]scheme.Scheme, error) {
	return m.suggestFn(query, limit)
}

func (m *mockCatalogUC) Scheme(id string) (scheme.Scheme, error) { return m.schemeFn(id) }

// --- chatUseCase mock ---

type mockChatUC struct {
	respondFn func(ctx context.Context, message string) chatuc.Reply
}

func (m *mockChatUC) Respond(ctx context.Context, message string) chatuc.Reply {
	return m.respondFn(ctx, message)
}

// --- sessionUseCase mock ---

type mockSessionUC struct {
	toggleFn func(ctx context.Context, session profile.SessionID, id string) (bool, error)
	saveFn   func(ctx context.Context, session profile.SessionID, p profile.Preferences) (profile.Preferences, error)
}

func (m *mockSessionUC) NewSession() profile.SessionID { return profile.NewSessionID() }

func (m *mockSessionUC) BookmarkedSchemes(context.Context, profile.SessionID) ([]scheme.Scheme, error) {
	return nil, nil
}

func (m *mockSessionUC) IsBookmarked(context.Context, profile.SessionID, string) (bool, error) {
	return false, nil
}

func (m *mockSessionUC) ToggleBookmark(ctx context.Context, session profile.SessionID, id string) (bool, error) {
	return m.toggleFn(ctx, session, id)
}

func (m *mockSessionUC) RemoveBookmark(context.Context, profile.SessionID, string) error { return nil }

func (m *mockSessionUC) ClearBookmarks(context.Context, profile.SessionID) error { return nil }

func (m *mockSessionUC) Preferences(context.Context, profile.SessionID) (profile.Preferences, error) {
	return profile.DefaultPreferences(), nil
}

func (m *mockSessionUC) SavePreferences(
	ctx context.Context, session profile.SessionID, p profile.Preferences,
) (profile.Preferences, error) {
	return m.saveFn(ctx, session, p)
}

func (m *mockSessionUC) ResetPreferences(context.Context, profile.SessionID) (profile.Preferences, error) {
	return profile.DefaultPreferences(), nil
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
