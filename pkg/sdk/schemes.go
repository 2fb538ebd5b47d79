package yojana

import (
	"context"
	"fmt"
	"time"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/query"
)

// SchemeService queries and looks up schemes.
type SchemeService struct {
	queries queryUseCase
	catalog catalogUseCase
	obs     *observer
}

// Query returns one page of schemes. An out-of-range page is clamped to the
// last page; the effective query is echoed back in Page.Query.
func (s *SchemeService) Query(ctx context.Context, q Query) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("schemes.query", start, err) }()

	if err = ctx.Err(); err != nil {
		return Page{}, fmt.Errorf("query schemes: %w", err)
	}
	st, err := toInternalState(q, s.queries.DefaultState())
	if err != nil {
		return Page{}, fmt.Errorf("query schemes: %w", err)
	}
	page, applied, err := s.queries.Query(st)
	if err != nil {
		return Page{}, err
	}
	return fromInternalPage(page, applied), nil
}

// Get returns one scheme by id.
func (s *SchemeService) Get(ctx context.Context, id string) (_ Scheme, err error) {
	start := time.Now()
	defer func() { s.obs.observe("schemes.get", start, err) }()

	if err = ctx.Err(); err != nil {
		return Scheme{}, fmt.Errorf("get scheme: %w", err)
	}
	sc, err := s.catalog.Scheme(id)
	if err != nil {
		return Scheme{}, fmt.Errorf("get scheme: %w", err)
	}
	return fromInternalScheme(sc), nil
}

// Suggest returns up to limit schemes whose title starts with or contains text.
// Texts shorter than three characters return nothing.
func (s *SchemeService) Suggest(ctx context.Context, text string, limit int) (_ []Scheme, err error) {
	start := time.Now()
	defer func() { s.obs.observe("schemes.suggest", start, err) }()

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("suggest schemes: %w", err)
	}
	found, err := s.catalog.Suggest(text, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest schemes: %w", err)
	}
	return fromInternalSchemes(found), nil
}

// Search starts a fluent query for a free-text term.
func (s *SchemeService) Search(term string) *QueryBuilder {
	return &QueryBuilder{svc: s, q: Query{Search: term}}
}

// Browse starts a fluent query with no search term.
func (s *SchemeService) Browse() *QueryBuilder {
	return &QueryBuilder{svc: s}
}

func toInternalState(q Query, defaults query.State) (query.State, error) {
	key, err := query.ParseSortKey(string(q.Sort))
	if err != nil {
		return query.State{}, fmt.Errorf("%w: %v", domain.ErrInvalidQuery, err)
	}
	if q.PageSize < 0 {
		return query.State{}, fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidQuery, q.PageSize)
	}

	// Out-of-range pages are clamped downstream, never rejected.
	page, size := q.Page, q.PageSize
	if page == 0 {
		page = defaults.PageNumber()
	}
	if size == 0 {
		size = defaults.PageSize()
	}
	return query.NewState(q.Search, q.Category, q.State, key, page, size), nil
}
