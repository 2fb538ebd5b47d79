package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

// entry is a scheme with its searchable fields case-folded once at construction.
type entry struct {
	scheme      scheme.Scheme
	title       string
	description string
	category    string
	state       string
	keywords    []string
}

func newEntry(caser cases.Caser, s scheme.Scheme) entry {
	kws := s.Keywords()
	for i, k := range kws {
		kws[i] = caser.String(k)
	}
	return entry{
		scheme:      s,
		title:       caser.String(s.Title()),
		description: caser.String(s.Description()),
		category:    caser.String(s.Category()),
		state:       caser.String(s.State()),
		keywords:    kws,
	}
}

// Pipeline runs filter -> sort -> paginate over an immutable dataset.
// It owns one query.State and is not safe for concurrent use: build one per
// browsing session or request.
type Pipeline struct {
	entries         []entry
	fields          []query.Field
	defaultPageSize int
	maxPageSize     int

	state query.State
	// view holds dataset indices that pass the filters, in output order.
	view []int
}

// New creates a pipeline over dataset with the query state at defaults.
// An empty dataset yields a usable pipeline together with domain.ErrEmptyDataset.
func New(dataset []scheme.Scheme, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		fields:          query.AllFields(),
		defaultPageSize: query.DefaultPageSize,
	}
	for _, o := range opts {
		o(p)
	}
	for _, f := range p.fields {
		if !f.IsValid() {
			return nil, fmt.Errorf("%w: unknown search field %q", domain.ErrInvalidQuery, f)
		}
	}
	if p.maxPageSize > 0 && p.defaultPageSize > p.maxPageSize {
		p.defaultPageSize = p.maxPageSize
	}

	caser := cases.Fold()
	p.entries = make([]entry, len(dataset))
	for i, s := range dataset {
		p.entries[i] = newEntry(caser, s)
	}

	p.state = query.DefaultState().WithPageSize(p.defaultPageSize)
	p.recompute()

	if len(dataset) == 0 {
		return p, domain.ErrEmptyDataset
	}
	return p, nil
}

// State returns a copy of the current query state.
func (p *Pipeline) State() query.State { return p.state }

// ResultCount returns the number of schemes passing the current filters.
func (p *Pipeline) ResultCount() int { return len(p.view) }

// SetSearchTerm trims and case-folds term and resets to the first page.
func (p *Pipeline) SetSearchTerm(term string) {
	p.state = p.state.WithSearchTerm(normalizeTerm(term)).WithPageNumber(query.FirstPage)
	p.recompute()
}

// SetCategoryFilter sets an exact category constraint ("" for none) and resets to the first page.
func (p *Pipeline) SetCategoryFilter(category string) {
	p.state = p.state.WithCategory(category).WithPageNumber(query.FirstPage)
	p.recompute()
}

// SetRegionFilter sets an exact region constraint ("" for none) and resets to the first page.
func (p *Pipeline) SetRegionFilter(region string) {
	p.state = p.state.WithRegion(region).WithPageNumber(query.FirstPage)
	p.recompute()
}

// SetSortKey changes the ordering. The page cursor is kept.
func (p *Pipeline) SetSortKey(key query.SortKey) error {
	if !key.IsValid() {
		return fmt.Errorf("%w: sort key %q", domain.ErrInvalidQuery, key)
	}
	p.state = p.state.WithSortKey(key)
	p.recompute()
	return nil
}

// SetPageSize changes the page size and re-clamps the page cursor.
func (p *Pipeline) SetPageSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidQuery, n)
	}
	if p.maxPageSize > 0 && n > p.maxPageSize {
		return fmt.Errorf("%w: page size must be at most %d, got %d", domain.ErrInvalidQuery, p.maxPageSize, n)
	}
	p.state = p.state.WithPageSize(n)
	p.clampPage()
	return nil
}

// GoToPage moves the cursor to n, clamped into [1, PageCount]. Never fails.
func (p *Pipeline) GoToPage(n int) {
	p.state = p.state.WithPageNumber(n)
	p.clampPage()
}

// Reset restores the query state to defaults, keeping the configured page size.
func (p *Pipeline) Reset() {
	p.state = query.DefaultState().WithPageSize(p.defaultPageSize)
	p.recompute()
}

// Apply seeds the whole query state at once, e.g. from URL parameters.
// The page cursor is applied last so it survives the filter resets.
func (p *Pipeline) Apply(s query.State) error {
	if err := p.SetSortKey(s.SortKey()); err != nil {
		return err
	}
	if err := p.SetPageSize(s.PageSize()); err != nil {
		return err
	}
	p.state = p.state.
		WithSearchTerm(normalizeTerm(s.SearchTerm())).
		WithCategory(s.Category()).
		WithRegion(s.Region()).
		WithPageNumber(s.PageNumber())
	p.recompute()
	return nil
}

// Page returns the current page. It has no side effects: repeated calls
// without an intervening mutation return equal pages.
func (p *Pipeline) Page() query.Page {
	size := p.state.PageSize()
	number := p.state.PageNumber()

	start := min((number-1)*size, len(p.view))
	end := min(start+size, len(p.view))

	items := make([]scheme.Scheme, 0, end-start)
	for _, idx := range p.view[start:end] {
		items = append(items, p.entries[idx].scheme)
	}

	return query.Page{
		Items:       items,
		ResultCount: len(p.view),
		PageCount:   p.pageCount(),
		PageNumber:  number,
		PageSize:    size,
	}
}

// Matching returns every scheme passing the current filters in dataset order,
// ignoring sort and pagination. The chat agent lists search hits this way.
func (p *Pipeline) Matching() []scheme.Scheme {
	var out []scheme.Scheme
	for i := range p.entries {
		if p.matches(&p.entries[i]) {
			out = append(out, p.entries[i].scheme)
		}
	}
	return out
}

// recompute re-filters the full dataset, re-sorts, and clamps the cursor.
func (p *Pipeline) recompute() {
	view := p.view[:0]
	for i := range p.entries {
		if p.matches(&p.entries[i]) {
			view = append(view, i)
		}
	}
	p.view = view
	p.sortView()
	p.clampPage()
}

// matches is the AND of the term, category and region predicates.
func (p *Pipeline) matches(e *entry) bool {
	if c := p.state.Category(); c != "" && e.scheme.Category() != c {
		return false
	}
	if r := p.state.Region(); r != "" && e.scheme.State() != r {
		return false
	}
	term := p.state.SearchTerm()
	if term == "" {
		return true
	}
	for _, f := range p.fields {
		switch f {
		case query.FieldTitle:
			if strings.Contains(e.title, term) {
				return true
			}
		case query.FieldDescription:
			if strings.Contains(e.description, term) {
				return true
			}
		case query.FieldCategory:
			if strings.Contains(e.category, term) {
				return true
			}
		case query.FieldState:
			if strings.Contains(e.state, term) {
				return true
			}
		case query.FieldKeywords:
			for _, k := range e.keywords {
				if strings.Contains(k, term) {
					return true
				}
			}
		}
	}
	return false
}

func (p *Pipeline) sortView() {
	var less func(a, b *entry) int
	switch p.state.SortKey() {
	case query.NameDesc:
		less = func(a, b *entry) int { return strings.Compare(b.scheme.Title(), a.scheme.Title()) }
	case query.CategoryAsc:
		less = func(a, b *entry) int {
			return cmp.Or(
				strings.Compare(a.scheme.Category(), b.scheme.Category()),
				strings.Compare(a.scheme.Title(), b.scheme.Title()),
			)
		}
	case query.RecencyDesc:
		less = compareRecency
	default:
		less = func(a, b *entry) int { return strings.Compare(a.scheme.Title(), b.scheme.Title()) }
	}
	slices.SortStableFunc(p.view, func(i, j int) int {
		return less(&p.entries[i], &p.entries[j])
	})
}

// compareRecency orders newest first; undated schemes count as the oldest possible value.
func compareRecency(a, b *entry) int {
	ad, aok := a.scheme.DateAdded()
	bd, bok := b.scheme.DateAdded()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return bd.Compare(ad)
}

func (p *Pipeline) pageCount() int {
	size := p.state.PageSize()
	return max(1, (len(p.view)+size-1)/size)
}

func (p *Pipeline) clampPage() {
	n := min(max(p.state.PageNumber(), query.FirstPage), p.pageCount())
	p.state = p.state.WithPageNumber(n)
}

func normalizeTerm(term string) string {
	return cases.Fold().String(strings.TrimSpace(term))
}
