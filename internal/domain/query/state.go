package query

// Query defaults.
const (
	DefaultPageSize = 12
	FirstPage       = 1
)

// State is the search term, filters, sort key and pagination cursor of one browsing session.
// The empty category or region means "no constraint".
type State struct {
	searchTerm string
	category   string
	region     string
	sortKey    SortKey
	pageNumber int
	pageSize   int
}

// DefaultState returns a State with every field at its default.
func DefaultState() State {
	return State{
		sortKey:    NameAsc,
		pageNumber: FirstPage,
		pageSize:   DefaultPageSize,
	}
}

// NewState builds a State from already normalized parts.
// Non-positive page numbers and sizes fall back to defaults; an invalid sort key falls back to NameAsc.
func NewState(searchTerm, category, region string, sortKey SortKey, pageNumber, pageSize int) State {
	if !sortKey.IsValid() {
		sortKey = NameAsc
	}
	if pageNumber < FirstPage {
		pageNumber = FirstPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		searchTerm: searchTerm,
		category:   category,
		region:     region,
		sortKey:    sortKey,
		pageNumber: pageNumber,
		pageSize:   pageSize,
	}
}

// SearchTerm returns the folded search term.
func (s State) SearchTerm() string { return s.searchTerm }

// Category returns the category filter ("" for none).
func (s State) Category() string { return s.category }

// Region returns the region filter ("" for none).
func (s State) Region() string { return s.region }

// SortKey returns the ordering.
func (s State) SortKey() SortKey { return s.sortKey }

// PageNumber returns the 1-based page cursor.
func (s State) PageNumber() int { return s.pageNumber }

// PageSize returns the number of items per page.
func (s State) PageSize() int { return s.pageSize }

// WithSearchTerm returns a copy with the term replaced.
func (s State) WithSearchTerm(term string) State { s.searchTerm = term; return s }

// WithCategory returns a copy with the category filter replaced.
func (s State) WithCategory(c string) State { s.category = c; return s }

// WithRegion returns a copy with the region filter replaced.
func (s State) WithRegion(r string) State { s.region = r; return s }

// WithSortKey returns a copy with the ordering replaced.
func (s State) WithSortKey(k SortKey) State { s.sortKey = k; return s }

// WithPageNumber returns a copy with the page cursor replaced.
func (s State) WithPageNumber(n int) State { s.pageNumber = n; return s }

// WithPageSize returns a copy with the page size replaced.
func (s State) WithPageSize(n int) State { s.pageSize = n; return s }
