package yojana

import (
	"time"

	"github.com/yojanadost/yojana/internal/domain/profile"
	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

// SchemeType is the administrative grouping of a scheme.
type SchemeType string

// Scheme type constants.
const (
	TypeCentral SchemeType = "Central"
	TypeState   SchemeType = "State"
)

// SortKey selects the result ordering.
type SortKey string

// Sort key constants.
const (
	SortByName     SortKey = "name"
	SortByNameDesc SortKey = "name-desc"
	SortByCategory SortKey = "category"
	// SortRecent orders newest first; undated schemes come last.
	SortRecent SortKey = "recent"
)

// Scheme is a government scheme record.
type Scheme struct {
	ID          string
	Title       string
	Description string
	Category    string
	State       string
	Type        SchemeType
	Keywords    []string
	DateAdded   *time.Time
	URL         string
	Eligibility string
	Benefits    string
	Level       string
}

// Query selects one page of schemes. Zero values mean "no constraint" for
// the filters and "default" for sort and paging.
type Query struct {
	Search   string
	Category string
	State    string
	Sort     SortKey
	Page     int
	PageSize int
}

// Page is one page of query results.
type Page struct {
	Items       []Scheme
	ResultCount int
	PageCount   int
	Page        int
	PageSize    int
	// Query is the effective query after normalization and clamping.
	Query Query
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Page < p.PageCount }

// Category aggregates the schemes of one category.
type Category struct {
	Key         string
	Title       string
	Description string
	Color       string
	Count       int
	Central     int
	State       int
	Tags        []string
}

// Region aggregates the schemes of one state or "central".
type Region struct {
	Key         string
	Name        string
	Code        string
	Description string
	Count       int
	Categories  []string
}

// Stats are dataset-wide totals.
type Stats struct {
	Total      int
	Central    int
	State      int
	Categories int
	Regions    int
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Text string
	// Rule names the rule that produced the reply.
	Rule    string
	Schemes []Scheme
	Link    string
}

// Preferences are the notification and locale settings of a session.
type Preferences = profile.Preferences

// DefaultPreferences returns the settings used when none were saved.
func DefaultPreferences() Preferences { return profile.DefaultPreferences() }

func fromInternalScheme(s scheme.Scheme) Scheme {
	d := s.Details()
	out := Scheme{
		ID:          s.ID(),
		Title:       s.Title(),
		Description: s.Description(),
		Category:    s.Category(),
		State:       s.State(),
		Type:        SchemeType(s.Type()),
		Keywords:    s.Keywords(),
		URL:         d.URL,
		Eligibility: d.Eligibility,
		Benefits:    d.Benefits,
		Level:       d.Level,
	}
	if added, ok := s.DateAdded(); ok {
		out.DateAdded = &added
	}
	return out
}

func fromInternalSchemes(in []scheme.Scheme) []Scheme {
	out := make([]Scheme, len(in))
	for i, s := range in {
		out[i] = fromInternalScheme(s)
	}
	return out
}

func fromInternalState(st query.State) Query {
	return Query{
		Search:   st.SearchTerm(),
		Category: st.Category(),
		State:    st.Region(),
		Sort:     SortKey(st.SortKey()),
		Page:     st.PageNumber(),
		PageSize: st.PageSize(),
	}
}

func fromInternalPage(p query.Page, st query.State) Page {
	return Page{
		Items:       fromInternalSchemes(p.Items),
		ResultCount: p.ResultCount,
		PageCount:   p.PageCount,
		Page:        p.PageNumber,
		PageSize:    p.PageSize,
		Query:       fromInternalState(st),
	}
}
