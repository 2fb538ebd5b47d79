package catalog

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	domcat "github.com/yojanadost/yojana/internal/domain/catalog"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

const (
	maxCategoryTags  = 5
	minSuggestRunes  = 3
	defaultSuggested = 5
)

// CategorySummary aggregates the schemes of one category.
type CategorySummary struct {
	Key     string
	Info    domcat.CategoryInfo
	Count   int
	Central int
	State   int
	Tags    []string
}

// RegionSummary aggregates the schemes of one region.
type RegionSummary struct {
	Key        string
	Info       domcat.RegionInfo
	Count      int
	Categories []string
}

// Stats are dataset-wide totals.
type Stats struct {
	Total      int
	Central    int
	State      int
	Categories int
	Regions    int
}

// Service computes non-paginated aggregate views over the dataset.
type Service struct {
	dataset Dataset
}

// New creates a catalog service.
func New(dataset Dataset) *Service {
	return &Service{dataset: dataset}
}

// Categories groups schemes by category in first-seen order.
func (s *Service) Categories() ([]CategorySummary, error) {
	schemes, err := s.dataset.Schemes()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var out []CategorySummary
	index := map[string]int{}
	for _, sch := range schemes {
		i, ok := index[sch.Category()]
		if !ok {
			i = len(out)
			index[sch.Category()] = i
			out = append(out, CategorySummary{
				Key:  sch.Category(),
				Info: domcat.Category(sch.Category()),
				Tags: []string{},
			})
		}
		c := &out[i]
		c.Count++
		switch sch.Type() {
		case scheme.Central:
			c.Central++
		case scheme.State:
			c.State++
		}
		for _, kw := range sch.Keywords() {
			if len(c.Tags) < maxCategoryTags && !slices.Contains(c.Tags, kw) {
				c.Tags = append(c.Tags, kw)
			}
		}
	}
	if out == nil {
		out = []CategorySummary{}
	}
	return out, nil
}

// Regions groups schemes by known region in first-seen order. Unknown region keys are skipped.
func (s *Service) Regions() ([]RegionSummary, error) {
	schemes, err := s.dataset.Schemes()
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}

	out := []RegionSummary{}
	index := map[string]int{}
	for _, sch := range schemes {
		i, ok := index[sch.State()]
		if !ok {
			info, known := domcat.Region(sch.State())
			if !known {
				continue
			}
			i = len(out)
			index[sch.State()] = i
			out = append(out, RegionSummary{Key: sch.State(), Info: info, Categories: []string{}})
		}
		r := &out[i]
		r.Count++
		if !slices.Contains(r.Categories, sch.Category()) {
			r.Categories = append(r.Categories, sch.Category())
		}
	}
	return out, nil
}

// Stats returns dataset totals.
func (s *Service) Stats() (Stats, error) {
	schemes, err := s.dataset.Schemes()
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}

	st := Stats{Total: len(schemes)}
	categories := map[string]struct{}{}
	regions := map[string]struct{}{}
	for _, sch := range schemes {
		switch sch.Type() {
		case scheme.Central:
			st.Central++
		case scheme.State:
			st.State++
		}
		categories[sch.Category()] = struct{}{}
		if _, ok := domcat.Region(sch.State()); ok {
			regions[sch.State()] = struct{}{}
		}
	}
	st.Categories = len(categories)
	st.Regions = len(regions)
	return st, nil
}

// Suggest returns up to limit schemes whose title contains the query.
// Queries shorter than three characters yield no suggestions.
func (s *Service) Suggest(query string, limit int) ([]scheme.Scheme, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestRunes {
		return []scheme.Scheme{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggested
	}

	schemes, err := s.dataset.Schemes()
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	caser := cases.Fold()
	needle := caser.String(query)
	out := []scheme.Scheme{}
	for _, sch := range schemes {
		if strings.Contains(caser.String(sch.Title()), needle) {
			out = append(out, sch)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Scheme looks up one scheme by id.
func (s *Service) Scheme(id string) (scheme.Scheme, error) {
	sch, err := s.dataset.Get(id)
	if err != nil {
		return scheme.Scheme{}, fmt.Errorf("get scheme %s: %w", id, err)
	}
	return sch, nil
}
