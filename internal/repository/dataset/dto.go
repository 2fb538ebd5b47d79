package dataset

import (
	"fmt"
	"time"

	"github.com/yojanadost/yojana/internal/domain/scheme"
)

const dateOnly = "2006-01-02"

// schemeDTO is the JSON wire shape of one dataset record.
type schemeDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	State       string   `json:"state"`
	Type        string   `json:"type,omitempty"`
	Keywords    []string `json:"keywords"`
	DateAdded   string   `json:"dateAdded,omitempty"`
	URL         string   `json:"url,omitempty"`
	Eligibility string   `json:"eligibility,omitempty"`
	Benefits    string   `json:"benefits,omitempty"`
	Level       string   `json:"level,omitempty"`
}

func (d schemeDTO) toDomain() (scheme.Scheme, error) {
	added, err := parseDate(d.DateAdded)
	if err != nil {
		return scheme.Scheme{}, fmt.Errorf("scheme %q: %w", d.ID, err)
	}
	s, err := scheme.New(
		d.ID, d.Title, d.Description, d.Category, d.State,
		scheme.Type(d.Type), d.Keywords, added,
		scheme.Details{URL: d.URL, Eligibility: d.Eligibility, Benefits: d.Benefits, Level: d.Level},
	)
	if err != nil {
		return scheme.Scheme{}, fmt.Errorf("parse scheme: %w", err)
	}
	return s, nil
}

func fromDomain(s scheme.Scheme) schemeDTO {
	d := schemeDTO{
		ID:          s.ID(),
		Title:       s.Title(),
		Description: s.Description(),
		Category:    s.Category(),
		State:       s.State(),
		Type:        string(s.Type()),
		Keywords:    s.Keywords(),
		URL:         s.Details().URL,
		Eligibility: s.Details().Eligibility,
		Benefits:    s.Details().Benefits,
		Level:       s.Details().Level,
	}
	if d.Keywords == nil {
		d.Keywords = []string{}
	}
	if t, ok := s.DateAdded(); ok {
		d.DateAdded = t.Format(dateOnly)
		if !t.Equal(t.Truncate(24 * time.Hour)) {
			d.DateAdded = t.Format(time.RFC3339)
		}
	}
	return d
}

// parseDate accepts RFC3339 or YYYY-MM-DD. Empty means unknown.
func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, v)
	if err != nil {
		return nil, fmt.Errorf("invalid dateAdded %q", v)
	}
	return &t, nil
}
