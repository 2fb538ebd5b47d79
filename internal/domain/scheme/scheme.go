package scheme

import (
	"fmt"
	"slices"
	"time"
)

// Type is the administrative grouping of a scheme.
type Type string

// Scheme type constants.
const (
	Central Type = "Central"
	State   Type = "State"
)

// IsValid reports whether t is a known type. The empty type is allowed.
func (t Type) IsValid() bool {
	return t == "" || t == Central || t == State
}

// NationWide is the region key of schemes that apply across all states.
const NationWide = "central"

// Details holds optional passthrough fields shown on detail views.
type Details struct {
	URL         string
	Eligibility string
	Benefits    string
	Level       string
}

// Scheme is a government scheme record (immutable value object).
type Scheme struct {
	id          string
	title       string
	description string
	category    string
	state       string
	schemeType  Type
	keywords    []string
	dateAdded   *time.Time
	details     Details
}

// New validates and creates a Scheme.
func New(
	id, title, description, category, state string,
	t Type, keywords []string, dateAdded *time.Time, details Details,
) (Scheme, error) {
	if id == "" {
		return Scheme{}, fmt.Errorf("scheme id is required")
	}
	if title == "" {
		return Scheme{}, fmt.Errorf("scheme %q: title is required", id)
	}
	if !t.IsValid() {
		return Scheme{}, fmt.Errorf("scheme %q: invalid type %q", id, t)
	}
	return Reconstruct(id, title, description, category, state, t, keywords, dateAdded, details), nil
}

// Reconstruct creates a Scheme without validation (tests and trusted hydration).
func Reconstruct(
	id, title, description, category, state string,
	t Type, keywords []string, dateAdded *time.Time, details Details,
) Scheme {
	var added *time.Time
	if dateAdded != nil {
		d := *dateAdded
		added = &d
	}
	return Scheme{
		id:          id,
		title:       title,
		description: description,
		category:    category,
		state:       state,
		schemeType:  t,
		keywords:    slices.Clone(keywords),
		dateAdded:   added,
		details:     details,
	}
}

// ID returns the unique identifier.
func (s Scheme) ID() string { return s.id }

// Title returns the display name.
func (s Scheme) Title() string { return s.title }

// Description returns the free-text description.
func (s Scheme) Description() string { return s.description }

// Category returns the category key.
func (s Scheme) Category() string { return s.category }

// State returns the region key.
func (s Scheme) State() string { return s.state }

// Type returns the Central/State grouping.
func (s Scheme) Type() Type { return s.schemeType }

// Keywords returns a copy of the ordered keywords.
func (s Scheme) Keywords() []string { return slices.Clone(s.keywords) }

// DateAdded returns the date the scheme was added, if known.
func (s Scheme) DateAdded() (time.Time, bool) {
	if s.dateAdded == nil {
		return time.Time{}, false
	}
	return *s.dateAdded, true
}

// Details returns the passthrough fields.
func (s Scheme) Details() Details { return s.details }

// IsNationWide reports whether the scheme applies across all states.
func (s Scheme) IsNationWide() bool { return s.state == NationWide }
