package dataset

import (
	"context"

	"github.com/yojanadost/yojana/internal/domain/scheme"
)

const sampleJSON = `[
  {"id": "pm-kisan", "title": "PM-KISAN", "description": "Income support for farmers", "category": "Agriculture", "state": "central", "type": "Central", "keywords": ["farmer", "kisan"], "dateAdded": "2024-02-01", "url": "https://pmkisan.gov.in"},
  {"id": "ladli", "title": "Ladli Behna", "description": "Monthly aid for women", "category": "Women", "state": "madhya-pradesh", "type": "State", "keywords": ["women"], "dateAdded": "2024-03-05T10:00:00Z", "eligibility": "Women aged 21-60"},
  {"id": "nsp", "title": "National Scholarship Portal", "description": "Scholarships", "category": "Education", "state": "central", "keywords": []}
]`

// mockSource implements the consumer interface for tests.
type mockSource struct {
	loadFn func(ctx context.Context) ([]scheme.Scheme, error)
	calls  int
}

func (m *mockSource) Load(ctx context.Context) ([]scheme.Scheme, error) {
	m.calls++
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

func (m *mockSource) Source() string { return "mock://schemes" }
