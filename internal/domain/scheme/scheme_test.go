package scheme

import (
	"testing"
	"time"
)

func TestNew_Valid(t *testing.T) {
	added := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	kw := []string{"farmer", "subsidy"}
	s, err := New("a", "Farmer Aid", "desc", "Agriculture", NationWide, Central, kw, &added, Details{Level: "National"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID() != "a" || s.Title() != "Farmer Aid" || s.Category() != "Agriculture" {
		t.Errorf("unexpected scheme %+v", s)
	}
	if !s.IsNationWide() {
		t.Error("expected nation-wide scheme")
	}
	got, ok := s.DateAdded()
	if !ok || !got.Equal(added) {
		t.Errorf("DateAdded() = %v, %v", got, ok)
	}

	// Inputs are copied.
	kw[0] = "changed"
	added = added.AddDate(1, 0, 0)
	if s.Keywords()[0] != "farmer" {
		t.Error("keywords must not alias the caller's slice")
	}
	if got, _ := s.DateAdded(); got.Year() != 2024 {
		t.Error("dateAdded must not alias the caller's value")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		title string
		typ   Type
	}{
		{"missing id", "", "T", Central},
		{"missing title", "x", "", Central},
		{"bad type", "x", "T", Type("Municipal")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.title, "", "", "", tc.typ, nil, nil, Details{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDateAdded_Missing(t *testing.T) {
	s := Reconstruct("a", "A", "", "", "", "", nil, nil, Details{})
	if _, ok := s.DateAdded(); ok {
		t.Error("expected no date")
	}
	if !s.Type().IsValid() {
		t.Error("empty type should be valid")
	}
}

func TestKeywords_ReturnsCopy(t *testing.T) {
	kw := []string{"farmer", "subsidy"}
	s := Reconstruct("a", "Farmer Aid", "", "Agriculture", NationWide, Central, kw, nil, Details{})

	kw[0] = "changed-input"
	got := s.Keywords()
	got[1] = "changed-output"

	if again := s.Keywords(); again[0] != "farmer" || again[1] != "subsidy" {
		t.Errorf("keywords must be immutable, got %v", again)
	}
}
