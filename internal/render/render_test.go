package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"

	"github.com/yojanadost/yojana/internal/domain/catalog"
	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
	chatuc "github.com/yojanadost/yojana/internal/usecase/chat"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	m.Run()
}

func sample() []scheme.Scheme {
	added := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []scheme.Scheme{
		scheme.Reconstruct("pm-kisan", "PM Kisan", "Income support for farmers", "Agriculture", "central",
			scheme.Central, []string{"farmer"}, &added, scheme.Details{URL: "https://pmkisan.gov.in"}),
		scheme.Reconstruct("kalia", "KALIA", "Assistance for cultivators", "Agriculture", "odisha",
			scheme.State, nil, nil, scheme.Details{}),
	}
}

func plain(b *bytes.Buffer) string { return pterm.RemoveColorFromString(b.String()) }

func TestPager(t *testing.T) {
	tests := []struct {
		name string
		page query.Page
		want string
	}{
		{"single page", query.Page{PageNumber: 1, PageCount: 1}, ""},
		{"first of three", query.Page{PageNumber: 1, PageCount: 3}, "[1] 2 3 >"},
		{"middle with gaps", query.Page{PageNumber: 5, PageCount: 9}, "< 1 ... 3 4 [5] 6 7 ... 9 >"},
		{"last", query.Page{PageNumber: 9, PageCount: 9}, "< 1 ... 7 8 [9]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pager(tt.page, 2); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	st := query.DefaultState().WithSearchTerm("farmer").WithCategory("Agriculture").WithRegion("odisha")
	got := Summary(query.Page{ResultCount: 1, PageNumber: 1, PageCount: 1}, st)
	want := `1 schemes matching "farmer" in Agriculture for odisha, page 1 of 1, sorted by name`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPage(t *testing.T) {
	var buf bytes.Buffer
	p := query.Page{Items: sample(), ResultCount: 4, PageCount: 2, PageNumber: 1, PageSize: 2}

	if err := New(&buf).Page(p, query.DefaultState()); err != nil {
		t.Fatal(err)
	}
	out := plain(&buf)
	for _, want := range []string{"PM Kisan", "KALIA", "2024-03-01", "[1] 2 >"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPage_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf).Page(query.Page{PageCount: 1, PageNumber: 1}, query.DefaultState()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(plain(&buf), emptyText) {
		t.Errorf("expected empty-state text, got:\n%s", buf.String())
	}
}

func TestScheme(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Scheme(sample()[0])

	out := plain(&buf)
	for _, want := range []string{"PM Kisan", "Keywords: farmer", "More: https://pmkisan.gov.in"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogTables(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	err := r.Categories([]cataloguc.CategorySummary{{
		Key: "Agriculture", Info: catalog.Category("Agriculture"), Count: 2, Central: 1, State: 1,
		Tags: []string{"farmer", "crop"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	info, _ := catalog.Region("odisha")
	if err := r.Regions([]cataloguc.RegionSummary{{Key: "odisha", Info: info, Count: 1, Categories: []string{"Agriculture"}}}); err != nil {
		t.Fatal(err)
	}
	if err := r.Stats(cataloguc.Stats{Total: 2, Central: 1, State: 1, Categories: 1, Regions: 2}); err != nil {
		t.Fatal(err)
	}

	out := plain(&buf)
	for _, want := range []string{"Agriculture & Farming", "farmer, crop", "Odisha", "OR"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestReply(t *testing.T) {
	var buf bytes.Buffer
	reply := chatuc.Reply{Text: "Here are schemes for farmers:", Rule: chatuc.RuleCategory, Schemes: sample()}

	if err := New(&buf).Reply(reply); err != nil {
		t.Fatal(err)
	}
	out := plain(&buf)
	if !strings.HasPrefix(out, "Here are schemes for farmers:") {
		t.Errorf("reply text must come first:\n%s", out)
	}
	if !strings.Contains(out, "KALIA [kalia]") {
		t.Errorf("missing bullet:\n%s", out)
	}
}
