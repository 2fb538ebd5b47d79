// Package render draws query results, catalog views and chat replies in a terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
	chatuc "github.com/yojanadost/yojana/internal/usecase/chat"
)

const (
	emptyText   = "No schemes found matching your criteria."
	pagerRadius = 2
)

// Renderer writes pterm output to w.
type Renderer struct {
	w io.Writer
}

// New creates a renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Page renders one page of query results with its pagination bar.
func (r *Renderer) Page(p query.Page, st query.State) error {
	fmt.Fprintln(r.w, pterm.Bold.Sprint(Summary(p, st)))
	if p.IsEmpty() {
		fmt.Fprintln(r.w, pterm.Warning.Sprint(emptyText))
		return nil
	}

	data := pterm.TableData{{"ID", "Title", "Category", "State", "Type", "Added"}}
	for _, s := range p.Items {
		added := "-"
		if t, ok := s.DateAdded(); ok {
			added = t.Format(time.DateOnly)
		}
		data = append(data, []string{s.ID(), s.Title(), s.Category(), s.State(), string(s.Type()), added})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	fmt.Fprintln(r.w, table)

	if bar := Pager(p, pagerRadius); bar != "" {
		fmt.Fprintln(r.w, bar)
	}
	return nil
}

// Summary describes the result count and active query.
func Summary(p query.Page, st query.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d schemes", p.ResultCount)
	if st.SearchTerm() != "" {
		fmt.Fprintf(&b, " matching %q", st.SearchTerm())
	}
	if st.Category() != "" {
		fmt.Fprintf(&b, " in %s", st.Category())
	}
	if st.Region() != "" {
		fmt.Fprintf(&b, " for %s", st.Region())
	}
	fmt.Fprintf(&b, ", page %d of %d, sorted by %s", p.PageNumber, p.PageCount, st.SortKey())
	return b.String()
}

// Pager renders the page window as "< 1 ... 4 [5] 6 ... 9 >". A single page yields "".
func Pager(p query.Page, radius int) string {
	links := p.Window(radius)
	if len(links) == 0 {
		return ""
	}

	parts := make([]string, 0, len(links)+2)
	if p.HasPrev() {
		parts = append(parts, "<")
	}
	for _, n := range links {
		switch n {
		case query.Gap:
			parts = append(parts, "...")
		case p.PageNumber:
			parts = append(parts, "["+strconv.Itoa(n)+"]")
		default:
			parts = append(parts, strconv.Itoa(n))
		}
	}
	if p.HasNext() {
		parts = append(parts, ">")
	}
	return strings.Join(parts, " ")
}

// Scheme renders the detail view of one scheme.
func (r *Renderer) Scheme(s scheme.Scheme) {
	lines := []string{
		s.Description(),
		"",
		"Category: " + s.Category(),
		"State:    " + s.State(),
	}
	if s.Type() != "" {
		lines = append(lines, "Type:     "+string(s.Type()))
	}
	if len(s.Keywords()) > 0 {
		lines = append(lines, "Keywords: "+strings.Join(s.Keywords(), ", "))
	}
	d := s.Details()
	if d.Eligibility != "" {
		lines = append(lines, "Eligibility: "+d.Eligibility)
	}
	if d.Benefits != "" {
		lines = append(lines, "Benefits: "+d.Benefits)
	}
	if d.URL != "" {
		lines = append(lines, "More: "+d.URL)
	}

	fmt.Fprintln(r.w, pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(s.Title())).
		WithPadding(1).
		Sprint(strings.Join(lines, "\n")))
}

// Categories renders category summaries as a table.
func (r *Renderer) Categories(items []cataloguc.CategorySummary) error {
	data := pterm.TableData{{"Category", "Title", "Schemes", "Central", "State", "Tags"}}
	for _, c := range items {
		data = append(data, []string{
			c.Key, c.Info.Title,
			strconv.Itoa(c.Count), strconv.Itoa(c.Central), strconv.Itoa(c.State),
			strings.Join(c.Tags, ", "),
		})
	}
	return r.table("categories", data)
}

// Regions renders region summaries as a table.
func (r *Renderer) Regions(items []cataloguc.RegionSummary) error {
	data := pterm.TableData{{"Region", "Name", "Code", "Schemes", "Categories"}}
	for _, rs := range items {
		data = append(data, []string{
			rs.Key, rs.Info.Name, rs.Info.Code,
			strconv.Itoa(rs.Count), strings.Join(rs.Categories, ", "),
		})
	}
	return r.table("regions", data)
}

// Stats renders dataset totals.
func (r *Renderer) Stats(st cataloguc.Stats) error {
	data := pterm.TableData{
		{"Total", "Central", "State", "Categories", "Regions"},
		{
			strconv.Itoa(st.Total), strconv.Itoa(st.Central), strconv.Itoa(st.State),
			strconv.Itoa(st.Categories), strconv.Itoa(st.Regions),
		},
	}
	return r.table("stats", data)
}

// Reply renders a chat reply: the text, then the ids of the listed schemes for drill-down.
func (r *Renderer) Reply(reply chatuc.Reply) error {
	fmt.Fprintln(r.w, reply.Text)
	if len(reply.Schemes) == 0 {
		return nil
	}

	items := make([]pterm.BulletListItem, 0, len(reply.Schemes))
	for _, s := range reply.Schemes {
		items = append(items, pterm.BulletListItem{Level: 0, Text: fmt.Sprintf("%s [%s]", s.Title(), s.ID())})
	}
	list, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		return fmt.Errorf("render reply: %w", err)
	}
	fmt.Fprint(r.w, list)
	return nil
}

func (r *Renderer) table(what string, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render %s: %w", what, err)
	}
	fmt.Fprintln(r.w, out)
	return nil
}
