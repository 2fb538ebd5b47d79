package query

import "github.com/yojanadost/yojana/internal/domain/scheme"

// Gap marks an elided run of page numbers in a pagination window.
const Gap = 0

// Page is one page of pipeline output plus pagination metadata.
type Page struct {
	Items       []scheme.Scheme
	ResultCount int
	PageCount   int
	PageNumber  int
	PageSize    int
}

// IsEmpty reports whether the query matched nothing.
func (p Page) IsEmpty() bool { return p.ResultCount == 0 }

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.PageNumber > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.PageNumber < p.PageCount }

// Window returns the page links of a pagination bar: current±radius, always
// anchored by the first and last pages, with Gap where numbers are skipped.
// A single page yields no links.
func (p Page) Window(radius int) []int {
	if p.PageCount <= 1 {
		return nil
	}
	if radius < 0 {
		radius = 0
	}
	start := max(1, p.PageNumber-radius)
	end := min(p.PageCount, p.PageNumber+radius)

	links := make([]int, 0, end-start+5)
	if start > 1 {
		links = append(links, 1)
		if start > 2 {
			links = append(links, Gap)
		}
	}
	for i := start; i <= end; i++ {
		links = append(links, i)
	}
	if end < p.PageCount {
		if end < p.PageCount-1 {
			links = append(links, Gap)
		}
		links = append(links, p.PageCount)
	}
	return links
}
