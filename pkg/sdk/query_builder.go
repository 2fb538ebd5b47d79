package yojana

import "context"

// QueryBuilder is a fluent builder for scheme queries.
// A builder is not safe for concurrent use; build one per query.
type QueryBuilder struct {
	svc *SchemeService
	q   Query
}

// Category restricts results to one category key. "" clears the filter.
func (b *QueryBuilder) Category(c string) *QueryBuilder {
	b.q.Category = c
	return b
}

// State restricts results to one region key, e.g. "odisha" or "central".
// "" clears the filter.
func (b *QueryBuilder) State(region string) *QueryBuilder {
	b.q.State = region
	return b
}

// Sort sets the ordering.
func (b *QueryBuilder) Sort(k SortKey) *QueryBuilder {
	b.q.Sort = k
	return b
}

// Page selects a 1-based page.
func (b *QueryBuilder) Page(n int) *QueryBuilder {
	b.q.Page = n
	return b
}

// PageSize sets the number of schemes per page.
func (b *QueryBuilder) PageSize(n int) *QueryBuilder {
	b.q.PageSize = n
	return b
}

// Query returns the query built so far.
func (b *QueryBuilder) Query() Query { return b.q }

// Do executes the query.
func (b *QueryBuilder) Do(ctx context.Context) (Page, error) {
	return b.svc.Query(ctx, b.q)
}

// Each walks every page from the current one to the last, calling fn per page.
// It stops at the first error, including one returned by fn.
func (b *QueryBuilder) Each(ctx context.Context, fn func(Page) error) error {
	q := b.q
	for {
		page, err := b.svc.Query(ctx, q)
		if err != nil {
			return err
		}
		if err := fn(page); err != nil {
			return err
		}
		if !page.HasNext() {
			return nil
		}
		q = page.Query
		q.Page++
	}
}
