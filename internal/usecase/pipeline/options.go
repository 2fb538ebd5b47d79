package pipeline

import "github.com/yojanadost/yojana/internal/domain/query"

// Option configures a Pipeline at construction.
type Option func(*Pipeline)

// WithPageSize sets the default page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.defaultPageSize = n
		}
	}
}

// WithMaxPageSize caps SetPageSize. Zero means no cap.
func WithMaxPageSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxPageSize = n
		}
	}
}

// WithSearchFields restricts which fields the free-text term is matched against.
// A page that only searches titles and keywords passes exactly those two.
func WithSearchFields(fields ...query.Field) Option {
	return func(p *Pipeline) {
		if len(fields) > 0 {
			p.fields = fields
		}
	}
}
