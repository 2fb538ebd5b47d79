package pipeline

import (
	"errors"
	"fmt"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

// Dataset is the read side of the loaded schemes snapshot.
type Dataset interface {
	Schemes() ([]scheme.Scheme, error)
}

// Service runs stateless queries: each call builds a fresh Pipeline over the
// current snapshot, so concurrent callers never share query state.
type Service struct {
	dataset Dataset
	opts    []Option
}

// NewService creates a query service. opts are applied to every pipeline it builds.
func NewService(dataset Dataset, opts ...Option) *Service {
	return &Service{dataset: dataset, opts: opts}
}

// Pipeline builds a pipeline over the current snapshot. An empty snapshot is not an error here.
func (s *Service) Pipeline() (*Pipeline, error) {
	schemes, err := s.dataset.Schemes()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	p, err := New(schemes, s.opts...)
	if err != nil && !errors.Is(err, domain.ErrEmptyDataset) {
		return nil, err
	}
	return p, nil
}

// DefaultState returns the state a fresh pipeline starts from, including the configured page size.
func (s *Service) DefaultState() query.State {
	p, _ := New(nil, s.opts...)
	if p == nil {
		return query.DefaultState()
	}
	return p.State()
}

// Query applies state and returns the resulting page together with the effective
// (normalized and clamped) state.
func (s *Service) Query(state query.State) (query.Page, query.State, error) {
	p, err := s.Pipeline()
	if err != nil {
		return query.Page{}, query.State{}, fmt.Errorf("query schemes: %w", err)
	}
	if err := p.Apply(state); err != nil {
		return query.Page{}, query.State{}, fmt.Errorf("query schemes: %w", err)
	}
	return p.Page(), p.State(), nil
}
