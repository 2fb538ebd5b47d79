package dataset

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/scheme"
)

// source is the consumer interface for dataset loading (ISP).
type source interface {
	Load(ctx context.Context) ([]scheme.Scheme, error)
	Source() string
}

// Metrics are the optional collectors updated on every load.
type Metrics struct {
	Loads    *prometheus.CounterVec // label "status": ok / error
	Schemes  prometheus.Gauge
	Duration prometheus.Histogram
}

// Snapshot is an immutable loaded dataset.
type Snapshot struct {
	schemes  []scheme.Scheme
	byID     map[string]int
	loadedAt time.Time
}

func newSnapshot(schemes []scheme.Scheme, at time.Time) *Snapshot {
	byID := make(map[string]int, len(schemes))
	for i, s := range schemes {
		byID[s.ID()] = i
	}
	return &Snapshot{schemes: schemes, byID: byID, loadedAt: at}
}

// Schemes returns the records in dataset order. Callers must not modify the slice.
func (s *Snapshot) Schemes() []scheme.Scheme { return s.schemes }

// Len returns the number of records.
func (s *Snapshot) Len() int { return len(s.schemes) }

// LoadedAt returns when the snapshot was loaded.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Get looks up a scheme by id.
func (s *Snapshot) Get(id string) (scheme.Scheme, bool) {
	i, ok := s.byID[id]
	if !ok {
		return scheme.Scheme{}, false
	}
	return s.schemes[i], true
}

// Repo holds the current dataset snapshot and reloads it on demand.
type Repo struct {
	src     source
	current atomic.Pointer[Snapshot]
	metrics Metrics
	logger  *zap.Logger
	nowFn   func() time.Time
}

// New creates a dataset repository with no snapshot loaded.
func New(src source, m Metrics, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{src: src, metrics: m, logger: logger, nowFn: time.Now}
}

// NewFromSchemes creates a repository already holding the given records.
func NewFromSchemes(schemes []scheme.Scheme) *Repo {
	r := &Repo{logger: zap.NewNop(), nowFn: time.Now}
	r.current.Store(newSnapshot(schemes, r.nowFn()))
	return r
}

// Reload loads the dataset and swaps the snapshot. On failure the previous snapshot is kept.
// An empty dataset is stored and reported with domain.ErrEmptyDataset.
func (r *Repo) Reload(ctx context.Context) (int, error) {
	if r.src == nil {
		return 0, fmt.Errorf("reload: %w", domain.ErrDatasetUnavailable)
	}

	start := r.nowFn()
	schemes, err := r.src.Load(ctx)
	r.observe(start, err)
	if err != nil {
		r.logger.Warn("dataset load failed",
			zap.String("source", r.src.Source()),
			zap.Error(err),
		)
		return 0, err
	}

	r.current.Store(newSnapshot(schemes, r.nowFn()))
	if r.metrics.Schemes != nil {
		r.metrics.Schemes.Set(float64(len(schemes)))
	}
	r.logger.Info("dataset loaded",
		zap.String("source", r.src.Source()),
		zap.Int("schemes", len(schemes)),
	)

	if len(schemes) == 0 {
		return 0, domain.ErrEmptyDataset
	}
	return len(schemes), nil
}

func (r *Repo) observe(start time.Time, err error) {
	if r.metrics.Duration != nil {
		r.metrics.Duration.Observe(r.nowFn().Sub(start).Seconds())
	}
	if r.metrics.Loads == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.metrics.Loads.WithLabelValues(status).Inc()
}

// Snapshot returns the current snapshot or domain.ErrDatasetUnavailable.
func (r *Repo) Snapshot() (*Snapshot, error) {
	s := r.current.Load()
	if s == nil {
		return nil, domain.ErrDatasetUnavailable
	}
	return s, nil
}

// Schemes returns the current records in dataset order.
func (r *Repo) Schemes() ([]scheme.Scheme, error) {
	s, err := r.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Schemes(), nil
}

// Get looks up one scheme by id.
func (r *Repo) Get(id string) (scheme.Scheme, error) {
	s, err := r.Snapshot()
	if err != nil {
		return scheme.Scheme{}, err
	}
	sch, ok := s.Get(id)
	if !ok {
		return scheme.Scheme{}, domain.ErrSchemeNotFound
	}
	return sch, nil
}

// Ping reports whether a snapshot is loaded.
func (r *Repo) Ping(_ context.Context) error {
	_, err := r.Snapshot()
	return err
}
