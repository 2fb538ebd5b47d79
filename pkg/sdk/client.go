package yojana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yojanadost/yojana/internal/db"
	"github.com/yojanadost/yojana/internal/db/memory"
	dbRedis "github.com/yojanadost/yojana/internal/db/redis"
	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/profile"
	"github.com/yojanadost/yojana/internal/domain/query"
	"github.com/yojanadost/yojana/internal/domain/scheme"
	datasetrepo "github.com/yojanadost/yojana/internal/repository/dataset"
	personalrepo "github.com/yojanadost/yojana/internal/repository/personalization"
	"github.com/yojanadost/yojana/internal/transport/httpbot"
	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
	chatuc "github.com/yojanadost/yojana/internal/usecase/chat"
	healthuc "github.com/yojanadost/yojana/internal/usecase/health"
	personaluc "github.com/yojanadost/yojana/internal/usecase/personalization"
	pipelineuc "github.com/yojanadost/yojana/internal/usecase/pipeline"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultLoadTimeout      = 15 * time.Second
	defaultMaxPageSize      = 100
	defaultKeyPrefix        = "yojana:"
	memoryCleanupInterval   = 10 * time.Minute
	chatEndpointTimeout     = 10 * time.Second
)

// Internal interfaces, swapped for mocks in tests.
type queryUseCase interface {
	Query(state query.State) (query.Page, query.State, error)
	DefaultState() query.State
}

type catalogUseCase interface {
	Categories() ([]cataloguc.CategorySummary, error)
	Regions() ([]cataloguc.RegionSummary, error)
	Stats() (cataloguc.Stats, error)
	Suggest(query string, limit int) ([]scheme.Scheme, error)
	Scheme(id string) (scheme.Scheme, error)
}

type chatUseCase interface {
	Respond(ctx context.Context, message string) chatuc.Reply
}

type sessionUseCase interface {
	NewSession() profile.SessionID
	BookmarkedSchemes(ctx context.Context, session profile.SessionID) ([]scheme.Scheme, error)
	IsBookmarked(ctx context.Context, session profile.SessionID, id string) (bool, error)
	ToggleBookmark(ctx context.Context, session profile.SessionID, id string) (bool, error)
	RemoveBookmark(ctx context.Context, session profile.SessionID, id string) error
	ClearBookmarks(ctx context.Context, session profile.SessionID) error
	Preferences(ctx context.Context, session profile.SessionID) (profile.Preferences, error)
	SavePreferences(ctx context.Context, session profile.SessionID, p profile.Preferences) (profile.Preferences, error)
	ResetPreferences(ctx context.Context, session profile.SessionID) (profile.Preferences, error)
}

type datasetReloader interface {
	Reload(ctx context.Context) (int, error)
	Schemes() ([]scheme.Scheme, error)
}

// Client is the yojana SDK entry point.
type Client struct {
	store      db.Store
	dataset    datasetReloader
	querySvc   queryUseCase
	catalogSvc catalogUseCase
	chatSvc    chatUseCase
	sessionSvc sessionUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New loads the dataset and connects to session storage.
// The provided context bounds the readiness check and the initial load.
// An empty dataset is not an error: every query then returns zero results.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:      "memory",
		loadTimeout: defaultLoadTimeout,
		keyPrefix:   defaultKeyPrefix,
		pageSize:    query.DefaultPageSize,
		maxPageSize: defaultMaxPageSize,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.source == "" {
		return nil, errors.New("yojana: dataset source required (use WithDataset)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("yojana: storage not ready: %w", err)
	}

	c := wireClient(store, datasetrepo.New(datasetrepo.NewLoader(cfg.source, cfg.loadTimeout), datasetrepo.Metrics{}, nil), cfg, obs)
	if _, err := c.Reload(ctx); err != nil && !errors.Is(err, domain.ErrEmptyDataset) {
		store.Close()
		return nil, fmt.Errorf("yojana: %w", err)
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory":
		return memory.NewStore(memoryCleanupInterval), nil
	case "valkey", "redis":
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, fmt.Errorf("yojana: %s address required", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("yojana: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("yojana: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, dataset *datasetrepo.Repo, cfg *clientConfig, obs *observer) *Client {
	var agentOpts []chatuc.Option
	switch {
	case cfg.responder != nil:
		agentOpts = append(agentOpts, chatuc.WithRemote(cfg.responder))
	case cfg.endpoint != "":
		agentOpts = append(agentOpts, chatuc.WithRemote(httpbot.New(cfg.endpoint, chatEndpointTimeout)))
	}

	return &Client{
		store:   store,
		dataset: dataset,
		querySvc: pipelineuc.NewService(dataset,
			pipelineuc.WithPageSize(cfg.pageSize),
			pipelineuc.WithMaxPageSize(cfg.maxPageSize),
		),
		catalogSvc: cataloguc.New(dataset),
		chatSvc:    chatuc.NewAgent(dataset, agentOpts...),
		sessionSvc: personaluc.New(personalrepo.New(store, cfg.keyPrefix, cfg.sessionTTL), dataset),
		healthSvc:  healthuc.New(dataset, store, nil),
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks session storage connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Reload re-reads the dataset source and swaps the snapshot.
// On failure the previous snapshot stays in place.
// An empty dataset is loaded and reported with ErrEmptyDataset.
func (c *Client) Reload(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("dataset.reload", start, err) }()

	return c.dataset.Reload(ctx)
}

// All returns every loaded scheme in dataset order.
func (c *Client) All() ([]Scheme, error) {
	schemes, err := c.dataset.Schemes()
	if err != nil {
		return nil, fmt.Errorf("all schemes: %w", err)
	}
	return fromInternalSchemes(schemes), nil
}

// Schemes returns the scheme query service.
func (c *Client) Schemes() *SchemeService {
	return &SchemeService{queries: c.querySvc, catalog: c.catalogSvc, obs: c.obs}
}

// Catalog returns the category, region and stats service.
func (c *Client) Catalog() *CatalogService {
	return &CatalogService{svc: c.catalogSvc, obs: c.obs}
}

// Chat returns the assistant service.
func (c *Client) Chat() *ChatService {
	return &ChatService{svc: c.chatSvc, obs: c.obs}
}

// Sessions returns the bookmarks and preferences service.
func (c *Client) Sessions() *SessionService {
	return &SessionService{svc: c.sessionSvc, obs: c.obs}
}
