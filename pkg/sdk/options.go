package yojana

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// Responder answers chat messages that no local rule handles.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

type clientConfig struct {
	source      string
	loadTimeout time.Duration

	driver     string // "memory", "valkey" or "redis"
	addrs      []string
	password   string
	standalone bool

	keyPrefix  string
	sessionTTL time.Duration

	pageSize    int
	maxPageSize int

	responder Responder
	endpoint  string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDataset sets the dataset source: a local file path or an http(s) URL. Required.
func WithDataset(source string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = source
	})
}

// WithLoadTimeout bounds a remote dataset fetch. Default: 15s.
func WithLoadTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.loadTimeout = d
	})
}

// WithValkey stores sessions in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores sessions in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
// Use for single-node Valkey/Redis instances.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithKeyPrefix namespaces session keys in a shared store. Default: "yojana:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithSessionTTL expires idle sessions. Zero keeps them forever (default).
func WithSessionTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionTTL = ttl
	})
}

// WithPageSize sets the default page size. Default: 12.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithMaxPageSize caps the page size a query may request. Default: 100.
func WithMaxPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxPageSize = n
	})
}

// WithResponder sets the remote chat fallback.
// Without one, unmatched chat messages get the canned help reply.
func WithResponder(r Responder) Option {
	return optionFunc(func(c *clientConfig) {
		c.responder = r
	})
}

// WithChatEndpoint uses an HTTP chat bot as the remote chat fallback.
// Ignored when WithResponder is also given.
func WithChatEndpoint(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.endpoint = url
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
