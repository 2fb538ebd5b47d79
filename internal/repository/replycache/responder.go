package replycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/yojanadost/yojana/internal/db"
)

const keySegment = "reply_cache:"

// store is the consumer interface for the reply cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// responder is the remote chat responder being decorated.
type responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// CachedResponder caches remote chat replies in a key-value store.
// Messages that differ only in case or surrounding whitespace share one entry.
type CachedResponder struct {
	inner      responder
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner responder,
	s store,
	prefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedResponder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedResponder{
		inner:      inner,
		store:      s,
		prefix:     prefix + keySegment,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Reply returns a cached reply or asks the inner responder.
// Errors are never cached; store failures degrade to a cache miss.
func (c *CachedResponder) Reply(ctx context.Context, message string) (string, error) {
	key := c.cacheKey(message)

	if text, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return text, nil
	}
	c.incCache("miss")

	text, err := c.inner.Reply(ctx, message)
	if err != nil {
		return "", err
	}

	c.putToCache(ctx, key, text)
	return text, nil
}

func (c *CachedResponder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedResponder) cacheKey(message string) string {
	normalized := cases.Fold().String(strings.TrimSpace(message))
	h := sha256.Sum256([]byte(normalized))
	return c.prefix + hex.EncodeToString(h[:])
}

func (c *CachedResponder) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached reply", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (c *CachedResponder) putToCache(ctx context.Context, key, text string) {
	if text == "" {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Warn("Failed to cache reply", zap.String("key", key), zap.Error(err))
	}
}
