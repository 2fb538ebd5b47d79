package chat

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

const defaultMaxListed = 5

// Agent answers chat messages with an ordered rule table over the dataset.
type Agent struct {
	dataset   Dataset
	remote    Responder
	logger    *zap.Logger
	replies   *prometheus.CounterVec
	maxListed int
}

// Option configures an Agent.
type Option func(*Agent)

// WithRemote sets the responder consulted when no local rule answers.
func WithRemote(r Responder) Option {
	return func(a *Agent) { a.remote = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// WithRepliesCounter sets a counter vec with label "rule".
func WithRepliesCounter(c *prometheus.CounterVec) Option {
	return func(a *Agent) { a.replies = c }
}

// WithMaxListed caps how many schemes a listing reply includes.
func WithMaxListed(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxListed = n
		}
	}
}

// NewAgent creates a chat agent.
func NewAgent(dataset Dataset, opts ...Option) *Agent {
	a := &Agent{
		dataset:   dataset,
		logger:    zap.NewNop(),
		maxListed: defaultMaxListed,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Respond answers one message. It never fails: provider errors become a fixed reply.
func (a *Agent) Respond(ctx context.Context, message string) Reply {
	raw := strings.TrimSpace(message)
	t := &turn{raw: raw, folded: cases.Fold().String(raw)}
	t.words = splitWords(t.folded)
	if schemes, err := a.dataset.Schemes(); err == nil {
		t.schemes = schemes
		t.loaded = len(schemes) > 0
	}

	for _, r := range a.rules() {
		if !r.match(t) {
			continue
		}
		reply := r.respond(ctx, t)
		if a.replies != nil {
			a.replies.WithLabelValues(reply.Rule).Inc()
		}
		return reply
	}
	// unreachable: the fallback rule always matches
	return Reply{Text: emptyText, Rule: RuleFallback}
}
