package chat

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/yojanadost/yojana/internal/domain"
)

// LimitedResponder rejects calls above a token-bucket rate instead of queueing them.
type LimitedResponder struct {
	inner   Responder
	limiter *rate.Limiter
}

// NewLimitedResponder wraps inner with a limiter of requestsPerSecond and burst.
func NewLimitedResponder(inner Responder, requestsPerSecond float64, burst int) *LimitedResponder {
	if burst < 1 {
		burst = 1
	}
	return &LimitedResponder{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Reply forwards to the wrapped responder or fails with domain.ErrRateLimited.
func (l *LimitedResponder) Reply(ctx context.Context, message string) (string, error) {
	if !l.limiter.Allow() {
		return "", domain.ErrRateLimited
	}
	text, err := l.inner.Reply(ctx, message)
	if err != nil {
		return "", fmt.Errorf("remote reply: %w", err)
	}
	return text, nil
}
