package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/metrics"
)

const providerName = "openai"

// Responder answers chat messages using an OpenAI-compatible chat completions API.
type Responder struct {
	client       *openai.Client
	model        string
	systemPrompt string
	timeout      time.Duration
	logger       *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey       string
	BaseURL      string // empty uses the public OpenAI endpoint
	Model        string
	SystemPrompt string
	Timeout      time.Duration
	Logger       *zap.Logger
}

// NewResponder creates an OpenAI-compatible chat responder.
func NewResponder(cfg *Config) *Responder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Responder{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		timeout:      cfg.Timeout,
		logger:       logger,
	}
}

// Reply implements chat.Responder with transport-level metrics.
func (r *Responder) Reply(ctx context.Context, message string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: r.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	}

	start := time.Now()

	resp, err := r.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ChatRemoteRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ChatRemoteErrorsTotal.WithLabelValues(providerName, "api_error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.ChatRemoteRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ChatRemoteErrorsTotal.WithLabelValues(providerName, "empty_response").Inc()
		return "", fmt.Errorf("empty chat completion: %w", domain.ErrChatProviderError)
	}

	metrics.ChatRemoteRequestsTotal.WithLabelValues(providerName, "success").Inc()
	metrics.ChatRemoteRequestDuration.WithLabelValues(providerName).Observe(duration.Seconds())
	r.logger.Debug("chat completion",
		zap.String("model", r.model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("duration", duration),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (r *Responder) HealthCheck(ctx context.Context) error {
	if _, err := r.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrChatProviderError for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrChatProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("chat API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("chat API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("chat request timed out: %w", wrap)
	}
	return fmt.Errorf("chat request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (proxy error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
