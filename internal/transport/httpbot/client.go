// Package httpbot forwards chat messages to a plain JSON chatbot endpoint.
package httpbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/metrics"
)

const (
	providerName = "http"
	maxBodyBytes = 1 << 20
)

// Client posts {"message": ...} and reads {"response": ...}.
type Client struct {
	endpoint string
	client   *http.Client
}

// New creates a chatbot client with the given request timeout.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type request struct {
	Message string `json:"message"`
}

type response struct {
	Response string `json:"response"`
}

// Reply implements chat.Responder.
func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	start := time.Now()
	text, err := c.post(ctx, message)
	if err != nil {
		metrics.ChatRemoteRequestsTotal.WithLabelValues(providerName, "error").Inc()
		metrics.ChatRemoteErrorsTotal.WithLabelValues(providerName, "api_error").Inc()
		return "", fmt.Errorf("chatbot %s: %w: %w", c.endpoint, domain.ErrChatProviderError, err)
	}
	metrics.ChatRemoteRequestsTotal.WithLabelValues(providerName, "success").Inc()
	metrics.ChatRemoteRequestDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	return text, nil
}

func (c *Client) post(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(request{Message: message})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", fmt.Errorf("empty response")
	}
	return strings.TrimSpace(out.Response), nil
}
