// Package chat provides clients for posting notifications to chat webhooks.
//
// Two webhook dialects are supported: a Slack-style payload with text and blocks,
// and a Discord-style payload with content and embeds. Both share the same poster,
// which classifies HTTP outcomes into the sentinel errors below.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrInvalidWebhook means the destination rejected the request as unknown or malformed.
	ErrInvalidWebhook = errors.New("invalid webhook")
	// ErrRateLimited means the destination asked us to slow down.
	ErrRateLimited = errors.New("webhook rate limited")
	// ErrUnavailable means a network failure or a 5xx response.
	ErrUnavailable = errors.New("webhook unavailable")
)

const defaultTimeout = 10 * time.Second

// Client posts JSON payloads to webhook URLs.
type Client struct {
	client  *http.Client // HTTP client used to make requests
	timeout time.Duration
}

// NewClient creates a new webhook Client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// post sends payload as JSON to webhookURL.
//
// It returns ErrInvalidWebhook for unusable URLs and 4xx responses (except 429),
// ErrRateLimited for 429 and ErrUnavailable for transport errors and 5xx responses.
// Context deadline errors are returned unwrapped so callers can detect timeouts.
func (c *Client) post(ctx context.Context, webhookURL string, payload any) error {
	u, err := url.Parse(webhookURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidWebhook, webhookURL)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("send request: %w", context.DeadlineExceeded)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, resp.Status)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidWebhook, resp.Status)
	}
}
