package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds one remote agent call end to end.
const DefaultTimeout = 30 * time.Second

// Client calls a remote support agent over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient builds a client for the agent at baseURL (scheme + host, no
// trailing slash required).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ask sends one turn to the remote agent. On any transport or protocol
// failure it returns the canned fallback response together with the error,
// so callers can always render something to the user.
func (c *Client) Ask(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Fallback(req), fmt.Errorf("encode agent request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/agent/", bytes.NewReader(body))
	if err != nil {
		return Fallback(req), fmt.Errorf("build agent request: %w", err)
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Fallback(req), fmt.Errorf("call agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Fallback(req), fmt.Errorf("agent returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fallback(req), fmt.Errorf("read agent response: %w", err)
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return Fallback(req), fmt.Errorf("decode agent response: %w", err)
	}
	return out, nil
}
