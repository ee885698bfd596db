// Package upstream implements the HTTP client for the campus backend REST
// surface. It is the gateway's single normalization boundary: every response
// is mapped from the backend's loosely shaped payloads into one canonical
// domain shape, failing loudly on unrecognized shapes instead of silently
// defaulting.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
)

// Timeouts per caller class. The prober uses the short health budget, the
// diagnostic variant a looser one, dashboard CRUD sits in between, and the
// assistant gets the long conversational budget.
const (
	healthTimeout     = 5 * time.Second
	diagnosticTimeout = 10 * time.Second
	crudTimeout       = 15 * time.Second
	assistantTimeout  = 30 * time.Second
)

// Client talks to the campus backend. All methods classify transport
// failures into domain.ErrUpstreamTimeout / domain.ErrUpstreamUnavailable and
// surface non-2xx responses as typed status errors.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for the given base URL.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log,
	}
}

// errorEnvelope covers both error shapes the backend is known to emit.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorEnvelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// do issues one bounded request and returns the response body for 2xx
// responses. Non-2xx responses become *domain.UpstreamStatusError carrying
// any server-supplied text.
func (c *Client) do(ctx context.Context, timeout time.Duration, method, path, token string, body io.Reader, contentType string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		_ = json.Unmarshal(raw, &env)
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("upstream rejected request")
		return nil, &domain.UpstreamStatusError{Code: resp.StatusCode, Message: env.text()}
	}

	return raw, nil
}

// doJSON marshals payload (when non-nil) and issues a JSON request.
func (c *Client) doJSON(ctx context.Context, timeout time.Duration, method, path, token string, payload any) ([]byte, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, timeout, method, path, token, body, contentType)
}

// decode unmarshals into out, converting decode failures into the loud
// malformed-payload error.
func decode(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return nil
}
