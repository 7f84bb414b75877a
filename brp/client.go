package brp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/natepiano/bevy-brp-sub002/internal/logctx"
)

// Client issues a single BRP call and returns the raw result payload.
// Implementations must be safe for concurrent use.
type Client interface {
	Call(ctx context.Context, method string, params any) (json.RawMessage, error)
}

// HTTPClient speaks JSON-RPC over a single HTTP POST per call.
type HTTPClient struct {
	url     string
	hc      *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) { c.hc = hc }
}

// WithTimeout sets the per-call timeout. Zero leaves the default (10s).
// The timeout applies whichever order the options are given in.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for call tracing.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *HTTPClient) { c.log = log }
}

// NewHTTPClient builds a client for the given target URL. An empty URL
// falls back to DefaultURL.
func NewHTTPClient(url string, opts ...ClientOption) *HTTPClient {
	if url == "" {
		url = DefaultURL
	}
	c := &HTTPClient{
		url: url,
		hc:  &http.Client{Timeout: 10 * time.Second},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.hc.Timeout = c.timeout
	}
	return c
}

// Call implements Client. Target-side rejections come back as *Error;
// anything preventing a well-formed reply comes back as *TransportError.
func (c *HTTPClient) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := uuid.NewString()
	req, err := NewRequest(id, method, params)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx = logctx.WithCallData(ctx, &logctx.CallData{Method: method, RequestID: id})
	c.log.DebugContext(ctx, "brp call")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpRes, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	defer func() { _ = httpRes.Body.Close() }()

	raw, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}

	var res Response
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("invalid JSON reply: %w", err)}
	}
	if err := res.Validate(); err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	if res.Error != nil {
		c.log.DebugContext(ctx, "brp call rejected", slog.Int("code", int(res.Error.Code)), slog.String("message", res.Error.Message))
		return nil, res.Error
	}
	return res.Result, nil
}
