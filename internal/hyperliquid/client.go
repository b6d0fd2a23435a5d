package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultAPIURL is the public info endpoint.
const DefaultAPIURL = "https://api.hyperliquid.xyz/info"

// maxFillsPerQuery is a platform limitation of the userFills endpoint: only
// the most recent 2000 fills are returned and older history is truncated.
// This client does not paginate, so results are recent history only.
const maxFillsPerQuery = 2000

// Client issues read-only info queries against the Hyperliquid API.
// Each call is a fresh best-effort fetch: no retries, no caching, no
// rate-limit handling.
type Client struct {
	apiURL string
	http   *http.Client
	logger *zap.Logger
}

// New creates an info API client. A zero timeout leaves the HTTP client
// unbounded, so a hanging endpoint blocks until the context is cancelled.
func New(apiURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		http:   &http.Client{Timeout: timeout},
		logger: logger.Named("hyperliquid"),
	}
}

// UserFills fetches the trade fill history for a wallet address. At most the
// 2000 most recent fills are returned by the platform.
func (c *Client) UserFills(ctx context.Context, address string) ([]RawFill, error) {
	var fills []RawFill
	if err := c.post(ctx, infoRequest{Type: "userFills", User: address}, &fills); err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched user fills",
		zap.String("user", address),
		zap.Int("count", len(fills)),
		zap.Bool("possibly_truncated", len(fills) >= maxFillsPerQuery))

	return fills, nil
}

// UserFunding fetches funding settlements for a wallet address from startTime
// (ms since epoch) onward.
func (c *Client) UserFunding(ctx context.Context, address string, startTime int64) ([]RawFunding, error) {
	var funding []RawFunding
	req := infoRequest{Type: "userFunding", User: address, StartTime: startTime}
	if err := c.post(ctx, req, &funding); err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched user funding",
		zap.String("user", address),
		zap.Int64("start_time", startTime),
		zap.Int("count", len(funding)))

	return funding, nil
}

// post sends one info query and decodes the JSON array response into out.
func (c *Client) post(ctx context.Context, req infoRequest, out interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return &FetchError{Query: req.Type, Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return &FetchError{Query: req.Type, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &FetchError{Query: req.Type, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Query: req.Type, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Query: req.Type, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
