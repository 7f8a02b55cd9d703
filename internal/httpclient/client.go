package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fogcast/fogcast-mcp/internal/config"
	"go.uber.org/zap"
)

// Transport-level error taxonomy. Every failure of GetJSON is one of
// ErrConnection, ErrTimeout, *StatusError or *DecodeError; no other failure
// mode escapes this package.
var (
	ErrConnection = errors.New("upstream connection failed")
	ErrTimeout    = errors.New("upstream request timed out")
)

// StatusError reports a non-2xx upstream response, carrying the upstream's
// own error body when present.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// DecodeError reports a response body that is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("upstream response is not valid JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client issues GET requests against a fixed base URL with a fixed timeout.
// It is safe for concurrent use; each call carries its own timeout.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

// New creates a transport client for the given base URL and per-request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     config.GetLogger(),
	}
}

// GetJSON issues a GET against path with optional query parameters and
// returns the decoded JSON body for 2xx responses.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debugw("upstream request", "url", u)
	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.log.Warnw("upstream request timed out", "url", u)
			return nil, fmt.Errorf("%w: %s", ErrTimeout, u)
		}
		c.log.Warnw("upstream request failed", "url", u, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, u)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if !json.Valid(body) {
		return nil, &DecodeError{Err: fmt.Errorf("invalid JSON in %d-byte body", len(body))}
	}
	return json.RawMessage(body), nil
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
