// Package authclient calls the auth status endpoint over HTTP on behalf of
// the page gate.
package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fundbridge/platform/internal/core/domain"
)

const (
	defaultTimeout = 3 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client performs the status round-trip. Each attempt is bounded by Timeout;
// attempts that time out are retried up to Retries more times.
type Client struct {
	URL        string
	HTTPClient *http.Client
	Timeout    time.Duration
	Retries    int
}

func New(statusURL string, timeout time.Duration, retries int) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if retries < 0 {
		retries = 0
	}
	return &Client{
		URL:        statusURL,
		HTTPClient: &http.Client{},
		Timeout:    timeout,
		Retries:    retries,
	}
}

// Check forwards the token as a bearer header together with the caller's
// cookies and decodes the status body.
//
// Errors:
//   - domain.ErrStatusTimeout when every attempt timed out
//   - domain.ErrStatusDegraded when the endpoint answered 503
//   - domain.ErrStatusUnavailable on transport failure or a non-JSON body
func (c *Client) Check(ctx context.Context, token string, cookies []*http.Cookie) (*domain.AuthStatus, error) {
	var lastErr error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		status, err := c.attempt(ctx, token, cookies)
		if err == nil {
			return status, nil
		}
		if !isTimeout(err) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", domain.ErrStatusTimeout, c.Retries+1, lastErr)
}

func (c *Client) attempt(ctx context.Context, token string, cookies []*http.Cookie) (*domain.AuthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrStatusUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStatusUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrStatusUnavailable, err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, domain.ErrStatusDegraded
	}

	var status domain.AuthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: status %d: decode body: %v", domain.ErrStatusUnavailable, resp.StatusCode, err)
	}
	return &status, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
