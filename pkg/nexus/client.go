// client.go
package nexus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/arc-language/libyear/pkg/core"
)

// StatusError reports a non-2xx answer from Nexus
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Client handles HTTP requests to the Nexus REST API
type Client struct {
	httpClient      *http.Client
	userAgent       string
	username        string
	password        string
	retryMaxElapsed time.Duration
	logger          *log.Logger
}

// NewClient creates a new Nexus HTTP client with default timeouts
func NewClient() *Client {
	return NewClientWithTimeout(DefaultTimeout, DefaultRetryMaxElapsed, nil)
}

// NewClientWithTimeout creates a new client with a custom request timeout and retry budget
func NewClientWithTimeout(timeout, retryMaxElapsed time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:       userAgent,
		retryMaxElapsed: retryMaxElapsed,
		logger:          logger,
	}
}

// SetBasicAuth sends credentials with every request
func (c *Client) SetBasicAuth(username, password string) {
	c.username = username
	c.password = password
}

// SearchAssets fetches one page of search results.
//
// A non-2xx answer is returned as *StatusError without retrying. Transport
// and decoding failures are retried with exponential backoff and, once the
// retry budget is spent, wrapped in core.ErrBackendUnavailable.
func (c *Client) SearchAssets(ctx context.Context, searchURL string) (*SearchResponse, error) {
	var page *SearchResponse

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		if c.username != "" {
			req.SetBasicAuth(c.username, c.password)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("performing request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, resp.Body)
			return backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, URL: searchURL})
		}

		var decoded SearchResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("decoding JSON: %w", err)
		}
		page = &decoded
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Printf("[Nexus API] %v, retrying in %s", err, wait)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(c.newBackOff(), ctx), notify); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, statusErr
		}
		return nil, fmt.Errorf("%w: %w", core.ErrBackendUnavailable, err)
	}

	return page, nil
}

func (c *Client) newBackOff() backoff.BackOff {
	// BackOff implementations are stateful; always return a fresh instance.
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = c.retryMaxElapsed
	return bo
}
