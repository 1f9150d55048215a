package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errUnexpectedStatus = errors.New("unexpected status code")
	errCircuitOpen      = errors.New("circuit breaker open")
	errNoHTTPClient     = errors.New("http client not configured")
)

// Client issues outbound GET requests through a named circuit breaker.
// Requests are never retried; a failing host trips the breaker after its
// consecutive-failure threshold and later calls fail fast until it recovers.
type Client struct {
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient wraps httpClient with a circuit breaker named after the remote
// it talks to.
func NewClient(name string, httpClient *http.Client) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		http:    httpClient,
		circuit: cb,
	}
}

// Get performs a single GET request. Any response outside the 2xx range is
// closed and reported as an error. On success the caller owns the body.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.http == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.http.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d from %s", errUnexpectedStatus, resp.StatusCode, rawURL)
		}

		return resp, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}
