// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client is the outbound HTTP client used for partner services such as the
// profile API. Every client carries a hard timeout.
type Client struct {
	inner *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		inner: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.inner.Do(req)
}

// DoWithContext binds the request to ctx so job cancellation propagates to
// the outbound call.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.inner.Do(req.WithContext(ctx))
}
