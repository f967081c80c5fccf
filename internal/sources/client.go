package sources

import (
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every upstream request. Sources treat a timeout like
// any other upstream failure.
const DefaultTimeout = 15 * time.Second

// userAgents is rotated across scraping requests to look like ordinary
// browser traffic.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Client is a throttled HTTP client shared by the job-source adapters. Each
// upstream gets its own Client so one provider's rate limit never starves
// another.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	uaIndex atomic.Uint32
	browser bool
}

// NewClient builds a client capped at perSecond requests with the given
// request timeout. A zero timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration, perSecond float64) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// NewBrowserClient builds a throttled client that additionally rotates
// browser User-Agent headers, for HTML-scraping sources.
func NewBrowserClient(timeout time.Duration, perSecond float64) *Client {
	c := NewClient(timeout, perSecond)
	c.browser = true
	return c
}

// Do waits for the rate limiter, decorates the request, and performs it. The
// request's context governs both the wait and the call.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	if c.browser {
		i := c.uaIndex.Add(1)
		req.Header.Set("User-Agent", userAgents[int(i)%len(userAgents)])
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	}
	return c.http.Do(req)
}
