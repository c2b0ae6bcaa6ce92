// Package http provides a carlot.PageLoader that fetches pages over plain
// HTTP. Pages that build their listings with JavaScript need the rod
// loader instead.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/carlot"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the default timeout for a page request.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// maxBodySize caps how much of a response is read.
const maxBodySize = 20 << 20

// Ensure PageLoader implements carlot.PageLoader at compile time.
var _ carlot.PageLoader = (*PageLoader)(nil)

// PageLoader loads pages with HTTP GET requests.
type PageLoader struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a PageLoader.
type Option func(*PageLoader)

// WithTimeout sets the timeout for each request.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *PageLoader) {
		l.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(l *PageLoader) {
		l.userAgent = ua
	}
}

// WithClient sets the HTTP client. Its timeout is replaced by the
// loader's.
func WithClient(c *http.Client) Option {
	return func(l *PageLoader) {
		l.client = c
	}
}

// NewPageLoader creates a new HTTP PageLoader.
func NewPageLoader(opts ...Option) *PageLoader {
	l := &PageLoader{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = &http.Client{}
	}
	l.client.Timeout = l.timeout

	return l
}

// Load fetches url and returns it as a page. The page URL is the final URL
// after redirects. A 404 or 410 response returns ENOTFOUND; other non-2xx
// responses return an error that may be retried.
func (l *PageLoader) Load(ctx context.Context, url string) (*carlot.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, carlot.Errorf(carlot.EINVALID, "invalid URL %q", url)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, carlot.Errorf(carlot.ENOTFOUND, "page %s not found (HTTP %d)", url, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}
	html, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	return carlot.NewPage(resp.Request.URL.String(), string(html))
}
