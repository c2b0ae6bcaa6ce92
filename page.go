package carlot

import (
	"context"
	"net/url"
	"strings"
)

// Page is a loaded document together with its location metadata.
// Pages are static snapshots; nothing in the extraction pipeline fetches.
type Page struct {
	URL      string
	Hostname string // lower-cased
	Origin   string // scheme://host
	HTML     string
}

// NewPage builds a Page from an absolute URL and the page's HTML.
func NewPage(rawURL, html string) (*Page, error) {
	if rawURL == "" {
		return nil, Errorf(EINVALID, "page URL required")
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return nil, Errorf(EINVALID, "invalid page URL %q", rawURL)
	}

	return &Page{
		URL:      u.String(),
		Hostname: strings.ToLower(u.Hostname()),
		Origin:   u.Scheme + "://" + u.Host,
		HTML:     html,
	}, nil
}

// PageLoader supplies pages to the pipeline. Implementations hide whether
// the page comes from a saved file or a rendered browser tab.
type PageLoader interface {
	Load(ctx context.Context, source string) (*Page, error)
}

// RateLimiter paces page loads per host.
type RateLimiter interface {
	// Wait blocks until a load from host is allowed or ctx is done.
	Wait(ctx context.Context, host string) error
}
