// Package rod loads live listing pages by rendering them in headless Chrome.
// It takes the place of the browser tab a listing page would otherwise be
// read from; scraping itself never touches the network.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/carlot"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// DefaultTimeout bounds a single page render.
const DefaultTimeout = 30 * time.Second

// Ensure PageLoader implements carlot.PageLoader at compile time.
var _ carlot.PageLoader = (*PageLoader)(nil)

// PageLoader renders URLs and returns the resulting DOM as a page.
// PageLoader is safe for concurrent use by multiple goroutines.
type PageLoader struct {
	browser  *browser
	timeout  time.Duration
	maxPages int
	stealth  bool
	closed   atomic.Bool
}

// Option configures a PageLoader.
type Option func(*PageLoader)

// WithTimeout sets the per-page render timeout. Defaults to 30s.
func WithTimeout(d time.Duration) Option {
	return func(l *PageLoader) {
		l.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before Chrome is restarted.
func WithMaxPages(n int) Option {
	return func(l *PageLoader) {
		l.maxPages = n
	}
}

// WithStealth toggles the evasion scripts injected into every tab.
// Marketplaces commonly block plain headless Chrome, so they are on by
// default.
func WithStealth(on bool) Option {
	return func(l *PageLoader) {
		l.stealth = on
	}
}

// NewPageLoader launches headless Chrome. Close must be called when the
// PageLoader is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewPageLoader(opts ...Option) (*PageLoader, error) {
	l := &PageLoader{timeout: DefaultTimeout, stealth: true}
	for _, opt := range opts {
		opt(l)
	}

	b, err := newBrowser(l.maxPages)
	if err != nil {
		return nil, err
	}
	l.browser = b
	return l, nil
}

// Load navigates to url, waits for the page to load and returns the
// rendered HTML. The page URL is the one the browser ended up on, so
// redirects are reflected in the page's origin.
func (l *PageLoader) Load(ctx context.Context, url string) (*carlot.Page, error) {
	if l.closed.Load() {
		return nil, carlot.Errorf(carlot.EINVALID, "page loader is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	tab, release, err := l.newTab()
	if err != nil {
		return nil, err
	}
	defer release()
	defer tab.Close()

	tab = tab.Context(ctx)

	if err := tab.Navigate(url); err != nil {
		return nil, err
	}
	if err := tab.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := tab.HTML()
	if err != nil {
		return nil, err
	}

	finalURL := url
	if info, err := tab.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return carlot.NewPage(finalURL, html)
}

// newTab opens a tab on the current browser. release must be called after
// the tab is closed.
func (l *PageLoader) newTab() (tab *rod.Page, release func(), err error) {
	b, release, err := l.browser.acquire()
	if err != nil {
		return nil, nil, err
	}
	if l.stealth {
		tab, err = stealth.Page(b)
	} else {
		tab, err = b.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		release()
		return nil, nil, err
	}
	return tab, release, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (l *PageLoader) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	return l.browser.close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (l *PageLoader) LauncherPID() int {
	return l.browser.pid()
}
