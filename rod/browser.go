package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/carlot"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before Chrome is restarted.
const DefaultMaxPages = 50

// browser owns one headless Chrome process and restarts it after maxPages
// renders. Chrome's memory use only grows over a long session, and
// marketplace result pages are script heavy.
type browser struct {
	mu sync.Mutex

	// tabs is read-locked while a tab is open. Restarting or closing Chrome
	// takes the write lock, so it waits for open tabs to finish.
	tabs sync.RWMutex

	current  *rod.Browser
	launcher *launcher.Launcher
	rendered int
	maxPages int
}

func newBrowser(maxPages int) (*browser, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	b := &browser{maxPages: maxPages}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// acquire returns the browser to render the next page on, restarting Chrome
// first when the render budget is spent. The caller must call release once
// its tab is closed.
func (b *browser) acquire() (current *rod.Browser, release func(), err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return nil, nil, carlot.Errorf(carlot.EINVALID, "page loader is closed")
	}
	if b.rendered >= b.maxPages {
		b.tabs.Lock()
		b.restart()
		b.tabs.Unlock()
	}
	b.rendered++
	b.tabs.RLock()
	return b.current, b.tabs.RUnlock, nil
}

func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.current = rb
	b.launcher = l
	return nil
}

// restart swaps in a fresh Chrome. On failure the old one stays in use.
// Must be called with mu and the tabs write lock held.
func (b *browser) restart() {
	old, oldLauncher := b.current, b.launcher
	if err := b.launch(); err != nil {
		b.current, b.launcher = old, oldLauncher
		return
	}
	_ = old.Close()
	oldLauncher.Kill()
	b.rendered = 0
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabs.Lock()
	defer b.tabs.Unlock()

	var err error
	if b.current != nil {
		err = b.current.Close()
		b.current = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// pid returns the launcher process ID, or 0 once closed.
func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
