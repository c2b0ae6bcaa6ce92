// Package collect runs the listing collection pipeline. It loads pages,
// scrapes them, drops duplicate listings and stores the rest.
package collect

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/carlot"
	"github.com/fwojciec/carlot/bloom"
	"golang.org/x/sync/errgroup"
)

// Defaults for a zero-valued Collector.
const (
	DefaultConcurrency       = 4
	DefaultExpectedListings  = 10000
	DefaultFalsePositiveRate = 0.001
)

// Collector coordinates loading, scraping and storing vehicle listings.
type Collector struct {
	Loader   carlot.PageLoader
	Scraper  carlot.Scraper
	Vehicles carlot.VehicleService

	// Limiter, if set, paces loads of http(s) sources per host.
	Limiter carlot.RateLimiter

	// Log, if set, receives load retry attempts.
	Log LogFunc

	// Debug, if set, receives batch deduplication details.
	Debug LogFunc

	Concurrency int
	RetryDelays []time.Duration

	// Bloom filter sizing for in-batch deduplication.
	ExpectedListings  uint
	FalsePositiveRate float64
}

// Result holds the outcome of collecting one page.
type Result struct {
	Input      string // source the page was loaded from; empty for Collect
	Site       carlot.Site
	Source     string
	Found      int // listings scraped from the page
	Added      int
	Duplicates int // listings the store already held, from earlier pages or runs
	Failed     int // containers skipped after an extraction failure
	Err        error
}

// Summary totals a batch of results.
type Summary struct {
	Pages      int
	Errors     int
	Found      int
	Added      int
	Duplicates int
	Failed     int
}

// Summarize totals results. Results with an error count only as errors.
func Summarize(results []*Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Err != nil {
			s.Errors++
			continue
		}
		s.Pages++
		s.Found += r.Found
		s.Added += r.Added
		s.Duplicates += r.Duplicates
		s.Failed += r.Failed
	}
	return s
}

// ProgressEvent reports progress during CollectSources.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressLoaded
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress.
type ProgressFunc func(event ProgressEvent)

// loadResult holds the outcome of loading a single source.
type loadResult struct {
	position int
	source   string
	page     *carlot.Page
	err      error
}

// Collect scrapes a single page and stores its new listings.
func (c *Collector) Collect(ctx context.Context, page *carlot.Page) (*Result, error) {
	return c.collect(ctx, page, c.newFilter())
}

// CollectSources loads every source, then scrapes and stores the loaded
// pages in source order. Loads run concurrently; a source that fails to
// load is recorded in its Result and does not stop the batch. Listings are
// deduplicated across the whole batch. The progress callback, if provided,
// is called from the calling goroutine only.
func (c *Collector) CollectSources(ctx context.Context, sources []string, progress ProgressFunc) ([]*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sources)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan loadResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range sources {
			g.Go(func() error {
				page, err := c.load(gctx, source)
				resultCh <- loadResult{position: i, source: source, page: page, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	loaded := make([]loadResult, len(sources))
	completed := 0
	for result := range resultCh {
		completed++
		loaded[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressLoaded,
			Completed: completed,
			Total:     total,
			Source:    result.source,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filter := c.newFilter()
	results := make([]*Result, len(loaded))
	for i, l := range loaded {
		if l.err != nil {
			results[i] = &Result{Input: l.source, Err: l.err}
			continue
		}

		r, err := c.collect(ctx, l.page, filter)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", l.source, err)
		}
		r.Input = l.source
		results[i] = r
	}

	if c.Debug != nil {
		c.Debug("batch deduplicated", "pages", total, "filter_keys", filter.EstimatedCount())
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return results, nil
}

// load loads a single source with rate limiting and retries.
func (c *Collector) load(ctx context.Context, source string) (*carlot.Page, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	host := sourceHost(source)
	loadFn := func(ctx context.Context, source string) (*carlot.Page, error) {
		if c.Limiter != nil && host != "" {
			if err := c.Limiter.Wait(ctx, host); err != nil {
				return nil, err
			}
		}
		return c.Loader.Load(ctx, source)
	}

	return LoadWithRetry(ctx, source, loadFn, c.Log, delays)
}

// collect scrapes page and adds each listing to the store. The filter only
// flags listings that were probably seen earlier in the batch; the store
// decides what is a duplicate.
func (c *Collector) collect(ctx context.Context, page *carlot.Page, filter *bloom.Filter) (*Result, error) {
	scraped, err := c.Scraper.Scrape(ctx, page)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Site:   scraped.Site,
		Source: scraped.Source,
		Found:  len(scraped.Vehicles),
		Failed: scraped.Failed,
	}

	for _, v := range scraped.Vehicles {
		seen := filter.Seen(v)

		added, err := c.Vehicles.AddVehicle(ctx, v)
		if err != nil {
			return nil, err
		}
		if !added {
			result.Duplicates++
			continue
		}
		result.Added++
		if seen && c.Debug != nil {
			c.Debug("batch filter false positive", "url", v.URL, "title", v.Title)
		}
	}

	return result, nil
}

func (c *Collector) newFilter() *bloom.Filter {
	n := c.ExpectedListings
	if n == 0 {
		n = DefaultExpectedListings
	}
	fp := c.FalsePositiveRate
	if fp <= 0 {
		fp = DefaultFalsePositiveRate
	}
	return bloom.NewFilter(n, fp)
}

// sourceHost returns the lower-cased host of an http(s) source, or "" for
// anything else (such as a file path).
func sourceHost(source string) string {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
