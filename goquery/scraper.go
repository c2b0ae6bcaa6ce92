// Package goquery implements vehicle listing extraction over parsed HTML
// using github.com/PuerkitoBio/goquery.
package goquery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carlot"
	"golang.org/x/net/html"
)

var _ carlot.Scraper = (*Scraper)(nil)

// Scraper detects a page's site and runs the matching strategy over it.
type Scraper struct {
	detector   *Detector
	registry   *Registry
	normalizer *carlot.Normalizer
	logger     *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithRegistry replaces the default strategy registry.
func WithRegistry(r *Registry) Option {
	return func(s *Scraper) {
		s.registry = r
	}
}

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *carlot.Normalizer) Option {
	return func(s *Scraper) {
		s.normalizer = n
	}
}

// WithLogger reports skipped containers to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// NewScraper creates a Scraper using the default strategies.
func NewScraper(opts ...Option) *Scraper {
	s := &Scraper{
		detector:   NewDetector(),
		registry:   NewDefaultRegistry(),
		normalizer: carlot.NewNormalizer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape extracts normalized vehicles from page. A container that fails to
// extract is logged, counted in Failed and skipped.
func (s *Scraper) Scrape(ctx context.Context, page *carlot.Page) (*carlot.ScrapeResult, error) {
	if page == nil {
		return nil, carlot.Errorf(carlot.EINVALID, "page required")
	}

	doc, err := parseDocument(page.HTML)
	if err != nil {
		return nil, carlot.Errorf(carlot.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &carlot.ScrapeResult{Site: s.detector.detect(page, doc)}

	strategy, ok := s.registry.Get(result.Site)
	if !ok {
		return result, nil
	}

	result.Source = strategy.Source
	if result.Source == "" {
		result.Source = carlot.SourceForURL(page.URL)
	}

	containers := doc.Find(strategy.Containers)
	result.Containers = containers.Length()

	for i := range containers.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := s.extract(&strategy, containers.Eq(i), page, result.Source)
		if err != nil {
			result.Failed++
			if s.logger != nil {
				s.logger.Warn("skipped listing container",
					"op", "scrape",
					"site", result.Site,
					"container", i,
					"err", err,
				)
			}
			continue
		}
		if raw == nil {
			continue
		}

		result.Vehicles = append(result.Vehicles, s.normalizer.Normalize(raw))
	}

	return result, nil
}

// extract runs the strategy over one container. It returns nil when the
// listing is not admitted and an error if extraction panicked.
func (s *Scraper) extract(strategy *Strategy, container *goquery.Selection, page *carlot.Page, source string) (raw *carlot.RawListing, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("extract listing: %v", r)
		}
	}()

	raw = strategy.extract(container, page, source)
	if !strategy.admit(raw) {
		return nil, nil
	}
	return raw, nil
}

// parseDocument parses HTML with golang.org/x/net/html and wraps it for
// querying.
func parseDocument(src string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}
