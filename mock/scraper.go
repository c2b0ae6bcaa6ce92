package mock

import (
	"context"

	"github.com/fwojciec/carlot"
)

var (
	_ carlot.Scraper      = (*Scraper)(nil)
	_ carlot.SiteDetector = (*SiteDetector)(nil)
)

// Scraper is a mock implementation of carlot.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, page *carlot.Page) (*carlot.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, page *carlot.Page) (*carlot.ScrapeResult, error) {
	return s.ScrapeFn(ctx, page)
}

// SiteDetector is a mock implementation of carlot.SiteDetector.
type SiteDetector struct {
	DetectFn func(page *carlot.Page) carlot.Site
}

func (d *SiteDetector) Detect(page *carlot.Page) carlot.Site {
	return d.DetectFn(page)
}
