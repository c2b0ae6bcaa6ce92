// Package slog provides logging decorators for carlot services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/carlot"
)

// Ensure LoggingScraper implements carlot.Scraper.
var _ carlot.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging of each scraped page.
type LoggingScraper struct {
	next   carlot.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next carlot.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, page *carlot.Page) (result *carlot.ScrapeResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if page != nil {
			attrs = append(attrs, "url", page.URL)
		}
		if result != nil {
			attrs = append(attrs,
				"site", string(result.Site),
				"source", result.Source,
				"containers", result.Containers,
				"vehicles", len(result.Vehicles),
				"failed", result.Failed,
			)
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, page)
}
