package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/carlot"
)

// Ensure LoggingPageLoader implements carlot.PageLoader.
var _ carlot.PageLoader = (*LoggingPageLoader)(nil)

// LoggingPageLoader wraps a PageLoader with logging of each load.
type LoggingPageLoader struct {
	next   carlot.PageLoader
	logger *slog.Logger
}

// NewLoggingPageLoader creates a new LoggingPageLoader.
func NewLoggingPageLoader(next carlot.PageLoader, logger *slog.Logger) *LoggingPageLoader {
	return &LoggingPageLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the source, size and duration.
func (l *LoggingPageLoader) Load(ctx context.Context, source string) (page *carlot.Page, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if page != nil {
			bytes = len(page.HTML)
		}
		l.logger.Info("load page",
			"source", source,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, source)
}
