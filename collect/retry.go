package collect

import (
	"context"
	"time"

	"github.com/fwojciec/carlot"
)

// LoadFunc is the signature for a page load function.
type LoadFunc func(ctx context.Context, source string) (*carlot.Page, error)

// LogFunc is the signature for a structured logging function, such as
// (*slog.Logger).Warn.
type LogFunc func(msg string, args ...any)

// DefaultRetryDelays returns the backoff delays for load retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// LoadWithRetry loads a source, retrying after each delay in delays.
// Invalid and not-found errors are returned without retrying; a missing
// file does not appear by waiting. The logger, if provided, is called for
// each retry attempt.
func LoadWithRetry(ctx context.Context, source string, load LoadFunc, logger LogFunc, delays []time.Duration) (*carlot.Page, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := load(ctx, source)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("retrying page load", "source", source, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

func retryable(err error) bool {
	switch carlot.ErrorCode(err) {
	case carlot.EINVALID, carlot.ENOTFOUND:
		return false
	}
	return true
}
