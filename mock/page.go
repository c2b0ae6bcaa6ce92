package mock

import (
	"context"

	"github.com/fwojciec/carlot"
)

var (
	_ carlot.PageLoader  = (*PageLoader)(nil)
	_ carlot.RateLimiter = (*RateLimiter)(nil)
)

// PageLoader is a mock implementation of carlot.PageLoader.
type PageLoader struct {
	LoadFn func(ctx context.Context, source string) (*carlot.Page, error)
}

func (l *PageLoader) Load(ctx context.Context, source string) (*carlot.Page, error) {
	return l.LoadFn(ctx, source)
}

// RateLimiter is a mock implementation of carlot.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (r *RateLimiter) Wait(ctx context.Context, host string) error {
	return r.WaitFn(ctx, host)
}
