package goquery

import "github.com/fwojciec/carlot"

// Registry maps sites to their scraping strategies. Sites without a
// registered strategy are not scraped.
type Registry struct {
	strategies map[carlot.Site]Strategy
}

// NewRegistry creates a Registry holding the given strategies. A later
// strategy for the same site replaces an earlier one.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[carlot.Site]Strategy, len(strategies))}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// NewDefaultRegistry creates a Registry with DefaultStrategies.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultStrategies()...)
}

// Register adds or replaces the strategy for s.Site.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Site] = s
}

// Get returns the strategy for site.
func (r *Registry) Get(site carlot.Site) (Strategy, bool) {
	s, ok := r.strategies[site]
	return s, ok
}
