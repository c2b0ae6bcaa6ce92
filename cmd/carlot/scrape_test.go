package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/carlot"
	main "github.com/fwojciec/carlot/cmd/carlot"
	"github.com/fwojciec/carlot/collect"
	"github.com/fwojciec/carlot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScrapeDeps(t *testing.T, vehicles []*carlot.Vehicle, added bool) (*main.Dependencies, func() string, func() string) {
	t.Helper()

	loader := &mock.PageLoader{
		LoadFn: func(_ context.Context, source string) (*carlot.Page, error) {
			if source == "missing.html" {
				return nil, carlot.Errorf(carlot.ENOTFOUND, "file %q not found", source)
			}
			return carlot.NewPage("https://www.cargurus.com/Cars/"+source, "<html></html>")
		},
	}
	scraper := &mock.Scraper{
		ScrapeFn: func(_ context.Context, page *carlot.Page) (*carlot.ScrapeResult, error) {
			return &carlot.ScrapeResult{
				Site:       carlot.SiteCarGurus,
				Source:     carlot.SourceCarGurus,
				Containers: len(vehicles),
				Vehicles:   vehicles,
			}, nil
		},
	}
	var mu sync.Mutex
	stored := map[string]bool{}
	store := &mock.VehicleService{
		AddVehicleFn: func(_ context.Context, v *carlot.Vehicle) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			if !added || stored[v.URL] {
				return false, nil
			}
			stored[v.URL] = true
			return true, nil
		},
	}

	deps, stdout, stderr := newDeps(store)
	deps.Loader = loader
	deps.Scraper = scraper
	deps.Collector = &collect.Collector{
		Loader:      loader,
		Scraper:     scraper,
		Vehicles:    store,
		RetryDelays: []time.Duration{},
	}
	return deps, stdout.String, stderr.String
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	listings := []*carlot.Vehicle{
		{ID: "a", Title: "2021 Toyota Camry SE", Price: intPtr(24500), URL: "https://www.cargurus.com/a"},
		{ID: "b", Title: "2019 Honda Civic LX", Price: intPtr(18900), URL: "https://www.cargurus.com/b"},
	}

	t.Run("prints counts for a single page", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newScrapeDeps(t, listings, true)

		require.NoError(t, (&main.ScrapeCmd{Sources: []string{"results.html"}}).Run(deps))

		assert.Contains(t, stdout(), "results.html: CarGurus, found 2, added 2, duplicates 0, failed 0")
		assert.NotContains(t, stdout(), "Total:")
	})

	t.Run("prints totals across pages", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newScrapeDeps(t, listings, true)

		require.NoError(t, (&main.ScrapeCmd{Sources: []string{"p1.html", "p2.html"}}).Run(deps))

		// The second page repeats the first, so the store rejects it.
		assert.Contains(t, stdout(), "p2.html: CarGurus, found 2, added 0, duplicates 2")
		assert.Contains(t, stdout(), "Total: 2 pages, found 4, added 2, duplicates 2, failed 0")
	})

	t.Run("skips pages that fail to load", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newScrapeDeps(t, listings, true)

		require.NoError(t, (&main.ScrapeCmd{Sources: []string{"missing.html", "p1.html"}}).Run(deps))

		assert.Contains(t, stderr(), "skip missing.html")
		assert.Contains(t, stdout(), "(1 pages failed to load)")
	})

	t.Run("fails when no page loads", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newScrapeDeps(t, listings, true)

		err := (&main.ScrapeCmd{Sources: []string{"missing.html"}}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr(), "no pages could be loaded")
	})

	t.Run("reports stored duplicates", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newScrapeDeps(t, listings, false)

		require.NoError(t, (&main.ScrapeCmd{Sources: []string{"results.html"}}).Run(deps))

		assert.Contains(t, stdout(), "found 2, added 0, duplicates 2")
	})
}

func TestDetectCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the site and listing count", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newScrapeDeps(t, []*carlot.Vehicle{{ID: "a", Title: "2021 Toyota Camry"}}, true)
		deps.Detector = &mock.SiteDetector{
			DetectFn: func(_ *carlot.Page) carlot.Site { return carlot.SiteCarGurus },
		}

		require.NoError(t, (&main.DetectCmd{Source: "results.html"}).Run(deps))

		out := stdout()
		assert.Contains(t, out, "https://www.cargurus.com/Cars/results.html")
		assert.Contains(t, out, "Site:     cargurus")
		assert.Contains(t, out, "Source:   CarGurus")
		assert.Contains(t, out, "Listings: 1 of 1 containers")
	})

	t.Run("says so when nothing is recognized", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newScrapeDeps(t, nil, true)
		deps.Detector = &mock.SiteDetector{
			DetectFn: func(_ *carlot.Page) carlot.Site { return carlot.SiteUnknown },
		}
		deps.Scraper = &mock.Scraper{
			ScrapeFn: func(_ context.Context, _ *carlot.Page) (*carlot.ScrapeResult, error) {
				t.Fatal("Scrape should not be called for unknown pages")
				return nil, nil
			},
		}

		require.NoError(t, (&main.DetectCmd{Source: "blog.html"}).Run(deps))

		assert.Contains(t, stdout(), "Site:     unknown")
		assert.Contains(t, stdout(), "No vehicle listings recognized")
	})

	t.Run("reports load errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newScrapeDeps(t, nil, true)

		err := (&main.DetectCmd{Source: "missing.html"}).Run(deps)

		assert.Equal(t, carlot.ENOTFOUND, carlot.ErrorCode(err))
		assert.Contains(t, stderr(), "not found")
	})
}
