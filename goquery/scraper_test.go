package goquery_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/carlot"
	"github.com/fwojciec/carlot/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Scraper implements carlot.Scraper at compile time.
var _ carlot.Scraper = (*goquery.Scraper)(nil)

func newTestScraper(opts ...goquery.Option) *goquery.Scraper {
	n := &carlot.Normalizer{
		Now:   func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string { return "id" },
	}
	return goquery.NewScraper(append([]goquery.Option{goquery.WithNormalizer(n)}, opts...)...)
}

const autoTraderHTML = `<html><body>
<div data-cmp="inventoryListing">
  <h3 class="listing-title">2021 Toyota Camry SE</h3>
  <span class="first-price">$24,500</span>
  <span class="listing-mileage">32,000 miles</span>
  <span class="listing-dealer-city">Austin, TX</span>
  <img src="/img/camry.jpg">
  <a href="/cars-for-sale/vehicle/111">details</a>
</div>
<div data-cmp="inventoryListing">
  <h3 class="listing-title">2019 Honda Civic LX</h3>
  <span class="first-price">$100</span>
  <a href="/cars-for-sale/vehicle/222">details</a>
</div>
<div data-cmp="inventoryListing">
  <span class="listing-dealer-city">Ad slot</span>
</div>
</body></html>`

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("scrapes AutoTrader listings", func(t *testing.T) {
		t.Parallel()

		page := newPage(t, "https://www.autotrader.com/cars-for-sale/all-cars", autoTraderHTML)

		result, err := newTestScraper().Scrape(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, carlot.SiteAutoTrader, result.Site)
		assert.Equal(t, carlot.SourceAutoTrader, result.Source)
		assert.Equal(t, 3, result.Containers)
		assert.Equal(t, 0, result.Failed)
		require.Len(t, result.Vehicles, 2, "container without title or price is not admitted")

		camry := result.Vehicles[0]
		assert.Equal(t, "2021 Toyota Camry SE", camry.Title)
		require.NotNil(t, camry.Year)
		assert.Equal(t, 2021, *camry.Year)
		assert.Equal(t, "Toyota", camry.Make)
		assert.Equal(t, "Camry", camry.Model)
		require.NotNil(t, camry.Price)
		assert.Equal(t, 24500, *camry.Price)
		require.NotNil(t, camry.Mileage)
		assert.Equal(t, 32000, *camry.Mileage)
		assert.Equal(t, "Austin, TX", camry.Location)
		assert.Equal(t, "https://www.autotrader.com/img/camry.jpg", camry.Image)
		assert.Equal(t, "https://www.autotrader.com/cars-for-sale/vehicle/111", camry.URL)
		assert.Equal(t, carlot.SourceAutoTrader, camry.Source)

		civic := result.Vehicles[1]
		assert.Equal(t, "Honda", civic.Make)
		assert.Nil(t, civic.Price, "price below the floor is dropped")
	})

	t.Run("scrapes Cars.com listings", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="vehicle-card">
  <h2 class="vehicle-card__title">2020 Ford F-150 XLT</h2>
  <span class="vehicle-card__price">$38,990</span>
  <div class="vehicle-card__mileage">18,400 mi.</div>
  <div class="dealer-name">Metro Ford</div>
  <a href="/vehicledetail/abc/">view</a>
</div>
</body></html>`
		page := newPage(t, "https://www.cars.com/shopping/results/", html)

		result, err := newTestScraper().Scrape(context.Background(), page)

		require.NoError(t, err)
		require.Len(t, result.Vehicles, 1)
		v := result.Vehicles[0]
		assert.Equal(t, carlot.SourceCars, v.Source)
		assert.Equal(t, "Ford", v.Make)
		assert.Equal(t, "F-150", v.Model)
		assert.Equal(t, 38990, *v.Price)
		assert.Equal(t, 18400, *v.Mileage)
		assert.Equal(t, "Metro Ford", v.Location)
		assert.Equal(t, "https://www.cars.com/vehicledetail/abc/", v.URL)
	})

	t.Run("scrapes Craigslist listings", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><ul>
<li class="cl-search-result">
  <a class="result-title" href="https://sfbay.craigslist.org/cto/d/2012-subaru-outback/7.html">2012 Subaru Outback wagon</a>
  <span class="result-price">$6,500</span>
  <span class="result-neighborhood">(oakland)</span>
  <span>odometer: 148,000 miles</span>
</li>
</ul></body></html>`
		page := newPage(t, "https://sfbay.craigslist.org/search/cta", html)

		result, err := newTestScraper().Scrape(context.Background(), page)

		require.NoError(t, err)
		require.Len(t, result.Vehicles, 1)
		v := result.Vehicles[0]
		assert.Equal(t, carlot.SourceCraigslist, v.Source)
		assert.Equal(t, "2012 Subaru Outback wagon", v.Title)
		assert.Equal(t, 6500, *v.Price)
		assert.Equal(t, 148000, *v.Mileage)
		assert.Equal(t, "(oakland)", v.Location)
		assert.Equal(t, "https://sfbay.craigslist.org/cto/d/2012-subaru-outback/7.html", v.URL)
	})

	t.Run("scrapes Facebook Marketplace listings", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div role="article">
  <a href="/marketplace/item/555/">
    <img src="https://scontent.example.com/555.jpg">
    <span class="x1lliihq">2016 Mazda CX-5 Touring</span>
    <span dir="auto">$12,000</span>
  </a>
</div>
</body></html>`
		page := newPage(t, "https://www.facebook.com/marketplace/category/vehicles", html)

		result, err := newTestScraper().Scrape(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, carlot.SiteFacebook, result.Site)
		require.Len(t, result.Vehicles, 1)
		v := result.Vehicles[0]
		assert.Equal(t, carlot.SourceFacebook, v.Source)
		assert.Equal(t, "2016 Mazda CX-5 Touring", v.Title)
		assert.Equal(t, 12000, *v.Price)
		assert.Equal(t, "Mazda", v.Make)
		assert.Equal(t, "https://www.facebook.com/marketplace/item/555/", v.URL)
		assert.Equal(t, "https://scontent.example.com/555.jpg", v.Image)
	})

	t.Run("takes the Facebook title from the first span in the tile", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div role="article">
  <a href="/marketplace/item/556/">
    <div><span>2014 Honda Fit Sport</span></div>
    <span class="x1lliihq">Listed 2 days ago</span>
    <span dir="auto">$8,900</span>
  </a>
</div>
</body></html>`
		page := newPage(t, "https://www.facebook.com/marketplace/category/vehicles", html)

		result, err := newTestScraper().Scrape(context.Background(), page)

		require.NoError(t, err)
		require.Len(t, result.Vehicles, 1)
		assert.Equal(t, "2014 Honda Fit Sport", result.Vehicles[0].Title)
		assert.Equal(t, 8900, *result.Vehicles[0].Price)
	})

	t.Run("generic pages require a title and a price or year", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav class="listing-nav"><h3>Browse our vehicle inventory</h3></nav>
<article>
  <h2 class="title">2018 Chevrolet Malibu LT</h2>
  <div class="price-tag">$14,995</div>
  <div class="location">Denver</div>
</article>
<footer><p>Financing available. Every car inspected.</p></footer>
</body></html>`
		page := newPage(t, "https://www.smalldealer.example.com/inventory", html)

		result, err := newTestScraper().Scrape(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, carlot.SiteGeneric, result.Site)
		assert.Equal(t, carlot.SourceOther, result.Source)
		require.Len(t, result.Vehicles, 1)
		v := result.Vehicles[0]
		assert.Equal(t, "2018 Chevrolet Malibu LT", v.Title)
		assert.Equal(t, "Chevrolet", v.Make)
		assert.Equal(t, 14995, *v.Price)
		assert.Equal(t, "Denver", v.Location)
		assert.Equal(t, carlot.SourceOther, v.Source)
	})

	t.Run("does not scrape unknown pages", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><h2>Honda with low mileage</h2><p>$9,000</p></article></body></html>`
		page := newPage(t, "https://blog.example.com/post", html)

		result, err := newTestScraper().Scrape(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, carlot.SiteUnknown, result.Site)
		assert.Zero(t, result.Containers)
		assert.Empty(t, result.Vehicles)
	})

	t.Run("skips containers that fail to extract", func(t *testing.T) {
		t.Parallel()

		calls := 0
		panicky := goquery.Strategy{
			Site:       carlot.SiteAutoTrader,
			Source:     carlot.SourceAutoTrader,
			Containers: `[data-cmp="inventoryListing"]`,
			Fields:     goquery.AutoTrader.Fields,
			Admit: func(raw *carlot.RawListing) bool {
				calls++
				if calls == 2 {
					panic("boom")
				}
				return carlot.AdmitTitleOrPrice(raw)
			},
		}
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		scraper := newTestScraper(
			goquery.WithRegistry(goquery.NewRegistry(panicky)),
			goquery.WithLogger(logger),
		)
		page := newPage(t, "https://www.autotrader.com/cars-for-sale/all-cars", autoTraderHTML)

		result, err := scraper.Scrape(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Containers)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Vehicles, 1)
		assert.Equal(t, "2021 Toyota Camry SE", result.Vehicles[0].Title)
		assert.Contains(t, logs.String(), "skipped listing container")
		assert.Contains(t, logs.String(), "container=1")
		assert.Contains(t, logs.String(), "site=autotrader")
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		page := newPage(t, "https://www.autotrader.com/cars-for-sale/all-cars", autoTraderHTML)

		_, err := newTestScraper().Scrape(ctx, page)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects nil page", func(t *testing.T) {
		t.Parallel()

		_, err := newTestScraper().Scrape(context.Background(), nil)

		assert.Equal(t, carlot.EINVALID, carlot.ErrorCode(err))
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("default registry covers eight sites and generic", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewDefaultRegistry()

		for _, site := range []carlot.Site{
			carlot.SiteAutoTrader, carlot.SiteCars, carlot.SiteCarGurus, carlot.SiteCarMax,
			carlot.SiteVroom, carlot.SiteCarvana, carlot.SiteFacebook, carlot.SiteCraigslist,
			carlot.SiteGeneric,
		} {
			s, ok := r.Get(site)
			assert.True(t, ok, "missing strategy for %s", site)
			assert.Equal(t, site, s.Site)
			assert.NotEmpty(t, s.Containers)
		}

		_, ok := r.Get(carlot.SiteUnknown)
		assert.False(t, ok)
	})

	t.Run("later strategies replace earlier ones", func(t *testing.T) {
		t.Parallel()

		custom := goquery.Cars
		custom.Containers = ".custom-card"

		r := goquery.NewRegistry(goquery.Cars, custom)

		s, ok := r.Get(carlot.SiteCars)
		require.True(t, ok)
		assert.Equal(t, ".custom-card", s.Containers)
	})
}
