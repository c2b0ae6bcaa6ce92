package carlot

import (
	"context"
	"net/url"
	"strings"
)

// Site identifies an automotive marketplace.
type Site string

// Recognized sites. SiteGeneric marks an unrecognized page that still looks
// like it carries vehicle content; SiteUnknown marks everything else.
const (
	SiteAutoTrader Site = "autotrader"
	SiteCars       Site = "cars"
	SiteCarGurus   Site = "cargurus"
	SiteCarMax     Site = "carmax"
	SiteVroom      Site = "vroom"
	SiteCarvana    Site = "carvana"
	SiteFacebook   Site = "facebook"
	SiteCraigslist Site = "craigslist"
	SiteGeneric    Site = "generic"
	SiteUnknown    Site = "unknown"
)

// Display names stored in Vehicle.Source.
const (
	SourceAutoTrader = "AutoTrader"
	SourceCars       = "Cars.com"
	SourceCarGurus   = "CarGurus"
	SourceCarMax     = "CarMax"
	SourceVroom      = "Vroom"
	SourceCarvana    = "Carvana"
	SourceFacebook   = "Facebook Marketplace"
	SourceCraigslist = "Craigslist"
	SourceOther      = "Other"
	SourceUnknown    = "Unknown"
)

// SiteDetector classifies a page as one of the known sites.
type SiteDetector interface {
	// Detect returns the site for the page, SiteGeneric for unrecognized
	// pages with enough vehicle content, or SiteUnknown.
	Detect(page *Page) Site
}

// ScrapeResult is the outcome of scraping one page.
type ScrapeResult struct {
	Site       Site
	Source     string
	Containers int // listing containers matched on the page
	Failed     int // containers skipped after an extraction failure
	Vehicles   []*Vehicle
}

// Scraper extracts normalized vehicles from a loaded page.
type Scraper interface {
	// Scrape detects the page's site and extracts its listings.
	// Pages detected as SiteUnknown yield an empty result.
	Scrape(ctx context.Context, page *Page) (*ScrapeResult, error)
}

// SourceForURL maps a URL to the display name of its marketplace.
// Returns SourceUnknown for an empty or unparsable URL and SourceOther
// for any other host.
func SourceForURL(rawURL string) string {
	if rawURL == "" {
		return SourceUnknown
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return SourceUnknown
	}
	host := strings.ToLower(u.Hostname())

	switch {
	case strings.Contains(host, "autotrader"):
		return SourceAutoTrader
	case strings.Contains(host, "cars.com"):
		return SourceCars
	case strings.Contains(host, "cargurus"):
		return SourceCarGurus
	case strings.Contains(host, "carmax"):
		return SourceCarMax
	case strings.Contains(host, "vroom"):
		return SourceVroom
	case strings.Contains(host, "carvana"):
		return SourceCarvana
	case strings.Contains(host, "facebook"):
		return SourceFacebook
	case strings.Contains(host, "craigslist"):
		return SourceCraigslist
	}
	return SourceOther
}
