package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carlot"
)

var _ carlot.SiteDetector = (*Detector)(nil)

// minKeywordHits is how many distinct vehicle keywords an unrecognized page
// needs before it is treated as a generic listing page.
const minKeywordHits = 3

// Detector identifies automotive marketplaces from a page's hostname and,
// for unrecognized hosts, from the vocabulary of the page body.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the site for the page. The page body is only parsed when
// no hostname rule matches.
func (d *Detector) Detect(page *carlot.Page) carlot.Site {
	if site, ok := detectFromHost(page); ok {
		return site
	}

	doc, err := parseDocument(page.HTML)
	if err != nil {
		return carlot.SiteUnknown
	}
	return detectFromContent(doc)
}

// detect is Detect for callers that already hold the parsed document.
func (d *Detector) detect(page *carlot.Page, doc *goquery.Document) carlot.Site {
	if site, ok := detectFromHost(page); ok {
		return site
	}
	return detectFromContent(doc)
}

// detectFromHost applies the ordered hostname rules. First match wins.
func detectFromHost(page *carlot.Page) (carlot.Site, bool) {
	host := strings.ToLower(page.Hostname)
	url := strings.ToLower(page.URL)

	switch {
	case strings.Contains(host, "autotrader"):
		return carlot.SiteAutoTrader, true
	case strings.Contains(host, "cars.com"):
		return carlot.SiteCars, true
	case strings.Contains(host, "cargurus"):
		return carlot.SiteCarGurus, true
	case strings.Contains(host, "carmax"):
		return carlot.SiteCarMax, true
	case strings.Contains(host, "vroom"):
		return carlot.SiteVroom, true
	case strings.Contains(host, "carvana"):
		return carlot.SiteCarvana, true
	case strings.Contains(host, "facebook") &&
		(strings.Contains(url, "marketplace") || strings.Contains(url, "vehicles")):
		return carlot.SiteFacebook, true
	case strings.Contains(host, "craigslist"):
		return carlot.SiteCraigslist, true
	}
	return "", false
}

// detectFromContent counts distinct vehicle keywords in the body text.
func detectFromContent(doc *goquery.Document) carlot.Site {
	if countKeywords(doc.Find("body").Text()) >= minKeywordHits {
		return carlot.SiteGeneric
	}
	return carlot.SiteUnknown
}

func countKeywords(text string) int {
	text = strings.ToLower(text)

	hits := 0
	for _, keyword := range carlot.VehicleKeywords {
		if strings.Contains(text, keyword) {
			hits++
		}
	}
	return hits
}
