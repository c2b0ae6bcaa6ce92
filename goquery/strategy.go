package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carlot"
)

// Fields holds the comma-separated selector candidates for each field a
// strategy reads from a listing container. An empty Price or Mileage list
// scans the whole container; year, make and model always do.
type Fields struct {
	Title    string
	Price    string
	Mileage  string
	Location string
	Image    string
	Link     string

	// InDocumentOrder matches the Title and Location lists as one selector
	// group, so the first element in the document wins instead of the first
	// candidate.
	InDocumentOrder bool
}

// Strategy describes how listings are scraped from one site: which elements
// are listing containers, where each field lives inside a container, and
// which extracted listings are worth keeping.
type Strategy struct {
	Site carlot.Site

	// Source is stored on every vehicle. When empty the source is derived
	// from the page URL.
	Source string

	// Containers selects listing containers.
	Containers string

	Fields Fields

	// Admit filters extracted listings. Defaults to carlot.AdmitTitleOrPrice.
	Admit carlot.AdmitFunc
}

// extract reads a raw listing from one container.
func (s *Strategy) extract(container *goquery.Selection, page *carlot.Page, source string) *carlot.RawListing {
	return &carlot.RawListing{
		Title:    s.text(container, s.Fields.Title),
		Price:    ExtractPrice(container, s.Fields.Price),
		Year:     ExtractYear(container),
		Make:     ExtractMake(container),
		Model:    ExtractModel(container),
		Mileage:  ExtractMileage(container, s.Fields.Mileage),
		Image:    ExtractImage(container, s.Fields.Image, page.URL),
		URL:      ExtractURL(container, s.Fields.Link, page.URL),
		Location: s.text(container, s.Fields.Location),
		Source:   source,
		Origin:   page.Origin,
	}
}

func (s *Strategy) text(container *goquery.Selection, selectors string) string {
	if s.Fields.InDocumentOrder {
		return ExtractTextInOrder(container, selectors)
	}
	return ExtractText(container, selectors)
}

func (s *Strategy) admit(raw *carlot.RawListing) bool {
	if s.Admit == nil {
		return carlot.AdmitTitleOrPrice(raw)
	}
	return s.Admit(raw)
}
