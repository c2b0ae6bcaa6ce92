package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carlot"
)

var (
	priceRe   = regexp.MustCompile(`\$\d[\d,]*`)
	mileageRe = regexp.MustCompile(`(?i)([\d,]+)\s*(miles?|mi)`)
	yearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	yearWord  = regexp.MustCompile(`^\d{4}$`)
)

// imageAttrs are read in order; lazy-loading pages keep the real source in
// a data attribute.
var imageAttrs = []string{"src", "data-src", "data-lazy"}

// splitSelectors splits a comma-separated candidate list. Candidates are
// tried in the order given.
func splitSelectors(list string) []string {
	var selectors []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// candidates returns the elements to scan for each selector. An empty list
// means the container itself.
func candidates(s *goquery.Selection, list string) []*goquery.Selection {
	selectors := splitSelectors(list)
	if len(selectors) == 0 {
		return []*goquery.Selection{s}
	}

	out := make([]*goquery.Selection, 0, len(selectors))
	for _, selector := range selectors {
		out = append(out, s.Find(selector))
	}
	return out
}

// ExtractText returns the trimmed text of the first element matching a
// candidate selector whose text is non-empty.
func ExtractText(s *goquery.Selection, selectors string) string {
	for _, selector := range splitSelectors(selectors) {
		if text := strings.TrimSpace(s.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// ExtractTextInOrder returns the trimmed text of the first element, in
// document order, that matches any selector of the group and has text.
func ExtractTextInOrder(s *goquery.Selection, group string) string {
	if strings.TrimSpace(group) == "" {
		return ""
	}
	var text string
	s.Find(group).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text = strings.TrimSpace(el.Text())
		return text == ""
	})
	return text
}

// ExtractPrice returns the first dollar amount found in the elements
// matching the candidate selectors. No range check is applied.
func ExtractPrice(s *goquery.Selection, selectors string) *int {
	for _, matched := range candidates(s, selectors) {
		var price *int
		matched.EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if m := priceRe.FindString(el.Text()); m != "" {
				price = atoi(m)
				return false
			}
			return true
		})
		if price != nil {
			return price
		}
	}
	return nil
}

// ExtractMileage returns the first "<digits> miles" or "<digits> mi" figure
// found in the elements matching the candidate selectors.
func ExtractMileage(s *goquery.Selection, selectors string) *int {
	for _, matched := range candidates(s, selectors) {
		var mileage *int
		matched.EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if m := mileageRe.FindStringSubmatch(el.Text()); m != nil {
				mileage = atoi(m[1])
				return false
			}
			return true
		})
		if mileage != nil {
			return mileage
		}
	}
	return nil
}

// ExtractYear returns the first 19xx or 20xx token in the container text.
// No range check is applied.
func ExtractYear(s *goquery.Selection) *int {
	m := yearRe.FindString(s.Text())
	if m == "" {
		return nil
	}
	return atoi(m)
}

// ExtractMake returns the first entry of carlot.ListingMakes that appears in
// the container text, case-insensitively. Vocabulary order wins over the
// order of appearance on the page.
func ExtractMake(s *goquery.Selection) string {
	text := strings.ToLower(s.Text())
	for _, m := range carlot.ListingMakes {
		if strings.Contains(text, strings.ToLower(m)) {
			return m
		}
	}
	return ""
}

// ExtractModel returns the word two positions after the first four-digit
// token of the container text, assuming "Year Make Model" order.
func ExtractModel(s *goquery.Selection) string {
	words := strings.Fields(s.Text())
	for i := 0; i < len(words)-1; i++ {
		if yearWord.MatchString(words[i]) {
			if i+2 < len(words) {
				return words[i+2]
			}
			return ""
		}
	}
	return ""
}

// ExtractImage returns the source of the first image matching a candidate
// selector, resolved against pageURL.
func ExtractImage(s *goquery.Selection, selectors, pageURL string) string {
	for _, selector := range splitSelectors(selectors) {
		img := s.Find(selector).First()
		if img.Length() == 0 {
			continue
		}
		for _, attr := range imageAttrs {
			if src, ok := img.Attr(attr); ok && strings.TrimSpace(src) != "" {
				return resolve(pageURL, src)
			}
		}
	}
	return ""
}

// ExtractURL returns the href of the first link matching a candidate
// selector, resolved against pageURL. Falls back to pageURL itself.
func ExtractURL(s *goquery.Selection, selectors, pageURL string) string {
	for _, selector := range splitSelectors(selectors) {
		link := s.Find(selector).First()
		if href, ok := link.Attr("href"); ok && strings.TrimSpace(href) != "" {
			return resolve(pageURL, href)
		}
	}
	return pageURL
}

// resolve resolves href against base. Unparsable input is returned as is
// and left for the normalizer to reject.
func resolve(base, href string) string {
	href = strings.TrimSpace(href)
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// atoi parses the digits of s, ignoring separators.
func atoi(s string) *int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return nil
	}
	return &n
}
