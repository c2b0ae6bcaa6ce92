package main

import (
	"fmt"

	"github.com/fwojciec/carlot"
)

// Run executes the detect command. Nothing is stored.
func (c *DetectCmd) Run(deps *Dependencies) error {
	page, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	site := deps.Detector.Detect(page)
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", page.URL)
	fmt.Fprintf(deps.Stdout, "Site:     %s\n", site)
	if site == carlot.SiteUnknown {
		fmt.Fprintln(deps.Stdout, "No vehicle listings recognized on this page.")
		return nil
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Source:   %s\n", result.Source)
	fmt.Fprintf(deps.Stdout, "Listings: %d of %d containers\n", len(result.Vehicles), result.Containers)
	return nil
}
