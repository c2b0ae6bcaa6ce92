package main

import (
	"fmt"

	"github.com/fwojciec/carlot"
	"github.com/fwojciec/carlot/collect"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	progress := func(e collect.ProgressEvent) {
		switch e.Type {
		case collect.ProgressStarted:
			if e.Total > 1 {
				fmt.Fprintf(deps.Stderr, "Loading %d pages...\n", e.Total)
			}
		case collect.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %s\n", e.Completed, e.Total, e.Source, carlot.ErrorMessage(e.Error))
		}
	}

	results, err := deps.Collector.CollectSources(deps.Ctx, c.Sources, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if r.Site == carlot.SiteUnknown {
			fmt.Fprintf(deps.Stdout, "%s: no vehicle listings recognized\n", collect.TruncateURL(r.Input, 60))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s: %s, found %d, added %d, duplicates %d, failed %d\n",
			collect.TruncateURL(r.Input, 60), r.Source, r.Found, r.Added, r.Duplicates, r.Failed)
	}

	s := collect.Summarize(results)
	if len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\nTotal: %d pages, found %d, added %d, duplicates %d, failed %d",
			s.Pages, s.Found, s.Added, s.Duplicates, s.Failed)
		if s.Errors > 0 {
			fmt.Fprintf(deps.Stdout, " (%d pages failed to load)", s.Errors)
		}
		fmt.Fprintln(deps.Stdout)
	}

	if s.Pages == 0 && s.Errors > 0 {
		fmt.Fprintf(deps.Stderr, "error: no pages could be loaded\n")
		return carlot.Errorf(carlot.EINVALID, "no pages could be loaded")
	}

	return nil
}
