package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/carlot"
)

// Run executes the trim command.
func (c *TrimCmd) Run(deps *Dependencies) error {
	removed, err := deps.Vehicles.TrimVehicles(deps.Ctx, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %d vehicles, keeping the newest %d\n", removed, c.Max)
	return nil
}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Vehicles.VehicleStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	if stats.Count == 0 {
		fmt.Fprintln(deps.Stdout, "No vehicles stored. Use 'carlot scrape' to collect some.")
		return nil
	}

	facets, err := deps.Vehicles.FindFacets(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	w := deps.Stdout
	fmt.Fprintf(w, "Vehicles: %d\n", stats.Count)
	fmt.Fprintf(w, "Oldest:   %s\n", stats.Oldest.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Newest:   %s\n", stats.Newest.UTC().Format(time.RFC3339))

	fmt.Fprintln(w, "By source:")
	for _, source := range sourcesByCount(stats.BySource) {
		fmt.Fprintf(w, "  %-22s %d\n", source, stats.BySource[source])
	}

	if len(facets.Years) > 0 {
		years := make([]string, len(facets.Years))
		for i, y := range facets.Years {
			years[i] = strconv.Itoa(y)
		}
		fmt.Fprintf(w, "Years:    %s\n", strings.Join(years, ", "))
	}
	if len(facets.Makes) > 0 {
		fmt.Fprintf(w, "Makes:    %s\n", strings.Join(facets.Makes, ", "))
	}
	return nil
}

// sourcesByCount orders sources by descending count, then by name.
func sourcesByCount(counts map[string]int) []string {
	sources := make([]string, 0, len(counts))
	for s := range counts {
		sources = append(sources, s)
	}
	slices.SortFunc(sources, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return sources
}
