package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/carlot"
	"github.com/fwojciec/carlot/collect"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := carlot.VehicleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Source != "" {
		filter.Source = &c.Source
	}
	if c.Make != "" {
		filter.Make = &c.Make
	}
	if c.Year != 0 {
		filter.Year = &c.Year
	}
	if c.Search != "" {
		filter.Query = &c.Search
	}

	vehicles, err := deps.Vehicles.FindVehicles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	if len(vehicles) == 0 {
		fmt.Fprintln(deps.Stdout, "No vehicles found. Use 'carlot scrape' to collect some.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tYEAR\tMILEAGE\tSOURCE")
	for _, v := range vehicles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID,
			collect.TruncateText(v.Title, 40),
			collect.FormatPrice(v.Price),
			collect.FormatYear(v.Year),
			collect.FormatMileage(v.Mileage),
			v.Source,
		)
	}
	return tw.Flush()
}
