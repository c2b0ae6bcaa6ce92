package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/carlot"
	"github.com/fwojciec/carlot/collect"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	v, err := deps.Vehicles.FindVehicleByID(deps.Ctx, c.ID)
	if carlot.ErrorCode(err) == carlot.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: vehicle %q not found. Use 'carlot list' to see stored vehicles.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	w := deps.Stdout
	fmt.Fprintf(w, "ID:           %s\n", v.ID)
	fmt.Fprintf(w, "Title:        %s\n", v.Title)
	fmt.Fprintf(w, "Price:        %s\n", collect.FormatPrice(v.Price))
	fmt.Fprintf(w, "Year:         %s\n", collect.FormatYear(v.Year))
	fmt.Fprintf(w, "Make:         %s\n", orDash(v.Make))
	fmt.Fprintf(w, "Model:        %s\n", orDash(v.Model))
	fmt.Fprintf(w, "Mileage:      %s\n", collect.FormatMileage(v.Mileage))
	fmt.Fprintf(w, "Location:     %s\n", orDash(v.Location))
	fmt.Fprintf(w, "Source:       %s\n", v.Source)
	fmt.Fprintf(w, "URL:          %s\n", orDash(v.URL))
	fmt.Fprintf(w, "Image:        %s\n", orDash(v.Image))
	if v.VIN != "" {
		fmt.Fprintf(w, "VIN:          %s\n", v.VIN)
	}
	if v.Transmission != "" {
		fmt.Fprintf(w, "Transmission: %s\n", v.Transmission)
	}
	if v.FuelType != "" {
		fmt.Fprintf(w, "Fuel type:    %s\n", v.FuelType)
	}
	if v.Condition != "" {
		fmt.Fprintf(w, "Condition:    %s\n", v.Condition)
	}
	if v.Description != "" {
		fmt.Fprintf(w, "Description:  %s\n", collect.TruncateText(v.Description, 200))
	}
	fmt.Fprintf(w, "Scraped at:   %s\n", v.ScrapedAt.UTC().Format(time.RFC3339))

	report := v.Validate()
	if report.Valid {
		fmt.Fprintln(w, "Validation:   ok")
		return nil
	}
	fmt.Fprintln(w, "Validation:")
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  - %s\n", e)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
