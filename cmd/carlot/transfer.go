package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/carlot"
	"github.com/fwojciec/carlot/collect"
	"github.com/fwojciec/carlot/fs"
)

// Run executes the export command. Without --output the vehicles are
// written to stdout.
func (c *ExportCmd) Run(deps *Dependencies) error {
	codec, err := deps.codec(c.Format, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	var filter carlot.VehicleFilter
	if c.Source != "" {
		filter.Source = &c.Source
	}

	if c.Output == "" || c.Output == "-" {
		if _, err := collect.Export(deps.Ctx, deps.Vehicles, codec, deps.Stdout, filter); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
			return err
		}
		return nil
	}

	f, err := fs.CreateAtomic(c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}
	defer f.Abort()

	n, err := collect.Export(deps.Ctx, deps.Vehicles, codec, f, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}
	if err := f.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d vehicles to %s\n", n, c.Output)
	return nil
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	codec, err := deps.codec(c.Format, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	f, err := os.Open(c.File)
	if os.IsNotExist(err) {
		fmt.Fprintf(deps.Stderr, "error: file %q not found\n", c.File)
		return carlot.Errorf(carlot.ENOTFOUND, "file %q not found", c.File)
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer f.Close()

	n, err := collect.Import(deps.Ctx, deps.Vehicles, codec, deps.Normalizer, f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d vehicles from %s\n", n, c.File)
	return nil
}
