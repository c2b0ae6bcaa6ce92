package main

import (
	"fmt"

	"github.com/fwojciec/carlot"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	err := deps.Vehicles.DeleteVehicle(deps.Ctx, c.ID)
	if carlot.ErrorCode(err) == carlot.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: vehicle %q not found. Use 'carlot list' to see stored vehicles.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted vehicle %q\n", c.ID)
	return nil
}

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return carlot.Errorf(carlot.EINVALID, "use --force to confirm deletion")
	}

	stats, err := deps.Vehicles.VehicleStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	if err := deps.Vehicles.DeleteVehicles(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlot.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d vehicles\n", stats.Count)
	return nil
}
