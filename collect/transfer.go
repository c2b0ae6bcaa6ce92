package collect

import (
	"context"
	"io"

	"github.com/fwojciec/carlot"
)

// Import decodes vehicles from r and saves each one. Records pass through
// the normalizer first, so imported data obeys the same rules as scraped
// data; existing ids are kept and missing ones generated. A decode error
// aborts the import before anything is saved. Returns the number saved.
func Import(ctx context.Context, svc carlot.VehicleService, codec carlot.Codec, n *carlot.Normalizer, r io.Reader) (int, error) {
	vehicles, err := codec.Decode(r)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, v := range vehicles {
		if _, err := svc.SaveVehicle(ctx, n.Normalize(carlot.RawFromVehicle(v))); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// Export encodes the vehicles matching filter to w, newest first.
// Returns the number written.
func Export(ctx context.Context, svc carlot.VehicleService, codec carlot.Codec, w io.Writer, filter carlot.VehicleFilter) (int, error) {
	vehicles, err := svc.FindVehicles(ctx, filter)
	if err != nil {
		return 0, err
	}
	if err := codec.Encode(w, vehicles); err != nil {
		return 0, err
	}
	return len(vehicles), nil
}
