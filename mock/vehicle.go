package mock

import (
	"context"

	"github.com/fwojciec/carlot"
)

var _ carlot.VehicleService = (*VehicleService)(nil)

// VehicleService is a mock implementation of carlot.VehicleService.
type VehicleService struct {
	FindVehicleByIDFn func(ctx context.Context, id string) (*carlot.Vehicle, error)
	FindVehiclesFn    func(ctx context.Context, filter carlot.VehicleFilter) ([]*carlot.Vehicle, error)
	SaveVehicleFn     func(ctx context.Context, v *carlot.Vehicle) (*carlot.Vehicle, error)
	AddVehicleFn      func(ctx context.Context, v *carlot.Vehicle) (bool, error)
	DeleteVehicleFn   func(ctx context.Context, id string) error
	DeleteVehiclesFn  func(ctx context.Context) error
	TrimVehiclesFn    func(ctx context.Context, keep int) (int, error)
	VehicleStatsFn    func(ctx context.Context) (*carlot.VehicleStats, error)
	FindFacetsFn      func(ctx context.Context) (*carlot.Facets, error)
}

func (s *VehicleService) FindVehicleByID(ctx context.Context, id string) (*carlot.Vehicle, error) {
	return s.FindVehicleByIDFn(ctx, id)
}

func (s *VehicleService) FindVehicles(ctx context.Context, filter carlot.VehicleFilter) ([]*carlot.Vehicle, error) {
	return s.FindVehiclesFn(ctx, filter)
}

func (s *VehicleService) SaveVehicle(ctx context.Context, v *carlot.Vehicle) (*carlot.Vehicle, error) {
	return s.SaveVehicleFn(ctx, v)
}

func (s *VehicleService) AddVehicle(ctx context.Context, v *carlot.Vehicle) (bool, error) {
	return s.AddVehicleFn(ctx, v)
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	return s.DeleteVehicleFn(ctx, id)
}

func (s *VehicleService) DeleteVehicles(ctx context.Context) error {
	return s.DeleteVehiclesFn(ctx)
}

func (s *VehicleService) TrimVehicles(ctx context.Context, keep int) (int, error) {
	return s.TrimVehiclesFn(ctx, keep)
}

func (s *VehicleService) VehicleStats(ctx context.Context) (*carlot.VehicleStats, error) {
	return s.VehicleStatsFn(ctx)
}

func (s *VehicleService) FindFacets(ctx context.Context) (*carlot.Facets, error) {
	return s.FindFacetsFn(ctx)
}
