package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/carlot"
)

// Ensure LoggingVehicleService implements carlot.VehicleService.
var _ carlot.VehicleService = (*LoggingVehicleService)(nil)

// LoggingVehicleService wraps a VehicleService with debug logging. Reads
// log at debug level; writes log at info level.
type LoggingVehicleService struct {
	next   carlot.VehicleService
	logger *slog.Logger
}

// NewLoggingVehicleService creates a new LoggingVehicleService.
func NewLoggingVehicleService(next carlot.VehicleService, logger *slog.Logger) *LoggingVehicleService {
	return &LoggingVehicleService{next: next, logger: logger}
}

func (s *LoggingVehicleService) FindVehicleByID(ctx context.Context, id string) (v *carlot.Vehicle, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("vehicle store",
			"op", "FindVehicleByID",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindVehicleByID(ctx, id)
}

func (s *LoggingVehicleService) FindVehicles(ctx context.Context, filter carlot.VehicleFilter) (vehicles []*carlot.Vehicle, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("vehicle store",
			"op", "FindVehicles",
			"count", len(vehicles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindVehicles(ctx, filter)
}

func (s *LoggingVehicleService) SaveVehicle(ctx context.Context, v *carlot.Vehicle) (saved *carlot.Vehicle, err error) {
	defer func(begin time.Time) {
		id := ""
		if saved != nil {
			id = saved.ID
		}
		s.logger.Info("vehicle store",
			"op", "SaveVehicle",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveVehicle(ctx, v)
}

func (s *LoggingVehicleService) AddVehicle(ctx context.Context, v *carlot.Vehicle) (added bool, err error) {
	defer func(begin time.Time) {
		var id, url string
		if v != nil {
			id, url = v.ID, v.URL
		}
		s.logger.Info("vehicle store",
			"op", "AddVehicle",
			"id", id,
			"url", url,
			"added", added,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AddVehicle(ctx, v)
}

func (s *LoggingVehicleService) DeleteVehicle(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("vehicle store",
			"op", "DeleteVehicle",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteVehicle(ctx, id)
}

func (s *LoggingVehicleService) DeleteVehicles(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("vehicle store",
			"op", "DeleteVehicles",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteVehicles(ctx)
}

func (s *LoggingVehicleService) TrimVehicles(ctx context.Context, keep int) (removed int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("vehicle store",
			"op", "TrimVehicles",
			"keep", keep,
			"count", removed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.TrimVehicles(ctx, keep)
}

func (s *LoggingVehicleService) VehicleStats(ctx context.Context) (stats *carlot.VehicleStats, err error) {
	defer func(begin time.Time) {
		count := 0
		if stats != nil {
			count = stats.Count
		}
		s.logger.Debug("vehicle store",
			"op", "VehicleStats",
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.VehicleStats(ctx)
}

func (s *LoggingVehicleService) FindFacets(ctx context.Context) (facets *carlot.Facets, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("vehicle store",
			"op", "FindFacets",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindFacets(ctx)
}
