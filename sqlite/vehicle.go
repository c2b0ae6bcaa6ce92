package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/carlot"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ carlot.VehicleService = (*VehicleService)(nil)

const vehicleColumns = `id, title, price, year, make, model, mileage, image, url, location,
	source, description, vin, transmission, fuel_type, condition, scraped_at`

// VehicleService implements carlot.VehicleService using SQLite.
type VehicleService struct {
	db *DB

	// Now returns the capture time for vehicles saved without one.
	Now func() time.Time
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(db *DB) *VehicleService {
	return &VehicleService{
		db:  db,
		Now: func() time.Time { return time.Now().UTC() },
	}
}

// FindVehicleByID retrieves a vehicle by ID.
func (s *VehicleService) FindVehicleByID(ctx context.Context, id string) (*carlot.Vehicle, error) {
	return findVehicleByID(ctx, s.db, id)
}

// FindVehicles retrieves vehicles matching the filter, newest first.
func (s *VehicleService) FindVehicles(ctx context.Context, filter carlot.VehicleFilter) ([]*carlot.Vehicle, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + vehicleColumns + " FROM vehicles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Make != nil {
		query.WriteString(" AND make = ? COLLATE NOCASE")
		args = append(args, *filter.Make)
	}
	if filter.Year != nil {
		query.WriteString(" AND year = ?")
		args = append(args, *filter.Year)
	}
	if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
		pattern := likePattern(strings.TrimSpace(*filter.Query))
		query.WriteString(` AND (title LIKE ? ESCAPE '\' OR make LIKE ? ESCAPE '\'` +
			` OR model LIKE ? ESCAPE '\' OR location LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query.WriteString(" ORDER BY scraped_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*carlot.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// SaveVehicle inserts v, or merges it into the stored vehicle with the same
// ID. A missing ID is generated and a zero ScrapedAt is set to now.
func (s *VehicleService) SaveVehicle(ctx context.Context, v *carlot.Vehicle) (*carlot.Vehicle, error) {
	if v == nil {
		return nil, carlot.Errorf(carlot.EINVALID, "vehicle required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	incoming := *v
	if incoming.ID == "" {
		incoming.ID = uuid.NewString()
	}

	existing, err := findVehicleByID(ctx, tx, incoming.ID)
	switch {
	case carlot.ErrorCode(err) == carlot.ENOTFOUND:
		s.defaults(&incoming)
		if err := insertVehicle(ctx, tx, &incoming); err != nil {
			return nil, err
		}
		existing = &incoming
	case err != nil:
		return nil, err
	default:
		merge(existing, &incoming)
		if err := updateVehicle(ctx, tx, existing); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return existing, nil
}

// AddVehicle inserts v unless a stored vehicle has the same ID, the same
// non-empty URL, or the same non-empty title and the same price. An added
// vehicle gets its generated ID and defaults written back to v.
func (s *VehicleService) AddVehicle(ctx context.Context, v *carlot.Vehicle) (bool, error) {
	if v == nil {
		return false, carlot.Errorf(carlot.EINVALID, "vehicle required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	fp := fingerprint(v.Title, v.Price)

	var id string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM vehicles
		WHERE id = ?
			OR (? != '' AND url = ?)
			OR (? != '' AND fingerprint = ? AND title = ? AND price IS ?)
		LIMIT 1
	`, v.ID, v.URL, v.URL, fp, fp, v.Title, intArg(v.Price)).Scan(&id)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	s.defaults(v)
	if err := insertVehicle(ctx, tx, v); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteVehicle permanently removes a vehicle.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM vehicles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return carlot.Errorf(carlot.ENOTFOUND, "vehicle not found")
	}

	return nil
}

// DeleteVehicles removes every vehicle.
func (s *VehicleService) DeleteVehicles(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM vehicles")
	return err
}

// TrimVehicles keeps the keep most recently scraped vehicles.
func (s *VehicleService) TrimVehicles(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, carlot.Errorf(carlot.EINVALID, "keep must not be negative")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM vehicles
		WHERE rowid NOT IN (
			SELECT rowid FROM vehicles ORDER BY scraped_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, err
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(removed), nil
}

// VehicleStats summarizes the collection.
func (s *VehicleService) VehicleStats(ctx context.Context) (*carlot.VehicleStats, error) {
	stats := &carlot.VehicleStats{BySource: make(map[string]int)}

	var oldest, newest sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), MIN(scraped_at), MAX(scraped_at) FROM vehicles",
	).Scan(&stats.Count, &oldest, &newest)
	if err != nil {
		return nil, err
	}

	if oldest.Valid {
		if stats.Oldest, err = parseTime(oldest.String, "oldest scraped_at"); err != nil {
			return nil, err
		}
	}
	if newest.Valid {
		if stats.Newest, err = parseTime(newest.String, "newest scraped_at"); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT source, COUNT(*) FROM vehicles GROUP BY source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		stats.BySource[source] = count
	}

	return stats, rows.Err()
}

// FindFacets returns the distinct years and makes in the collection.
func (s *VehicleService) FindFacets(ctx context.Context) (*carlot.Facets, error) {
	facets := &carlot.Facets{}

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT year FROM vehicles WHERE year IS NOT NULL ORDER BY year DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		facets.Years = append(facets.Years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	makeRows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT make FROM vehicles WHERE make != '' ORDER BY make ASC")
	if err != nil {
		return nil, err
	}
	defer makeRows.Close()

	for makeRows.Next() {
		var m string
		if err := makeRows.Scan(&m); err != nil {
			return nil, err
		}
		facets.Makes = append(facets.Makes, m)
	}

	return facets, makeRows.Err()
}

// defaults fills the fields every stored vehicle must have.
func (s *VehicleService) defaults(v *carlot.Vehicle) {
	if v.ScrapedAt.IsZero() {
		v.ScrapedAt = s.Now()
	}
	if v.Source == "" {
		v.Source = carlot.SourceUnknown
	}
}

// merge overwrites dst with the non-empty fields of src. ID and ScrapedAt
// are never changed.
func merge(dst, src *carlot.Vehicle) {
	mergeString(&dst.Title, src.Title)
	mergeInt(&dst.Price, src.Price)
	mergeInt(&dst.Year, src.Year)
	mergeString(&dst.Make, src.Make)
	mergeString(&dst.Model, src.Model)
	mergeInt(&dst.Mileage, src.Mileage)
	mergeString(&dst.Image, src.Image)
	mergeString(&dst.URL, src.URL)
	mergeString(&dst.Location, src.Location)
	mergeString(&dst.Source, src.Source)
	mergeString(&dst.Description, src.Description)
	mergeString(&dst.VIN, src.VIN)
	if src.Transmission != "" {
		dst.Transmission = src.Transmission
	}
	if src.FuelType != "" {
		dst.FuelType = src.FuelType
	}
	if src.Condition != "" {
		dst.Condition = src.Condition
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeInt(dst **int, src *int) {
	if src != nil {
		n := *src
		*dst = &n
	}
}

func findVehicleByID(ctx context.Context, q execer, id string) (*carlot.Vehicle, error) {
	row := q.QueryRowContext(ctx, "SELECT "+vehicleColumns+" FROM vehicles WHERE id = ?", id)

	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, carlot.Errorf(carlot.ENOTFOUND, "vehicle not found")
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func insertVehicle(ctx context.Context, q execer, v *carlot.Vehicle) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO vehicles (`+vehicleColumns+`, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.Title, intArg(v.Price), intArg(v.Year), v.Make, v.Model, intArg(v.Mileage), v.Image, v.URL, v.Location,
		v.Source, v.Description, v.VIN, string(v.Transmission), string(v.FuelType), string(v.Condition),
		formatTime(v.ScrapedAt), fingerprint(v.Title, v.Price))
	return err
}

func updateVehicle(ctx context.Context, q execer, v *carlot.Vehicle) error {
	_, err := q.ExecContext(ctx, `
		UPDATE vehicles
		SET title = ?, price = ?, year = ?, make = ?, model = ?, mileage = ?, image = ?, url = ?,
			location = ?, source = ?, description = ?, vin = ?, transmission = ?, fuel_type = ?,
			condition = ?, fingerprint = ?
		WHERE id = ?
	`, v.Title, intArg(v.Price), intArg(v.Year), v.Make, v.Model, intArg(v.Mileage), v.Image, v.URL,
		v.Location, v.Source, v.Description, v.VIN, string(v.Transmission), string(v.FuelType),
		string(v.Condition), fingerprint(v.Title, v.Price), v.ID)
	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(s scanner) (*carlot.Vehicle, error) {
	var v carlot.Vehicle
	var price, year, mileage sql.NullInt64
	var transmission, fuelType, condition, scrapedAt string

	if err := s.Scan(&v.ID, &v.Title, &price, &year, &v.Make, &v.Model, &mileage, &v.Image,
		&v.URL, &v.Location, &v.Source, &v.Description, &v.VIN, &transmission, &fuelType,
		&condition, &scrapedAt); err != nil {
		return nil, err
	}

	v.Price = nullInt(price)
	v.Year = nullInt(year)
	v.Mileage = nullInt(mileage)
	v.Transmission = carlot.Transmission(transmission)
	v.FuelType = carlot.FuelType(fuelType)
	v.Condition = carlot.Condition(condition)

	var err error
	if v.ScrapedAt, err = parseTime(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}

	return &v, nil
}
