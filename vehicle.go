package carlot

import (
	"context"
	"time"
)

// Transmission is a canonical transmission type.
type Transmission string

// Transmission values.
const (
	TransmissionManual    Transmission = "Manual"
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionCVT       Transmission = "CVT"
)

// FuelType is a canonical fuel type.
type FuelType string

// FuelType values.
const (
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
	FuelDiesel   FuelType = "Diesel"
	FuelGasoline FuelType = "Gasoline"
)

// Condition is a canonical listing condition.
type Condition string

// Condition values.
const (
	ConditionNew       Condition = "New"
	ConditionUsed      Condition = "Used"
	ConditionCertified Condition = "Certified Pre-Owned"
)

// Bounds for numeric vehicle fields. Values outside them are dropped.
const (
	MinPrice   = 500
	MaxPrice   = 500000
	MinYear    = 1900
	MinMileage = 0
	MaxMileage = 500000
)

// MaxYear returns the latest accepted model year (next calendar year).
func MaxYear() int {
	return time.Now().Year() + 1
}

// Vehicle is the canonical, persisted listing record.
// Empty strings and nil numbers mean the field could not be recovered.
type Vehicle struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Price        *int         `json:"price"`
	Year         *int         `json:"year"`
	Make         string       `json:"make"`
	Model        string       `json:"model"`
	Mileage      *int         `json:"mileage"`
	Image        string       `json:"image"`
	URL          string       `json:"url"`
	Location     string       `json:"location"`
	Source       string       `json:"source"`
	ScrapedAt    time.Time    `json:"scrapedAt"`
	Description  string       `json:"description"`
	VIN          string       `json:"vin"`
	Transmission Transmission `json:"transmission"`
	FuelType     FuelType     `json:"fuelType"`
	Condition    Condition    `json:"condition"`
}

// ValidationReport describes problems found in a vehicle. It is advisory:
// invalid vehicles are still stored.
type ValidationReport struct {
	Valid  bool
	Errors []string
}

// Validate checks that the vehicle is identifiable and that any numeric
// fields present fall within their bounds.
func (v *Vehicle) Validate() ValidationReport {
	var errs []string

	if v.Title == "" && v.Make == "" && v.Model == "" {
		errs = append(errs, "vehicle must have a title or make/model")
	}
	if v.Year != nil && (*v.Year < MinYear || *v.Year > MaxYear()) {
		errs = append(errs, "invalid year")
	}
	if v.Price != nil && (*v.Price < MinPrice || *v.Price > MaxPrice) {
		errs = append(errs, "invalid price range")
	}
	if v.Mileage != nil && (*v.Mileage < MinMileage || *v.Mileage > MaxMileage) {
		errs = append(errs, "invalid mileage")
	}

	return ValidationReport{Valid: len(errs) == 0, Errors: errs}
}

// RawListing holds the fields extracted from one listing container before
// normalization. Nothing in it is guaranteed to be present.
type RawListing struct {
	ID           string
	Title        string
	Price        *int
	Year         *int
	Make         string
	Model        string
	Mileage      *int
	Image        string
	URL          string
	Location     string
	Description  string
	VIN          string
	Transmission string
	FuelType     string
	Condition    string
	Source       string
	ScrapedAt    time.Time

	// Origin is the scheme://host of the page the listing came from.
	// Relative image and listing URLs are resolved against it.
	Origin string
}

// AdmitFunc decides whether an extracted listing carries enough signal to keep.
type AdmitFunc func(raw *RawListing) bool

// AdmitTitleOrPrice keeps listings with a title or a price.
func AdmitTitleOrPrice(raw *RawListing) bool {
	return raw.Title != "" || raw.Price != nil
}

// AdmitTitleWithPriceOrYear keeps listings with a title and either a price
// or a year. It filters out page furniture on unrecognized sites.
func AdmitTitleWithPriceOrYear(raw *RawListing) bool {
	return raw.Title != "" && (raw.Price != nil || raw.Year != nil)
}

// VehicleService represents a service for managing the vehicle collection.
type VehicleService interface {
	// FindVehicleByID retrieves a vehicle by ID.
	// Returns ENOTFOUND if vehicle does not exist.
	FindVehicleByID(ctx context.Context, id string) (*Vehicle, error)

	// FindVehicles retrieves vehicles matching the filter, newest first.
	FindVehicles(ctx context.Context, filter VehicleFilter) ([]*Vehicle, error)

	// SaveVehicle inserts the vehicle or merges it into the stored vehicle
	// with the same ID. Non-empty fields overwrite; ID and ScrapedAt are kept.
	SaveVehicle(ctx context.Context, v *Vehicle) (*Vehicle, error)

	// AddVehicle inserts the vehicle unless a stored vehicle shares its URL
	// or its title and price. Reports whether the vehicle was added.
	AddVehicle(ctx context.Context, v *Vehicle) (bool, error)

	// DeleteVehicle permanently removes a vehicle.
	// Returns ENOTFOUND if vehicle does not exist.
	DeleteVehicle(ctx context.Context, id string) error

	// DeleteVehicles removes every vehicle.
	DeleteVehicles(ctx context.Context) error

	// TrimVehicles keeps the keep most recently scraped vehicles and
	// returns how many were removed.
	TrimVehicles(ctx context.Context, keep int) (int, error)

	// VehicleStats summarizes the collection.
	VehicleStats(ctx context.Context) (*VehicleStats, error)

	// FindFacets returns the distinct years and makes in the collection.
	FindFacets(ctx context.Context) (*Facets, error)
}

// VehicleFilter represents a filter for FindVehicles.
type VehicleFilter struct {
	ID     *string `json:"id"`
	Source *string `json:"source"`
	Make   *string `json:"make"`
	Year   *int    `json:"year"`

	// Query matches title, make, model or location, case-insensitively.
	Query *string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// VehicleStats summarizes the stored collection.
type VehicleStats struct {
	Count    int
	Oldest   time.Time
	Newest   time.Time
	BySource map[string]int
}

// Facets lists the distinct values available for filtering.
type Facets struct {
	Years []int    // newest first
	Makes []string // alphabetical
}
