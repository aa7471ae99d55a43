package migrate

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"fleet-admin-service/internal/model"
	"fleet-admin-service/internal/repository"
)

// Result totals one migration run.
type Result struct {
	Migrated int
	Skipped  int
	Failed   int
}

// Migrator copies documents from the legacy database into the current one.
// Existing documents are never overwritten; a run is safe to repeat.
type Migrator struct {
	legacyLocations repository.LocationStore
	legacyDrivers   repository.DriverStore
	legacyTrucks    repository.TruckStore

	locations repository.LocationStore
	drivers   repository.DriverStore
	trucks    repository.TruckStore

	log zerolog.Logger
}

func NewMigrator(
	legacyLocations repository.LocationStore,
	legacyDrivers repository.DriverStore,
	legacyTrucks repository.TruckStore,
	locations repository.LocationStore,
	drivers repository.DriverStore,
	trucks repository.TruckStore,
	log zerolog.Logger,
) *Migrator {
	return &Migrator{
		legacyLocations: legacyLocations,
		legacyDrivers:   legacyDrivers,
		legacyTrucks:    legacyTrucks,
		locations:       locations,
		drivers:         drivers,
		trucks:          trucks,
		log:             log,
	}
}

// Locations copies legacy location documents. A document is skipped when its
// id already exists or another location already holds the same airport and
// name. Legacy documents predate the airport and type fields, so missing
// values fall back to CDG and destination.
func (m *Migrator) Locations(ctx context.Context) (Result, error) {
	legacy, err := m.legacyLocations.List(ctx, repository.LocationListFilter{})
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, loc := range legacy {
		if loc.Airport == "" {
			loc.Airport = model.AirportCDG
		}
		if loc.Type == "" {
			loc.Type = model.LocationTypeDestination
		}
		if loc.LocationID == "" {
			loc.LocationID = loc.ID
		}
		loc.IsActive = true
		if loc.CreatedAt.IsZero() {
			loc.CreatedAt = time.Now().UTC()
		}

		if _, err := m.locations.GetByID(ctx, loc.ID); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, repository.ErrNoDocument) {
			m.log.Error().Err(err).Str("id", loc.ID).Msg("existence check failed")
			result.Failed++
			continue
		}

		existing, err := m.locations.FindByAirportAndName(ctx, loc.Airport, loc.Name)
		if err != nil {
			m.log.Error().Err(err).Str("id", loc.ID).Msg("name lookup failed")
			result.Failed++
			continue
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		if err := m.locations.Insert(ctx, &loc); err != nil {
			m.log.Error().Err(err).Str("id", loc.ID).Msg("insert failed")
			result.Failed++
			continue
		}
		result.Migrated++
	}

	m.log.Info().
		Int("migrated", result.Migrated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("location migration finished")
	return result, nil
}

// Drivers copies legacy driver documents, skipping ids that already exist.
func (m *Migrator) Drivers(ctx context.Context) (Result, error) {
	legacy, err := m.legacyDrivers.List(ctx)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, driver := range legacy {
		if !driver.CurrentStatus.Valid() {
			driver.CurrentStatus = model.DriverStatusOffline
		}
		if driver.CreatedAt.IsZero() {
			driver.CreatedAt = time.Now().UTC()
		}

		if _, err := m.drivers.GetByID(ctx, driver.ID); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, repository.ErrNoDocument) {
			m.log.Error().Err(err).Str("id", driver.ID).Msg("existence check failed")
			result.Failed++
			continue
		}

		if err := m.drivers.Insert(ctx, &driver); err != nil {
			m.log.Error().Err(err).Str("id", driver.ID).Msg("insert failed")
			result.Failed++
			continue
		}
		result.Migrated++
	}

	m.log.Info().
		Int("migrated", result.Migrated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("driver migration finished")
	return result, nil
}

// Trucks copies legacy truck documents, skipping ids that already exist.
func (m *Migrator) Trucks(ctx context.Context) (Result, error) {
	legacy, err := m.legacyTrucks.List(ctx)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, truck := range legacy {
		if !truck.Status.Valid() {
			truck.Status = model.TruckStatusAvailable
		}
		if truck.CreatedAt.IsZero() {
			truck.CreatedAt = time.Now().UTC()
		}

		if _, err := m.trucks.GetByID(ctx, truck.ID); err == nil {
			result.Skipped++
			continue
		} else if !errors.Is(err, repository.ErrNoDocument) {
			m.log.Error().Err(err).Str("id", truck.ID).Msg("existence check failed")
			result.Failed++
			continue
		}

		if err := m.trucks.Insert(ctx, &truck); err != nil {
			m.log.Error().Err(err).Str("id", truck.ID).Msg("insert failed")
			result.Failed++
			continue
		}
		result.Migrated++
	}

	m.log.Info().
		Int("migrated", result.Migrated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("truck migration finished")
	return result, nil
}

// All runs the three migrations in sequence and sums their totals.
func (m *Migrator) All(ctx context.Context) (Result, error) {
	var total Result
	for _, run := range []func(context.Context) (Result, error){m.Locations, m.Drivers, m.Trucks} {
		result, err := run(ctx)
		if err != nil {
			return total, err
		}
		total.Migrated += result.Migrated
		total.Skipped += result.Skipped
		total.Failed += result.Failed
	}
	return total, nil
}
