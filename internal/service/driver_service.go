package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-admin-service/internal/model"
	"fleet-admin-service/internal/repository"
)

type DriverService struct {
	drivers repository.DriverStore
	log     zerolog.Logger
}

func NewDriverService(drivers repository.DriverStore, log zerolog.Logger) *DriverService {
	return &DriverService{drivers: drivers, log: log}
}

type CreateDriverInput struct {
	DriverID         string
	FullName         string
	PhoneNumber      string
	Email            string
	LicenseNumber    string
	AssignedTruckID  *string
	CurrentStatus    model.DriverStatus
	LastGpsUpdate    *time.Time
	CurrentLatitude  *float64
	CurrentLongitude *float64
	SpeedKmh         *float64
	BatteryLevel     *float64
	LastAssignmentID *string
	Notes            *string
}

func (s *DriverService) List(ctx context.Context) ([]model.Driver, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("count", len(drivers)).Msg("drivers listed")
	return drivers, nil
}

func (s *DriverService) Get(ctx context.Context, driverID string) (*model.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, fmt.Errorf("%w: driver %s", ErrNotFound, driverID)
		}
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Create(ctx context.Context, input CreateDriverInput) (*model.Driver, error) {
	if strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.PhoneNumber) == "" ||
		strings.TrimSpace(input.LicenseNumber) == "" {
		return nil, fmt.Errorf("%w: fullName, phoneNumber and licenseNumber are required", ErrInvalidInput)
	}
	if !input.CurrentStatus.Valid() {
		return nil, fmt.Errorf("%w: invalid driver status %q", ErrInvalidInput, input.CurrentStatus)
	}

	driverID := input.DriverID
	if driverID == "" {
		driverID = uuid.NewString()
	}

	now := time.Now().UTC()
	driver := &model.Driver{
		ID:               driverID,
		DriverID:         driverID,
		FullName:         input.FullName,
		PhoneNumber:      input.PhoneNumber,
		Email:            input.Email,
		LicenseNumber:    input.LicenseNumber,
		AssignedTruckID:  input.AssignedTruckID,
		CurrentStatus:    input.CurrentStatus,
		LastGpsUpdate:    input.LastGpsUpdate,
		CurrentLatitude:  input.CurrentLatitude,
		CurrentLongitude: input.CurrentLongitude,
		SpeedKmh:         input.SpeedKmh,
		BatteryLevel:     input.BatteryLevel,
		LastAssignmentID: input.LastAssignmentID,
		Notes:            input.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.drivers.Insert(ctx, driver); err != nil {
		return nil, err
	}

	s.log.Info().Str("driver_id", driverID).Msg("driver created")
	return driver, nil
}

// Update merges the patch onto the stored driver. An unknown id does not
// fail: a minimal placeholder is synthesized and upserted so telemetry-only
// updates from field devices land even before the driver is registered.
func (s *DriverService) Update(ctx context.Context, driverID string, patch model.DriverPatch) (*model.Driver, error) {
	existing, err := s.drivers.GetByID(ctx, driverID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoDocument) {
			return nil, err
		}
		now := time.Now().UTC()
		existing = &model.Driver{
			ID:            driverID,
			DriverID:      driverID,
			CurrentStatus: model.DriverStatusActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		s.log.Info().Str("driver_id", driverID).Msg("driver missing on update, creating placeholder")
	}

	if patch.FullName != nil {
		existing.FullName = *patch.FullName
	}
	if patch.PhoneNumber != nil {
		existing.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Email != nil {
		existing.Email = *patch.Email
	}
	if patch.LicenseNumber != nil {
		existing.LicenseNumber = *patch.LicenseNumber
	}
	if patch.AssignedTruckID != nil {
		existing.AssignedTruckID = patch.AssignedTruckID
	}
	if patch.CurrentStatus != nil {
		if !patch.CurrentStatus.Valid() {
			return nil, fmt.Errorf("%w: invalid driver status %q", ErrInvalidInput, *patch.CurrentStatus)
		}
		existing.CurrentStatus = *patch.CurrentStatus
	}
	if patch.LastGpsUpdate != nil {
		existing.LastGpsUpdate = patch.LastGpsUpdate
	}
	if patch.CurrentLatitude != nil {
		existing.CurrentLatitude = patch.CurrentLatitude
	}
	if patch.CurrentLongitude != nil {
		existing.CurrentLongitude = patch.CurrentLongitude
	}
	if patch.SpeedKmh != nil {
		existing.SpeedKmh = patch.SpeedKmh
	}
	if patch.BatteryLevel != nil {
		existing.BatteryLevel = patch.BatteryLevel
	}
	if patch.LastAssignmentID != nil {
		existing.LastAssignmentID = patch.LastAssignmentID
	}
	if patch.Notes != nil {
		existing.Notes = patch.Notes
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := s.drivers.Replace(ctx, existing); err != nil {
		return nil, err
	}

	s.log.Info().Str("driver_id", driverID).Msg("driver updated")
	return existing, nil
}

func (s *DriverService) Delete(ctx context.Context, driverID string) error {
	if err := s.drivers.Delete(ctx, driverID); err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return fmt.Errorf("%w: driver %s", ErrNotFound, driverID)
		}
		return err
	}
	s.log.Info().Str("driver_id", driverID).Msg("driver deleted")
	return nil
}

// Summary builds the denormalized driver view for truck enrichment. Any
// lookup failure degrades to nil so a broken reference never fails the
// caller's read.
func (s *DriverService) Summary(ctx context.Context, driverID *string) *model.DriverSummary {
	if driverID == nil || *driverID == "" {
		return nil
	}
	driver, err := s.drivers.GetByID(ctx, *driverID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoDocument) {
			s.log.Warn().Err(err).Str("driver_id", *driverID).Msg("unable to resolve driver summary")
		}
		return nil
	}
	return &model.DriverSummary{
		DriverID:      driver.DriverID,
		FullName:      driver.FullName,
		PhoneNumber:   driver.PhoneNumber,
		Email:         driver.Email,
		CurrentStatus: driver.CurrentStatus,
	}
}
