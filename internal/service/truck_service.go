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
	"fleet-admin-service/internal/utils"
)

type TruckService struct {
	trucks  repository.TruckStore
	drivers *DriverService
	log     zerolog.Logger
}

func NewTruckService(trucks repository.TruckStore, drivers *DriverService, log zerolog.Logger) *TruckService {
	return &TruckService{trucks: trucks, drivers: drivers, log: log}
}

// ExpandedTruck is a truck with its assigned driver resolved at read time.
// Driver stays null when the reference is absent or broken.
type ExpandedTruck struct {
	model.Truck
	Driver *model.DriverSummary `json:"driver"`
}

type CreateTruckInput struct {
	TruckID             string
	PlateNumber         string
	Type                string
	Model               *string
	Capacity            *string
	Status              model.TruckStatus
	AssignedDriverID    *string
	CurrentAssignmentID *string
	CurrentLatitude     *float64
	CurrentLongitude    *float64
	OdometerKm          *float64
	FuelLevelPercent    *float64
	LastMaintenanceDate *time.Time
	NextMaintenanceDate *time.Time
	Notes               *string
}

func (s *TruckService) List(ctx context.Context) ([]model.Truck, error) {
	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("count", len(trucks)).Msg("trucks listed")
	return trucks, nil
}

func (s *TruckService) ListExpanded(ctx context.Context) ([]ExpandedTruck, error) {
	trucks, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	expanded := make([]ExpandedTruck, len(trucks))
	for i, truck := range trucks {
		expanded[i] = ExpandedTruck{Truck: truck, Driver: s.drivers.Summary(ctx, truck.AssignedDriverID)}
	}
	return expanded, nil
}

func (s *TruckService) Get(ctx context.Context, truckID string) (*model.Truck, error) {
	truck, err := s.trucks.GetByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, fmt.Errorf("%w: truck %s", ErrNotFound, truckID)
		}
		return nil, err
	}
	return truck, nil
}

func (s *TruckService) GetExpanded(ctx context.Context, truckID string) (*ExpandedTruck, error) {
	truck, err := s.Get(ctx, truckID)
	if err != nil {
		return nil, err
	}
	return &ExpandedTruck{Truck: *truck, Driver: s.drivers.Summary(ctx, truck.AssignedDriverID)}, nil
}

func (s *TruckService) Create(ctx context.Context, input CreateTruckInput) (*ExpandedTruck, error) {
	plate := utils.NormalizePlate(input.PlateNumber)
	if plate == "" || strings.TrimSpace(input.Type) == "" {
		return nil, fmt.Errorf("%w: plateNumber and type are required", ErrInvalidInput)
	}

	status := input.Status
	if status == "" {
		status = model.TruckStatusAvailable
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid truck status %q", ErrInvalidInput, status)
	}

	truckID := input.TruckID
	if truckID == "" {
		truckID = uuid.NewString()
	}

	now := time.Now().UTC()
	truck := &model.Truck{
		ID:                  truckID,
		TruckID:             truckID,
		PlateNumber:         plate,
		Type:                input.Type,
		Model:               input.Model,
		Capacity:            input.Capacity,
		Status:              status,
		AssignedDriverID:    input.AssignedDriverID,
		CurrentAssignmentID: input.CurrentAssignmentID,
		CurrentLatitude:     input.CurrentLatitude,
		CurrentLongitude:    input.CurrentLongitude,
		OdometerKm:          input.OdometerKm,
		FuelLevelPercent:    input.FuelLevelPercent,
		LastMaintenanceDate: input.LastMaintenanceDate,
		NextMaintenanceDate: input.NextMaintenanceDate,
		Notes:               input.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.trucks.Insert(ctx, truck); err != nil {
		return nil, err
	}

	s.log.Info().Str("truck_id", truckID).Msg("truck created")
	return &ExpandedTruck{Truck: *truck, Driver: s.drivers.Summary(ctx, truck.AssignedDriverID)}, nil
}

func (s *TruckService) Update(ctx context.Context, truckID string, patch model.TruckPatch) (*ExpandedTruck, error) {
	existing, err := s.trucks.GetByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, fmt.Errorf("%w: truck %s", ErrNotFound, truckID)
		}
		return nil, err
	}

	if patch.PlateNumber != nil {
		plate := utils.NormalizePlate(*patch.PlateNumber)
		if plate == "" {
			return nil, fmt.Errorf("%w: plateNumber must not be empty", ErrInvalidInput)
		}
		existing.PlateNumber = plate
	}
	if patch.Type != nil {
		existing.Type = *patch.Type
	}
	if patch.Model != nil {
		existing.Model = patch.Model
	}
	if patch.Capacity != nil {
		existing.Capacity = patch.Capacity
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid truck status %q", ErrInvalidInput, *patch.Status)
		}
		existing.Status = *patch.Status
	}
	if patch.AssignedDriverID != nil {
		existing.AssignedDriverID = patch.AssignedDriverID
	}
	if patch.CurrentAssignmentID != nil {
		existing.CurrentAssignmentID = patch.CurrentAssignmentID
	}
	if patch.CurrentLatitude != nil {
		existing.CurrentLatitude = patch.CurrentLatitude
	}
	if patch.CurrentLongitude != nil {
		existing.CurrentLongitude = patch.CurrentLongitude
	}
	if patch.OdometerKm != nil {
		existing.OdometerKm = patch.OdometerKm
	}
	if patch.FuelLevelPercent != nil {
		existing.FuelLevelPercent = patch.FuelLevelPercent
	}
	if patch.LastMaintenanceDate != nil {
		existing.LastMaintenanceDate = patch.LastMaintenanceDate
	}
	if patch.NextMaintenanceDate != nil {
		existing.NextMaintenanceDate = patch.NextMaintenanceDate
	}
	if patch.Notes != nil {
		existing.Notes = patch.Notes
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := s.trucks.Replace(ctx, existing); err != nil {
		return nil, err
	}

	s.log.Info().Str("truck_id", truckID).Msg("truck updated")
	return &ExpandedTruck{Truck: *existing, Driver: s.drivers.Summary(ctx, existing.AssignedDriverID)}, nil
}

func (s *TruckService) Delete(ctx context.Context, truckID string) error {
	if err := s.trucks.Delete(ctx, truckID); err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return fmt.Errorf("%w: truck %s", ErrNotFound, truckID)
		}
		return err
	}
	s.log.Info().Str("truck_id", truckID).Msg("truck deleted")
	return nil
}
