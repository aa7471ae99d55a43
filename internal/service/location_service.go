package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fleet-admin-service/internal/geo"
	"fleet-admin-service/internal/model"
	"fleet-admin-service/internal/repository"
	"fleet-admin-service/internal/utils"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

type LocationService struct {
	locations repository.LocationStore
	log       zerolog.Logger
}

func NewLocationService(locations repository.LocationStore, log zerolog.Logger) *LocationService {
	return &LocationService{locations: locations, log: log}
}

type CreateLocationInput struct {
	Name        string
	Airport     model.Airport
	Type        model.LocationType
	Description *string
	Latitude    *float64
	Longitude   *float64
	Geofence    []model.GeoPoint
	IsActive    *bool
}

func (s *LocationService) List(ctx context.Context, filter repository.LocationListFilter) ([]model.Location, error) {
	locations, err := s.locations.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("count", len(locations)).Msg("locations listed")
	return locations, nil
}

func (s *LocationService) Get(ctx context.Context, id string) (*model.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, fmt.Errorf("%w: location %s", ErrNotFound, id)
		}
		return nil, err
	}
	return loc, nil
}

func (s *LocationService) Create(ctx context.Context, input CreateLocationInput) (*model.Location, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !input.Airport.Valid() {
		return nil, fmt.Errorf("%w: airport must be CDG or ORY", ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be start or destination", ErrInvalidInput)
	}

	id := newLocationID(input.Airport, name)
	now := time.Now().UTC()
	loc := &model.Location{
		ID:          id,
		LocationID:  id,
		Name:        name,
		Airport:     input.Airport,
		Type:        input.Type,
		Description: trimmedOrNil(input.Description),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Geofence:    input.Geofence,
		IsActive:    input.IsActive == nil || *input.IsActive,
		CreatedAt:   now,
	}

	if err := s.locations.Insert(ctx, loc); err != nil {
		return nil, err
	}

	s.log.Info().Str("location_id", id).Str("airport", string(loc.Airport)).Msg("location created")
	return loc, nil
}

// Update merges the provided patch fields onto the stored document and
// rewrites it with a fresh update timestamp. Unknown ids fail.
func (s *LocationService) Update(ctx context.Context, id string, patch model.LocationPatch) (*model.Location, error) {
	existing, err := s.locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, fmt.Errorf("%w: location %s", ErrNotFound, id)
		}
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		existing.Name = name
	}
	if patch.Airport != nil {
		if !patch.Airport.Valid() {
			return nil, fmt.Errorf("%w: airport must be CDG or ORY", ErrInvalidInput)
		}
		existing.Airport = *patch.Airport
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, fmt.Errorf("%w: type must be start or destination", ErrInvalidInput)
		}
		existing.Type = *patch.Type
	}
	if patch.Description != nil {
		existing.Description = trimmedOrNil(patch.Description)
	}
	if patch.Latitude != nil {
		existing.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		existing.Longitude = patch.Longitude
	}
	if patch.Geofence != nil {
		existing.Geofence = *patch.Geofence
	}
	if patch.IsActive != nil {
		existing.IsActive = *patch.IsActive
	}

	now := time.Now().UTC()
	existing.UpdatedAt = &now

	if err := s.locations.Replace(ctx, existing); err != nil {
		return nil, err
	}

	s.log.Info().Str("location_id", id).Msg("location updated")
	return existing, nil
}

// Delete is an unconditional point-delete; a retry on an already-removed id
// surfaces as not-found and the caller decides whether that matters.
func (s *LocationService) Delete(ctx context.Context, id string) error {
	if err := s.locations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return fmt.Errorf("%w: location %s", ErrNotFound, id)
		}
		return err
	}
	s.log.Info().Str("location_id", id).Msg("location deleted")
	return nil
}

// Locate resolves a point to the location whose geofence contains it,
// optionally restricted to one airport.
func (s *LocationService) Locate(ctx context.Context, lat, lng float64, airport *model.Airport) (*model.Location, error) {
	locations, err := s.locations.List(ctx, repository.LocationListFilter{Airport: airport})
	if err != nil {
		return nil, err
	}

	loc := geo.NewIndex(locations).Locate(lat, lng)
	if loc == nil {
		return nil, fmt.Errorf("%w: no geofence contains point", ErrNotFound)
	}
	return loc, nil
}

func newLocationID(airport model.Airport, name string) string {
	return fmt.Sprintf("location-%s-%s-%d", airport, utils.Slugify(name), time.Now().UnixMilli())
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
