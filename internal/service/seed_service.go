package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-admin-service/internal/model"
	"fleet-admin-service/internal/repository"
)

// SeedService applies a batch of location definitions, matching existing
// documents by the airport+name unique key. Every run that actually writes
// records a SeedingAudit so the batch can be reversed.
type SeedService struct {
	locations repository.LocationStore
	audits    repository.AuditStore
	log       zerolog.Logger
}

func NewSeedService(locations repository.LocationStore, audits repository.AuditStore, log zerolog.Logger) *SeedService {
	return &SeedService{locations: locations, audits: audits, log: log}
}

type SeedItem struct {
	Name        string             `json:"name"`
	Airport     model.Airport      `json:"airport"`
	Type        model.LocationType `json:"type"`
	Description *string            `json:"description"`
	Latitude    *float64           `json:"latitude"`
	Longitude   *float64           `json:"longitude"`
}

type SeedItemResult struct {
	Name    string `json:"name"`
	Airport string `json:"airport"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SeedResult struct {
	Items   []SeedItemResult `json:"items"`
	AuditID *string          `json:"auditId"`
}

// Seed processes items sequentially to keep the audit deterministic.
// dryRun reports what would happen without touching the store.
func (s *SeedService) Seed(ctx context.Context, items []SeedItem, dryRun bool) (*SeedResult, error) {
	result := &SeedResult{Items: make([]SeedItemResult, 0, len(items))}

	var createdIDs []string
	var updatedItems []model.AuditUpdate

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" || !item.Airport.Valid() || !item.Type.Valid() {
			result.Items = append(result.Items, SeedItemResult{
				Name: item.Name, Airport: string(item.Airport), Type: string(item.Type),
				Status: "error", Message: "missing or invalid required fields",
			})
			continue
		}

		existing, err := s.locations.FindByAirportAndName(ctx, item.Airport, name)
		if err != nil {
			result.Items = append(result.Items, SeedItemResult{
				Name: name, Airport: string(item.Airport), Type: string(item.Type),
				Status: "error", Message: err.Error(),
			})
			continue
		}

		if existing == nil {
			res := s.seedCreate(ctx, item, name, dryRun, &createdIDs)
			result.Items = append(result.Items, res)
			continue
		}

		res := s.seedUpdate(ctx, item, existing, dryRun, &updatedItems)
		result.Items = append(result.Items, res)
	}

	if !dryRun {
		audit := &model.SeedingAudit{
			ID:             uuid.NewString(),
			CreatedIDs:     createdIDs,
			UpdatedItems:   updatedItems,
			CreatedCount:   len(createdIDs),
			UpdatedCount:   len(updatedItems),
			TotalProcessed: len(result.Items),
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.audits.Insert(ctx, audit); err != nil {
			return nil, err
		}
		result.AuditID = &audit.ID
		s.log.Info().Str("audit_id", audit.ID).
			Int("created", audit.CreatedCount).
			Int("updated", audit.UpdatedCount).
			Msg("seeding batch applied")
	}

	return result, nil
}

func (s *SeedService) seedCreate(ctx context.Context, item SeedItem, name string, dryRun bool, createdIDs *[]string) SeedItemResult {
	res := SeedItemResult{Name: name, Airport: string(item.Airport), Type: string(item.Type)}
	if dryRun {
		res.Status = "create"
		res.Message = "would create"
		return res
	}

	id := newLocationID(item.Airport, name)
	loc := &model.Location{
		ID:          id,
		LocationID:  id,
		Name:        name,
		Airport:     item.Airport,
		Type:        item.Type,
		Description: trimmedOrNil(item.Description),
		Latitude:    item.Latitude,
		Longitude:   item.Longitude,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.locations.Insert(ctx, loc); err != nil {
		res.Status = "error"
		res.Message = err.Error()
		return res
	}

	*createdIDs = append(*createdIDs, id)
	res.Status = "created"
	res.Message = "created"
	return res
}

func (s *SeedService) seedUpdate(ctx context.Context, item SeedItem, existing *model.Location, dryRun bool, updatedItems *[]model.AuditUpdate) SeedItemResult {
	res := SeedItemResult{Name: existing.Name, Airport: string(item.Airport), Type: string(item.Type)}

	changed := false
	next := *existing
	if item.Latitude != nil && !floatPtrEqual(item.Latitude, existing.Latitude) {
		next.Latitude = item.Latitude
		changed = true
	}
	if item.Longitude != nil && !floatPtrEqual(item.Longitude, existing.Longitude) {
		next.Longitude = item.Longitude
		changed = true
	}
	if item.Description != nil && !stringPtrEqual(trimmedOrNil(item.Description), existing.Description) {
		next.Description = trimmedOrNil(item.Description)
		changed = true
	}

	if !changed {
		res.Status = "noop"
		res.Message = "no changes"
		return res
	}
	if dryRun {
		res.Status = "update"
		res.Message = "would update"
		return res
	}

	now := time.Now().UTC()
	next.UpdatedAt = &now
	if err := s.locations.Replace(ctx, &next); err != nil {
		res.Status = "error"
		res.Message = err.Error()
		return res
	}

	*updatedItems = append(*updatedItems, model.AuditUpdate{
		ID: existing.ID,
		Before: model.BeforeImage{
			Latitude:    existing.Latitude,
			Longitude:   existing.Longitude,
			Description: existing.Description,
		},
	})
	res.Status = "updated"
	res.Message = "updated"
	return res
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
