package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fleet-admin-service/internal/model"
	"fleet-admin-service/internal/repository"
)

// RollbackService reverses a prior seeding batch from its audit record.
// Processing is sequential and best-effort: a failing item never aborts the
// rest, and the caller learns the full outcome from the per-item results.
// There is no transactional boundary; re-running the same audit re-attempts
// everything, so already-deleted creates come back as errors while reverts
// re-apply the same values.
type RollbackService struct {
	locations repository.LocationStore
	audits    repository.AuditStore
	log       zerolog.Logger
}

func NewRollbackService(locations repository.LocationStore, audits repository.AuditStore, log zerolog.Logger) *RollbackService {
	return &RollbackService{locations: locations, audits: audits, log: log}
}

const (
	RollbackStatusDeleted  = "deleted"
	RollbackStatusReverted = "reverted"
	RollbackStatusError    = "error"
)

type RollbackItem struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *RollbackService) Rollback(ctx context.Context, auditID string) ([]RollbackItem, error) {
	audit, err := s.audits.GetByID(ctx, auditID)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, fmt.Errorf("%w: audit %s", ErrNotFound, auditID)
		}
		return nil, err
	}

	items := make([]RollbackItem, 0, len(audit.CreatedIDs)+len(audit.UpdatedItems))

	for _, id := range audit.CreatedIDs {
		if err := s.locations.Delete(ctx, id); err != nil {
			items = append(items, RollbackItem{ID: id, Status: RollbackStatusError, Message: err.Error()})
			continue
		}
		items = append(items, RollbackItem{ID: id, Status: RollbackStatusDeleted, Message: "created doc deleted"})
	}

	for _, update := range audit.UpdatedItems {
		if err := s.revert(ctx, update); err != nil {
			items = append(items, RollbackItem{ID: update.ID, Status: RollbackStatusError, Message: err.Error()})
			continue
		}
		items = append(items, RollbackItem{ID: update.ID, Status: RollbackStatusReverted, Message: "updated doc reverted"})
	}

	s.log.Info().Str("audit_id", auditID).Int("items", len(items)).Msg("rollback processed")
	return items, nil
}

// revert overlays only the enumerated before-image fields onto the current
// document. Everything else written since the seeding run is preserved.
func (s *RollbackService) revert(ctx context.Context, update model.AuditUpdate) error {
	existing, err := s.locations.GetByID(ctx, update.ID)
	if err != nil {
		return err
	}

	existing.Latitude = update.Before.Latitude
	existing.Longitude = update.Before.Longitude
	existing.Description = update.Before.Description

	now := time.Now().UTC()
	existing.UpdatedAt = &now

	return s.locations.Replace(ctx, existing)
}
