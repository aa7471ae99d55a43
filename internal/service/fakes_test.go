package service

import (
	"context"
	"errors"
	"sort"

	"fleet-admin-service/internal/model"
	"fleet-admin-service/internal/repository"
)

// memLocationStore is an in-memory LocationStore for service tests.
type memLocationStore struct {
	docs    map[string]model.Location
	failIDs map[string]error
}

func newMemLocationStore() *memLocationStore {
	return &memLocationStore{
		docs:    make(map[string]model.Location),
		failIDs: make(map[string]error),
	}
}

func (s *memLocationStore) List(_ context.Context, filter repository.LocationListFilter) ([]model.Location, error) {
	var out []model.Location
	for _, loc := range s.docs {
		if filter.Airport != nil && loc.Airport != *filter.Airport {
			continue
		}
		if filter.Type != nil && loc.Type != *filter.Type {
			continue
		}
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memLocationStore) GetByID(_ context.Context, id string) (*model.Location, error) {
	if err, ok := s.failIDs[id]; ok {
		return nil, err
	}
	loc, ok := s.docs[id]
	if !ok {
		return nil, repository.ErrNoDocument
	}
	copied := loc
	return &copied, nil
}

func (s *memLocationStore) FindByAirportAndName(_ context.Context, airport model.Airport, name string) (*model.Location, error) {
	for _, loc := range s.docs {
		if loc.Airport == airport && loc.Name == name {
			copied := loc
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memLocationStore) Insert(_ context.Context, loc *model.Location) error {
	if err, ok := s.failIDs[loc.ID]; ok {
		return err
	}
	s.docs[loc.ID] = *loc
	return nil
}

func (s *memLocationStore) Replace(_ context.Context, loc *model.Location) error {
	if err, ok := s.failIDs[loc.ID]; ok {
		return err
	}
	s.docs[loc.ID] = *loc
	return nil
}

func (s *memLocationStore) Delete(_ context.Context, id string) error {
	if err, ok := s.failIDs[id]; ok {
		return err
	}
	if _, ok := s.docs[id]; !ok {
		return repository.ErrNoDocument
	}
	delete(s.docs, id)
	return nil
}

type memDriverStore struct {
	docs map[string]model.Driver
}

func newMemDriverStore() *memDriverStore {
	return &memDriverStore{docs: make(map[string]model.Driver)}
}

func (s *memDriverStore) List(_ context.Context) ([]model.Driver, error) {
	var out []model.Driver
	for _, d := range s.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memDriverStore) GetByID(_ context.Context, id string) (*model.Driver, error) {
	d, ok := s.docs[id]
	if !ok {
		return nil, repository.ErrNoDocument
	}
	copied := d
	return &copied, nil
}

func (s *memDriverStore) Insert(_ context.Context, d *model.Driver) error {
	s.docs[d.ID] = *d
	return nil
}

func (s *memDriverStore) Replace(_ context.Context, d *model.Driver) error {
	s.docs[d.ID] = *d
	return nil
}

func (s *memDriverStore) Delete(_ context.Context, id string) error {
	if _, ok := s.docs[id]; !ok {
		return repository.ErrNoDocument
	}
	delete(s.docs, id)
	return nil
}

type memTruckStore struct {
	docs map[string]model.Truck
}

func newMemTruckStore() *memTruckStore {
	return &memTruckStore{docs: make(map[string]model.Truck)}
}

func (s *memTruckStore) List(_ context.Context) ([]model.Truck, error) {
	var out []model.Truck
	for _, t := range s.docs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memTruckStore) GetByID(_ context.Context, id string) (*model.Truck, error) {
	t, ok := s.docs[id]
	if !ok {
		return nil, repository.ErrNoDocument
	}
	copied := t
	return &copied, nil
}

func (s *memTruckStore) Insert(_ context.Context, t *model.Truck) error {
	s.docs[t.ID] = *t
	return nil
}

func (s *memTruckStore) Replace(_ context.Context, t *model.Truck) error {
	s.docs[t.ID] = *t
	return nil
}

func (s *memTruckStore) Delete(_ context.Context, id string) error {
	if _, ok := s.docs[id]; !ok {
		return repository.ErrNoDocument
	}
	delete(s.docs, id)
	return nil
}

type memAuditStore struct {
	docs map[string]model.SeedingAudit
}

func newMemAuditStore() *memAuditStore {
	return &memAuditStore{docs: make(map[string]model.SeedingAudit)}
}

func (s *memAuditStore) GetByID(_ context.Context, id string) (*model.SeedingAudit, error) {
	a, ok := s.docs[id]
	if !ok {
		return nil, repository.ErrNoDocument
	}
	copied := a
	return &copied, nil
}

func (s *memAuditStore) Insert(_ context.Context, a *model.SeedingAudit) error {
	s.docs[a.ID] = *a
	return nil
}

var errStoreDown = errors.New("store unavailable")
