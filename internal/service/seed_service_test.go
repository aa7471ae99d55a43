package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-admin-service/internal/model"
	"fleet-admin-service/internal/repository"
)

func newSeedFixture() (*SeedService, *memLocationStore, *memAuditStore) {
	locations := newMemLocationStore()
	audits := newMemAuditStore()
	return NewSeedService(locations, audits, zerolog.Nop()), locations, audits
}

func TestSeedService_DryRunWritesNothing(t *testing.T) {
	svc, locations, audits := newSeedFixture()

	result, err := svc.Seed(context.Background(), []SeedItem{
		{Name: "Gate A", Airport: model.AirportCDG, Type: model.LocationTypeStart},
	}, true)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "create", result.Items[0].Status)
	assert.Nil(t, result.AuditID)
	assert.Empty(t, locations.docs)
	assert.Empty(t, audits.docs)
}

func TestSeedService_CreatesAndRecordsAudit(t *testing.T) {
	svc, locations, audits := newSeedFixture()

	result, err := svc.Seed(context.Background(), []SeedItem{
		{Name: "Gate A", Airport: model.AirportCDG, Type: model.LocationTypeStart, Latitude: floatPtr(49.0), Longitude: floatPtr(2.5)},
		{Name: "Gate B", Airport: model.AirportORY, Type: model.LocationTypeDestination},
	}, false)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "created", result.Items[0].Status)
	assert.Equal(t, "created", result.Items[1].Status)
	require.NotNil(t, result.AuditID)

	assert.Len(t, locations.docs, 2)
	audit, err := audits.GetByID(context.Background(), *result.AuditID)
	require.NoError(t, err)
	assert.Len(t, audit.CreatedIDs, 2)
	assert.Equal(t, 2, audit.CreatedCount)
	assert.Equal(t, 0, audit.UpdatedCount)
	assert.Equal(t, 2, audit.TotalProcessed)
}

func TestSeedService_UpdatesExistingByAirportAndName(t *testing.T) {
	svc, locations, audits := newSeedFixture()

	locations.docs["loc-1"] = model.Location{
		ID: "loc-1", LocationID: "loc-1", Name: "Gate A",
		Airport: model.AirportCDG, Type: model.LocationTypeStart,
		Latitude: floatPtr(10), Longitude: floatPtr(20),
	}

	result, err := svc.Seed(context.Background(), []SeedItem{
		{Name: "Gate A", Airport: model.AirportCDG, Type: model.LocationTypeStart, Latitude: floatPtr(11), Longitude: floatPtr(20)},
	}, false)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "updated", result.Items[0].Status)

	stored := locations.docs["loc-1"]
	assert.Equal(t, 11.0, *stored.Latitude)

	require.NotNil(t, result.AuditID)
	audit, err := audits.GetByID(context.Background(), *result.AuditID)
	require.NoError(t, err)
	require.Len(t, audit.UpdatedItems, 1)
	assert.Equal(t, "loc-1", audit.UpdatedItems[0].ID)
	assert.Equal(t, 10.0, *audit.UpdatedItems[0].Before.Latitude)
	assert.Equal(t, 20.0, *audit.UpdatedItems[0].Before.Longitude)
}

func TestSeedService_NoopWhenIdentical(t *testing.T) {
	svc, locations, _ := newSeedFixture()

	locations.docs["loc-1"] = model.Location{
		ID: "loc-1", Name: "Gate A", Airport: model.AirportCDG,
		Type: model.LocationTypeStart, Latitude: floatPtr(10), Longitude: floatPtr(20),
	}

	result, err := svc.Seed(context.Background(), []SeedItem{
		{Name: "Gate A", Airport: model.AirportCDG, Type: model.LocationTypeStart, Latitude: floatPtr(10), Longitude: floatPtr(20)},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "noop", result.Items[0].Status)
}

func TestSeedService_InvalidItemDoesNotStopBatch(t *testing.T) {
	svc, locations, _ := newSeedFixture()

	result, err := svc.Seed(context.Background(), []SeedItem{
		{Name: "", Airport: model.AirportCDG, Type: model.LocationTypeStart},
		{Name: "Gate C", Airport: model.Airport("LHR"), Type: model.LocationTypeStart},
		{Name: "Gate D", Airport: model.AirportCDG, Type: model.LocationTypeStart},
	}, false)
	require.NoError(t, err)

	require.Len(t, result.Items, 3)
	assert.Equal(t, "error", result.Items[0].Status)
	assert.Equal(t, "error", result.Items[1].Status)
	assert.Equal(t, "created", result.Items[2].Status)
	assert.Len(t, locations.docs, 1)
}

func TestSeedService_RollbackRoundTrip(t *testing.T) {
	locations := newMemLocationStore()
	audits := newMemAuditStore()
	seeder := NewSeedService(locations, audits, zerolog.Nop())
	rollback := NewRollbackService(locations, audits, zerolog.Nop())

	locations.docs["loc-old"] = model.Location{
		ID: "loc-old", Name: "Gate Old", Airport: model.AirportCDG,
		Type: model.LocationTypeStart, Latitude: floatPtr(1), Longitude: floatPtr(2),
		Description: strPtr("before"),
	}

	result, err := seeder.Seed(context.Background(), []SeedItem{
		{Name: "Gate New", Airport: model.AirportCDG, Type: model.LocationTypeStart},
		{Name: "Gate Old", Airport: model.AirportCDG, Type: model.LocationTypeStart, Latitude: floatPtr(9), Description: strPtr("after")},
	}, false)
	require.NoError(t, err)
	require.NotNil(t, result.AuditID)
	require.Len(t, locations.docs, 2)

	items, err := rollback.Rollback(context.Background(), *result.AuditID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Len(t, locations.docs, 1)
	restored := locations.docs["loc-old"]
	assert.Equal(t, 1.0, *restored.Latitude)
	assert.Equal(t, "before", *restored.Description)
}

func TestSeedService_FindByAirportAndNameContract(t *testing.T) {
	locations := newMemLocationStore()

	found, err := locations.FindByAirportAndName(context.Background(), model.AirportCDG, "nope")
	require.NoError(t, err)
	assert.Nil(t, found)

	_, err = locations.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNoDocument)
}
