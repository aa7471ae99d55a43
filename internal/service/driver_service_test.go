package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-admin-service/internal/model"
)

func TestDriverService_CreateRequiresContactFields(t *testing.T) {
	svc := NewDriverService(newMemDriverStore(), zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateDriverInput{
		FullName:      "Jean Petit",
		CurrentStatus: model.DriverStatusActive,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDriverService_CreateGeneratesID(t *testing.T) {
	store := newMemDriverStore()
	svc := NewDriverService(store, zerolog.Nop())

	created, err := svc.Create(context.Background(), CreateDriverInput{
		FullName:      "Jean Petit",
		PhoneNumber:   "+33 6 12 34 56 78",
		LicenseNumber: "FR-778812",
		CurrentStatus: model.DriverStatusIdle,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.DriverID)
	assert.Equal(t, created.ID, created.DriverID)
}

func TestDriverService_UpdateUpsertsPlaceholder(t *testing.T) {
	store := newMemDriverStore()
	svc := NewDriverService(store, zerolog.Nop())

	lat := 49.01
	updated, err := svc.Update(context.Background(), "driver-042", model.DriverPatch{
		CurrentLatitude: &lat,
	})
	require.NoError(t, err)

	assert.Equal(t, "driver-042", updated.DriverID)
	assert.Equal(t, model.DriverStatusActive, updated.CurrentStatus)
	assert.Equal(t, 49.01, *updated.CurrentLatitude)

	stored, err := store.GetByID(context.Background(), "driver-042")
	require.NoError(t, err)
	assert.Equal(t, model.DriverStatusActive, stored.CurrentStatus)
}

func TestDriverService_UpdateRejectsInvalidStatus(t *testing.T) {
	svc := NewDriverService(newMemDriverStore(), zerolog.Nop())

	bad := model.DriverStatus("Sleeping")
	_, err := svc.Update(context.Background(), "driver-042", model.DriverPatch{
		CurrentStatus: &bad,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDriverService_SummaryDegradesToNil(t *testing.T) {
	store := newMemDriverStore()
	svc := NewDriverService(store, zerolog.Nop())

	assert.Nil(t, svc.Summary(context.Background(), nil))

	missing := "driver-ghost"
	assert.Nil(t, svc.Summary(context.Background(), &missing))

	created, err := svc.Create(context.Background(), CreateDriverInput{
		FullName:      "Marie Blanc",
		PhoneNumber:   "+33 6 99 88 77 66",
		LicenseNumber: "FR-113355",
		CurrentStatus: model.DriverStatusActive,
	})
	require.NoError(t, err)

	summary := svc.Summary(context.Background(), &created.DriverID)
	require.NotNil(t, summary)
	assert.Equal(t, "Marie Blanc", summary.FullName)
	assert.Equal(t, model.DriverStatusActive, summary.CurrentStatus)
}
