package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-admin-service/internal/model"
)

func square(minLat, minLng, maxLat, maxLng float64) []model.GeoPoint {
	return []model.GeoPoint{
		{Lat: minLat, Lng: minLng},
		{Lat: minLat, Lng: maxLng},
		{Lat: maxLat, Lng: maxLng},
		{Lat: maxLat, Lng: minLng},
	}
}

func TestIndexSkipsDegenerateFences(t *testing.T) {
	idx := NewIndex([]model.Location{
		{ID: "no-fence", Name: "No Fence"},
		{ID: "two-points", Geofence: []model.GeoPoint{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}},
		{ID: "fenced", Geofence: square(49.0, 2.5, 49.1, 2.6)},
	})
	assert.Equal(t, 1, idx.Size())
}

func TestIndexLocate(t *testing.T) {
	idx := NewIndex([]model.Location{
		{ID: "cdg-zone", Geofence: square(49.0, 2.5, 49.1, 2.6)},
		{ID: "ory-zone", Geofence: square(48.7, 2.3, 48.8, 2.4)},
	})

	found := idx.Locate(49.05, 2.55)
	require.NotNil(t, found)
	assert.Equal(t, "cdg-zone", found.ID)

	found = idx.Locate(48.75, 2.35)
	require.NotNil(t, found)
	assert.Equal(t, "ory-zone", found.ID)

	assert.Nil(t, idx.Locate(50.0, 3.0))
}

func TestIndexLocateOutsidePolygonInsideBoundingBox(t *testing.T) {
	// A triangle whose bounding box covers points the polygon does not.
	triangle := []model.GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 10, Lng: 0},
		{Lat: 0, Lng: 10},
	}
	idx := NewIndex([]model.Location{{ID: "triangle", Geofence: triangle}})

	require.NotNil(t, idx.Locate(2, 2))
	assert.Nil(t, idx.Locate(9, 9), "bounding box hit must be refined away")
}
