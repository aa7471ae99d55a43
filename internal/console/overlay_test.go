package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-admin-service/internal/model"
)

func TestRoadOverlayFetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/service-roads-CDG.geojson", r.URL.Path)
		w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"properties": {"name": "North Perimeter Road"},
					"geometry": {"type": "Polygon", "coordinates": [[[2.5, 49.0], [2.6, 49.0], [2.6, 49.1]]]}
				}
			]
		}`))
	}))
	defer server.Close()

	overlay := NewRoadOverlay(server.URL)

	features, err := overlay.Features(context.Background(), model.AirportCDG)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "North Perimeter Road", features[0].Properties.Name)

	_, err = overlay.Features(context.Background(), model.AirportCDG)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "static dataset is fetched once per airport")
}

func TestRoadOverlayRejectsUnknownAirport(t *testing.T) {
	overlay := NewRoadOverlay("http://localhost")

	_, err := overlay.Features(context.Background(), model.Airport("LHR"))
	assert.Error(t, err)
}

func TestRoadOverlayUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	overlay := NewRoadOverlay(server.URL)

	_, err := overlay.Features(context.Background(), model.AirportORY)
	assert.Error(t, err)
}
