package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"fleet-admin-service/internal/model"
)

// RoadFeature is one service-road polygon from the static boundary dataset.
type RoadFeature struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates [][][2]float64 `json:"coordinates"`
	} `json:"geometry"`
}

type roadCollection struct {
	Type     string        `json:"type"`
	Features []RoadFeature `json:"features"`
}

// RoadOverlay loads the per-airport service-road boundary dataset. The data
// is static, so each airport's collection is fetched once and cached for the
// session. The overlay is render-only and never written back.
type RoadOverlay struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[model.Airport][]RoadFeature
}

func NewRoadOverlay(baseURL string) *RoadOverlay {
	return &RoadOverlay{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: make(map[model.Airport][]RoadFeature),
	}
}

// Features returns the road polygons for one airport, fetching on first use.
func (o *RoadOverlay) Features(ctx context.Context, airport model.Airport) ([]RoadFeature, error) {
	if !airport.Valid() {
		return nil, fmt.Errorf("unknown airport %q", airport)
	}

	o.mu.Lock()
	cached, ok := o.cache[airport]
	o.mu.Unlock()
	if ok {
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/service-roads-%s.geojson", o.baseURL, airport)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch road overlay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("road overlay fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var collection roadCollection
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, fmt.Errorf("decode road overlay: %w", err)
	}

	o.mu.Lock()
	o.cache[airport] = collection.Features
	o.mu.Unlock()

	return collection.Features, nil
}
