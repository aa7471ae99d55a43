package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"fleet-admin-service/internal/config"
)

// PathfinderClient talks to the external path-finding backend. The proxy
// endpoint forwards its responses verbatim, so the client hands back the raw
// status code and body instead of decoding them.
type PathfinderClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPathfinderClient(cfg *config.Config) *PathfinderClient {
	return &PathfinderClient{
		baseURL: cfg.ExternalServices.PathfinderURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Status fetches the upstream status endpoint and returns its status code
// and body unmodified.
func (c *PathfinderClient) Status(ctx context.Context) (int, []byte, error) {
	if c.baseURL == "" {
		return 0, nil, fmt.Errorf("pathfinder service URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/truckpath/status", nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to reach pathfinder backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}
