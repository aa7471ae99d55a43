package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fleet-admin-service/internal/model"
)

// Client is a thin HTTP client for the location endpoints of the admin API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LocationUpdate is a partial update payload; only set fields are sent.
type LocationUpdate struct {
	Name      *string           `json:"name,omitempty"`
	Latitude  *float64          `json:"latitude,omitempty"`
	Longitude *float64          `json:"longitude,omitempty"`
	Geofence  *[]model.GeoPoint `json:"geofence,omitempty"`
}

type CreateLocationRequest struct {
	Name        string             `json:"name"`
	Airport     model.Airport      `json:"airport"`
	Type        model.LocationType `json:"type"`
	Description *string            `json:"description,omitempty"`
}

type createLocationResponse struct {
	Success  bool            `json:"success"`
	ID       string          `json:"id"`
	Location *model.Location `json:"location"`
}

func (c *Client) ListLocations(ctx context.Context) ([]model.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/locations", nil)
	if err != nil {
		return nil, err
	}

	var locations []model.Location
	if err := c.do(req, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *Client) UpdateLocation(ctx context.Context, id string, update LocationUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + "/locations?id=" + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *Client) CreateLocation(ctx context.Context, create CreateLocationRequest) (*model.Location, error) {
	body, err := json.Marshal(create)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/locations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp createLocationResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Location == nil {
		return nil, fmt.Errorf("create response carried no location")
	}
	return resp.Location, nil
}

func (c *Client) DeleteLocation(ctx context.Context, id string) error {
	endpoint := c.baseURL + "/locations?id=" + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("admin API returned status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
