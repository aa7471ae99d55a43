package console

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"fleet-admin-service/internal/model"
)

// LocationAPI covers the location endpoints the workspace drives.
type LocationAPI interface {
	ListLocations(ctx context.Context) ([]model.Location, error)
	CreateLocation(ctx context.Context, create CreateLocationRequest) (*model.Location, error)
	UpdateLocation(ctx context.Context, id string, update LocationUpdate) error
	DeleteLocation(ctx context.Context, id string) error
}

// pendingEdit holds the unsaved portion of a single location.
type pendingEdit struct {
	latitude  *float64
	longitude *float64
	geofence  []model.GeoPoint
	// clearFence distinguishes "remove the polygon" from "untouched".
	clearFence bool
}

func (p *pendingEdit) empty() bool {
	return p.latitude == nil && p.longitude == nil && p.geofence == nil && !p.clearFence
}

// Workspace is the editing session behind the admin map page. It keeps the
// server's list as the authoritative state and layers unsaved position and
// geofence edits on top, keyed by location id. Renames, creates and deletes
// go straight to the API; position and fence edits accumulate until Save.
type Workspace struct {
	mu        sync.Mutex
	api       LocationAPI
	log       zerolog.Logger
	locations []model.Location
	pending   map[string]*pendingEdit
}

func NewWorkspace(api LocationAPI, log zerolog.Logger) *Workspace {
	return &Workspace{
		api:     api,
		log:     log,
		pending: make(map[string]*pendingEdit),
	}
}

// Refresh reloads the authoritative list. Unsaved edits survive the reload;
// edits for ids that no longer exist are dropped.
func (w *Workspace) Refresh(ctx context.Context) error {
	locations, err := w.api.ListLocations(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.locations = locations
	known := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		known[loc.ID] = struct{}{}
	}
	for id := range w.pending {
		if _, ok := known[id]; !ok {
			delete(w.pending, id)
		}
	}
	return nil
}

// Locations returns the list with pending edits applied, filtered by airport
// and a case-insensitive name substring, sorted by name.
func (w *Workspace) Locations(airport *model.Airport, nameQuery string) []model.Location {
	w.mu.Lock()
	defer w.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(nameQuery))

	out := make([]model.Location, 0, len(w.locations))
	for _, loc := range w.locations {
		if airport != nil && loc.Airport != *airport {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(loc.Name), query) {
			continue
		}
		out = append(out, w.overlay(loc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dirty reports whether any unsaved edits exist.
func (w *Workspace) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending) > 0
}

// MovePosition records a new marker position for the location. The edit is
// local until Save.
func (w *Workspace) MovePosition(id string, latitude, longitude float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	edit := w.edit(id)
	edit.latitude = &latitude
	edit.longitude = &longitude
}

// SetGeofence records a new polygon for the location locally.
func (w *Workspace) SetGeofence(id string, fence []model.GeoPoint) {
	w.mu.Lock()
	defer w.mu.Unlock()

	edit := w.edit(id)
	edit.geofence = append([]model.GeoPoint(nil), fence...)
	edit.clearFence = false
}

// ClearGeofence marks the location's polygon for removal on Save.
func (w *Workspace) ClearGeofence(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	edit := w.edit(id)
	edit.geofence = nil
	edit.clearFence = true
}

// Discard drops all unsaved edits.
func (w *Workspace) Discard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = make(map[string]*pendingEdit)
}

// Rename pushes a name change immediately and refreshes the cached entry.
func (w *Workspace) Rename(ctx context.Context, id, name string) error {
	if err := w.api.UpdateLocation(ctx, id, LocationUpdate{Name: &name}); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.locations {
		if w.locations[i].ID == id {
			w.locations[i].Name = strings.TrimSpace(name)
		}
	}
	return nil
}

// Create adds a location immediately and appends it to the list.
func (w *Workspace) Create(ctx context.Context, create CreateLocationRequest) (*model.Location, error) {
	created, err := w.api.CreateLocation(ctx, create)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.locations = append(w.locations, *created)
	return created, nil
}

// Delete removes a location immediately, along with any unsaved edits for it.
func (w *Workspace) Delete(ctx context.Context, id string) error {
	if err := w.api.DeleteLocation(ctx, id); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.pending, id)
	for i := range w.locations {
		if w.locations[i].ID == id {
			w.locations = append(w.locations[:i], w.locations[i+1:]...)
			break
		}
	}
	return nil
}

// Save pushes every pending edit as its own update request, all in flight at
// once. The overlay is cleared only when every request succeeded; on any
// failure all edits are kept so the operator can retry.
func (w *Workspace) Save(ctx context.Context) error {
	w.mu.Lock()
	edits := make(map[string]*pendingEdit, len(w.pending))
	for id, edit := range w.pending {
		edits[id] = edit
	}
	w.mu.Unlock()

	if len(edits) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(edits))
	for id, edit := range edits {
		wg.Add(1)
		go func(id string, edit *pendingEdit) {
			defer wg.Done()

			update := LocationUpdate{
				Latitude:  edit.latitude,
				Longitude: edit.longitude,
			}
			if edit.clearFence {
				empty := []model.GeoPoint{}
				update.Geofence = &empty
			} else if edit.geofence != nil {
				fence := edit.geofence
				update.Geofence = &fence
			}
			if err := w.api.UpdateLocation(ctx, id, update); err != nil {
				w.log.Error().Err(err).Str("location_id", id).Msg("failed to save location edit")
				errs <- err
			}
		}(id, edit)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for id, edit := range edits {
		if current, ok := w.pending[id]; ok && current == edit {
			delete(w.pending, id)
		}
	}
	return nil
}

func (w *Workspace) edit(id string) *pendingEdit {
	if existing, ok := w.pending[id]; ok {
		return existing
	}
	edit := &pendingEdit{}
	w.pending[id] = edit
	return edit
}

func (w *Workspace) overlay(loc model.Location) model.Location {
	edit, ok := w.pending[loc.ID]
	if !ok {
		return loc
	}
	if edit.latitude != nil {
		loc.Latitude = edit.latitude
	}
	if edit.longitude != nil {
		loc.Longitude = edit.longitude
	}
	if edit.clearFence {
		loc.Geofence = nil
	} else if edit.geofence != nil {
		loc.Geofence = append([]model.GeoPoint(nil), edit.geofence...)
	}
	return loc
}
