// Package geo resolves map points to the location geofences containing them.
package geo

import (
	"github.com/dhconnelly/rtreego"

	"fleet-admin-service/internal/model"
)

const (
	dimensions     = 2
	minChildren    = 25
	maxChildren    = 50
	pointTolerance = 1e-9
)

type fenceEntry struct {
	location *model.Location
	rect     *rtreego.Rect
}

func (e *fenceEntry) Bounds() *rtreego.Rect {
	return e.rect
}

// Index is an R-tree over geofence bounding boxes with exact point-in-polygon
// refinement on the candidates. Geofences with fewer than three vertices are
// not polygons and are skipped.
type Index struct {
	tree *rtreego.Rtree
	size int
}

func NewIndex(locations []model.Location) *Index {
	idx := &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
	for i := range locations {
		loc := &locations[i]
		if !loc.HasPolygon() {
			continue
		}
		rect, err := boundingRect(loc.Geofence)
		if err != nil {
			continue
		}
		idx.tree.Insert(&fenceEntry{location: loc, rect: rect})
		idx.size++
	}
	return idx
}

// Size reports how many geofenced locations are indexed.
func (idx *Index) Size() int {
	return idx.size
}

// Locate returns the first indexed location whose geofence contains the
// point, or nil when the point falls outside every fence.
func (idx *Index) Locate(lat, lng float64) *model.Location {
	point := rtreego.Point{lat, lng}
	candidates := idx.tree.SearchIntersect(point.ToRect(pointTolerance))
	for _, candidate := range candidates {
		entry, ok := candidate.(*fenceEntry)
		if !ok {
			continue
		}
		if containsPoint(entry.location.Geofence, lat, lng) {
			return entry.location
		}
	}
	return nil
}

func boundingRect(fence []model.GeoPoint) (*rtreego.Rect, error) {
	minLat, minLng := fence[0].Lat, fence[0].Lng
	maxLat, maxLng := minLat, minLng
	for _, vertex := range fence[1:] {
		if vertex.Lat < minLat {
			minLat = vertex.Lat
		}
		if vertex.Lat > maxLat {
			maxLat = vertex.Lat
		}
		if vertex.Lng < minLng {
			minLng = vertex.Lng
		}
		if vertex.Lng > maxLng {
			maxLng = vertex.Lng
		}
	}
	// Degenerate fences still need a non-zero extent for the tree.
	return rtreego.NewRect(
		rtreego.Point{minLat, minLng},
		[]float64{maxLat - minLat + pointTolerance, maxLng - minLng + pointTolerance},
	)
}

// containsPoint is a standard ray cast over the closed polygon formed by the
// fence vertices.
func containsPoint(fence []model.GeoPoint, lat, lng float64) bool {
	inside := false
	n := len(fence)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := fence[i], fence[j]
		if (vi.Lng > lng) != (vj.Lng > lng) &&
			lat < (vj.Lat-vi.Lat)*(lng-vi.Lng)/(vj.Lng-vi.Lng)+vi.Lat {
			inside = !inside
		}
	}
	return inside
}
