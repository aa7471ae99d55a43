package model

import "time"

type Airport string

const (
	AirportCDG Airport = "CDG"
	AirportORY Airport = "ORY"
)

func (a Airport) Valid() bool {
	return a == AirportCDG || a == AirportORY
}

type LocationType string

const (
	LocationTypeStart       LocationType = "start"
	LocationTypeDestination LocationType = "destination"
)

func (t LocationType) Valid() bool {
	return t == LocationTypeStart || t == LocationTypeDestination
}

// GeoPoint is a single geofence vertex.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Location is a named airport gate or destination. The document id and the
// locationId business key carry the same value.
type Location struct {
	ID          string       `bson:"_id" json:"id"`
	LocationID  string       `bson:"locationId" json:"locationId"`
	Name        string       `bson:"name" json:"name"`
	Airport     Airport      `bson:"airport" json:"airport"`
	Type        LocationType `bson:"type" json:"type"`
	Description *string      `bson:"description" json:"description"`
	Latitude    *float64     `bson:"latitude" json:"latitude"`
	Longitude   *float64     `bson:"longitude" json:"longitude"`
	Geofence    []GeoPoint   `bson:"geofence" json:"geofence"`
	IsActive    bool         `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time   `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// HasPolygon reports whether the geofence is renderable as a closed polygon.
func (l *Location) HasPolygon() bool {
	return len(l.Geofence) > 2
}

// LocationPatch carries the fields present in a partial update. Nil means the
// field was not provided.
type LocationPatch struct {
	Name        *string       `json:"name"`
	Airport     *Airport      `json:"airport"`
	Type        *LocationType `json:"type"`
	Description *string       `json:"description"`
	Latitude    *float64      `json:"latitude"`
	Longitude   *float64      `json:"longitude"`
	Geofence    *[]GeoPoint   `json:"geofence"`
	IsActive    *bool         `json:"isActive"`
}
