package model

import "time"

type TruckStatus string

const (
	TruckStatusAvailable     TruckStatus = "Available"
	TruckStatusInUse         TruckStatus = "In Use"
	TruckStatusInMaintenance TruckStatus = "In Maintenance"
	TruckStatusOffline       TruckStatus = "Offline"
	TruckStatusInactive      TruckStatus = "Inactive"
)

func (s TruckStatus) Valid() bool {
	switch s {
	case TruckStatusAvailable, TruckStatusInUse, TruckStatusInMaintenance,
		TruckStatusOffline, TruckStatusInactive:
		return true
	}
	return false
}

// Truck is a fleet truck document. truckId doubles as the document id.
type Truck struct {
	ID                  string      `bson:"_id" json:"-"`
	TruckID             string      `bson:"truckId" json:"truckId"`
	PlateNumber         string      `bson:"plateNumber" json:"plateNumber"`
	Type                string      `bson:"type" json:"type"`
	Model               *string     `bson:"model" json:"model"`
	Capacity            *string     `bson:"capacity" json:"capacity"`
	Status              TruckStatus `bson:"status" json:"status"`
	AssignedDriverID    *string     `bson:"assignedDriverId" json:"assignedDriverId"`
	CurrentAssignmentID *string     `bson:"currentAssignmentId" json:"currentAssignmentId"`
	LastGpsUpdate       *time.Time  `bson:"lastGpsUpdate" json:"lastGpsUpdate"`
	CurrentLatitude     *float64    `bson:"currentLatitude" json:"currentLatitude"`
	CurrentLongitude    *float64    `bson:"currentLongitude" json:"currentLongitude"`
	OdometerKm          *float64    `bson:"odometerKm" json:"odometerKm"`
	FuelLevelPercent    *float64    `bson:"fuelLevelPercent" json:"fuelLevelPercent"`
	LastMaintenanceDate *time.Time  `bson:"lastMaintenanceDate" json:"lastMaintenanceDate"`
	NextMaintenanceDate *time.Time  `bson:"nextMaintenanceDate" json:"nextMaintenanceDate"`
	Notes               *string     `bson:"notes" json:"notes"`
	CreatedAt           time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time   `bson:"updatedAt" json:"updatedAt"`
}

type TruckPatch struct {
	PlateNumber         *string      `json:"plateNumber"`
	Type                *string      `json:"type"`
	Model               *string      `json:"model"`
	Capacity            *string      `json:"capacity"`
	Status              *TruckStatus `json:"status"`
	AssignedDriverID    *string      `json:"assignedDriverId"`
	CurrentAssignmentID *string      `json:"currentAssignmentId"`
	CurrentLatitude     *float64     `json:"currentLatitude"`
	CurrentLongitude    *float64     `json:"currentLongitude"`
	OdometerKm          *float64     `json:"odometerKm"`
	FuelLevelPercent    *float64     `json:"fuelLevelPercent"`
	LastMaintenanceDate *time.Time   `json:"lastMaintenanceDate"`
	NextMaintenanceDate *time.Time   `json:"nextMaintenanceDate"`
	Notes               *string      `json:"notes"`
}
