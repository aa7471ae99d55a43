package model

import "time"

type DriverStatus string

const (
	DriverStatusActive  DriverStatus = "Active"
	DriverStatusIdle    DriverStatus = "Idle"
	DriverStatusOnBreak DriverStatus = "On Break"
	DriverStatusOffline DriverStatus = "Offline"
)

func (s DriverStatus) Valid() bool {
	switch s {
	case DriverStatusActive, DriverStatusIdle, DriverStatusOnBreak, DriverStatusOffline:
		return true
	}
	return false
}

// Driver is a fleet driver document. driverId doubles as the document id.
// Telemetry fields are filled by field devices and may be absent.
type Driver struct {
	ID               string       `bson:"_id" json:"-"`
	DriverID         string       `bson:"driverId" json:"driverId"`
	FullName         string       `bson:"fullName" json:"fullName"`
	PhoneNumber      string       `bson:"phoneNumber" json:"phoneNumber"`
	Email            string       `bson:"email" json:"email"`
	LicenseNumber    string       `bson:"licenseNumber" json:"licenseNumber"`
	AssignedTruckID  *string      `bson:"assignedTruckId" json:"assignedTruckId"`
	CurrentStatus    DriverStatus `bson:"currentStatus" json:"currentStatus"`
	LastGpsUpdate    *time.Time   `bson:"lastGpsUpdate" json:"lastGpsUpdate"`
	CurrentLatitude  *float64     `bson:"currentLatitude" json:"currentLatitude"`
	CurrentLongitude *float64     `bson:"currentLongitude" json:"currentLongitude"`
	SpeedKmh         *float64     `bson:"speedKmh" json:"speedKmh"`
	BatteryLevel     *float64     `bson:"batteryLevel" json:"batteryLevel"`
	LastAssignmentID *string      `bson:"lastAssignmentId" json:"lastAssignmentId"`
	Notes            *string      `bson:"notes" json:"notes"`
	CreatedAt        time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// DriverSummary is the denormalized view embedded into expanded truck reads.
type DriverSummary struct {
	DriverID      string       `json:"driverId"`
	FullName      string       `json:"fullName"`
	PhoneNumber   string       `json:"phoneNumber"`
	Email         string       `json:"email"`
	CurrentStatus DriverStatus `json:"currentStatus"`
}

type DriverPatch struct {
	FullName         *string       `json:"fullName"`
	PhoneNumber      *string       `json:"phoneNumber"`
	Email            *string       `json:"email"`
	LicenseNumber    *string       `json:"licenseNumber"`
	AssignedTruckID  *string       `json:"assignedTruckId"`
	CurrentStatus    *DriverStatus `json:"currentStatus"`
	LastGpsUpdate    *time.Time    `json:"lastGpsUpdate"`
	CurrentLatitude  *float64      `json:"currentLatitude"`
	CurrentLongitude *float64      `json:"currentLongitude"`
	SpeedKmh         *float64      `json:"speedKmh"`
	BatteryLevel     *float64      `json:"batteryLevel"`
	LastAssignmentID *string       `json:"lastAssignmentId"`
	Notes            *string       `json:"notes"`
}
