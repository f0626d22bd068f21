package geofence

import "time"

// Radius bounds in meters
const (
	DefaultRadiusMeters = 500
	MinRadiusMeters     = 50
	MaxRadiusMeters     = 5000
)

type OfficeLocation struct {
	ID           string
	Name         string
	Address      *string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Settings holds the geofence master switch. When disabled, check-ins skip
// the distance gate entirely.
type Settings struct {
	Enabled   bool
	UpdatedAt time.Time
}
