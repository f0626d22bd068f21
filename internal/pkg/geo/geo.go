package geo

import "math"

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance between two coordinates in
// meters, using the haversine formula. Inputs are decimal degrees. The
// function is pure and never fails; callers are responsible for supplying
// sane coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Eligibility is the outcome of a geofence containment check. DistanceMeters
// is rounded to the nearest whole meter for display.
type Eligibility struct {
	Within         bool `json:"within"`
	DistanceMeters int  `json:"distance_meters"`
}

// WithinRadius reports whether a user coordinate falls inside the fence
// around an office coordinate. The boundary is inclusive: a distance exactly
// equal to the radius counts as inside.
func WithinRadius(userLat, userLon, officeLat, officeLon, radiusMeters float64) Eligibility {
	distance := Distance(userLat, userLon, officeLat, officeLon)
	return Eligibility{
		Within:         distance <= radiusMeters,
		DistanceMeters: int(math.Round(distance)),
	}
}
