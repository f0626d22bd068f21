package geo

import (
	"math"
	"testing"
)

func TestDistance_SamePoint(t *testing.T) {
	cases := []struct {
		lat, lon float64
	}{
		{0, 0},
		{28.6139, 77.2090},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}
	for _, c := range cases {
		if d := Distance(c.lat, c.lon, c.lat, c.lon); d != 0 {
			t.Errorf("Distance(%v, %v -> same point) = %v, want 0", c.lat, c.lon, d)
		}
	}
}

func TestDistance_Symmetry(t *testing.T) {
	lat1, lon1 := 28.6139, 77.2090
	lat2, lon2 := 19.0760, 72.8777

	d1 := Distance(lat1, lon1, lat2, lon2)
	d2 := Distance(lat2, lon2, lat1, lon1)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Distance is not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// 0.01 degrees of latitude is ~1112 m on the reference sphere.
	d := Distance(28.6139, 77.2090, 28.6239, 77.2090)
	if d < 1100 || d > 1125 {
		t.Errorf("Distance(0.01 deg north) = %v, want ~1112", d)
	}
}

func TestWithinRadius_IdenticalPoint(t *testing.T) {
	res := WithinRadius(28.6139, 77.2090, 28.6139, 77.2090, 500)
	if !res.Within {
		t.Error("identical point should be within any positive radius")
	}
	if res.DistanceMeters != 0 {
		t.Errorf("DistanceMeters = %d, want 0", res.DistanceMeters)
	}
}

func TestWithinRadius_OutsideFence(t *testing.T) {
	// ~1112 m north of the office, fence of 500 m.
	res := WithinRadius(28.6239, 77.2090, 28.6139, 77.2090, 500)
	if res.Within {
		t.Error("point ~1112 m away should be outside a 500 m fence")
	}
	if res.DistanceMeters < 1100 || res.DistanceMeters > 1125 {
		t.Errorf("DistanceMeters = %d, want ~1112", res.DistanceMeters)
	}
}

func TestWithinRadius_BoundaryInclusive(t *testing.T) {
	officeLat, officeLon := 28.6139, 77.2090
	userLat, userLon := 28.6239, 77.2090
	d := Distance(userLat, userLon, officeLat, officeLon)

	// Exactly at the fence edge counts as inside.
	at := WithinRadius(userLat, userLon, officeLat, officeLon, d)
	if !at.Within {
		t.Error("distance exactly equal to radius should be within")
	}

	just := WithinRadius(userLat, userLon, officeLat, officeLon, d-1)
	if just.Within {
		t.Error("distance one meter beyond the radius should not be within")
	}
}
