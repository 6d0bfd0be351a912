package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineKm calculates the great-circle distance between two points in
// kilometers using the Haversine formula (Earth radius 6371 km).
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// MovementDistanceKm returns the distance for a movement whose endpoint
// coordinates may be missing. A missing endpoint yields 0, not an absent
// value: downstream aggregations sum plain numbers.
func MovementDistanceKm(fromLat, fromLon, toLat, toLon float64, fromOK, toOK bool) float64 {
	if !fromOK || !toOK {
		return 0
	}
	return HaversineKm(fromLat, fromLon, toLat, toLon)
}
