// Package geo holds the pure distance math shared by the incident
// store pre-filter and the red-zone aggregator.
package geo

import "math"

const (
	earthRadiusMeters = 6371000.0

	// length of one degree of latitude in km; longitude shrinks by
	// cos(lat) away from the equator
	kmPerDegree = 111.32
)

// HaversineMeters returns the great-circle distance between two
// lat/lng points in meters.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// BoundingBoxDelta converts a radius in kilometers into degree deltas
// around a point at the given latitude. The box is a deliberately
// loose pre-filter: it must never exclude a point that is actually
// inside the radius, so near the poles the longitude delta widens to
// the full circle instead of blowing up through cos(lat).
func BoundingBoxDelta(radiusKm, atLat float64) (latDelta, lngDelta float64) {
	latDelta = radiusKm / kmPerDegree

	cosLat := math.Cos(deg2rad(atLat))
	if cosLat < 1e-6 {
		return latDelta, 180
	}
	lngDelta = radiusKm / (kmPerDegree * cosLat)
	if lngDelta > 180 {
		lngDelta = 180
	}
	return latDelta, lngDelta
}

// LngRanges expands lng ± delta into longitude intervals that stay
// inside [-180, 180], splitting into two when the span crosses the
// antimeridian. The second interval comes back inverted (low > high,
// matching nothing) when no split is needed, so callers can always
// test both.
func LngRanges(lng, delta float64) (lo1, hi1, lo2, hi2 float64) {
	if delta >= 180 {
		return -180, 180, 1, 0
	}

	lo, hi := lng-delta, lng+delta
	switch {
	case lo < -180:
		return -180, hi, lo + 360, 180
	case hi > 180:
		return lo, 180, -180, hi - 360
	default:
		return lo, hi, 1, 0
	}
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
