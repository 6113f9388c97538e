package geo

import "math"

// earthRadius is the mean Earth radius in meters.
const earthRadius = 6371000.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance between two points in meters,
// using the haversine formula.
func Distance(a, b Point) float64 {
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

// Destination returns the point reached by traveling the given distance in
// meters from start along the given bearing in degrees. Used by test drivers
// to lay out synthetic routes.
func Destination(start Point, bearingDeg, distance float64) Point {
	lat1 := start.Lat * math.Pi / 180
	lon1 := start.Lon * math.Pi / 180
	bearing := bearingDeg * math.Pi / 180
	d := distance / earthRadius

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) +
		math.Cos(lat1)*math.Sin(d)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return Point{
		Lat: lat2 * 180 / math.Pi,
		Lon: lon2 * 180 / math.Pi,
	}
}
