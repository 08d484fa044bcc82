package geo

import "math"

const earthRadiusKm = 6371

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HaversineKm returns the great-circle distance between two coordinates in km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// DistanceKm is HaversineKm over Points.
func DistanceKm(a, b Point) float64 {
	return HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon)
}

// PathLengthKm sums the haversine distances between consecutive points.
// Fewer than two points yields zero.
func PathLengthKm(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(points); i++ {
		sum += DistanceKm(points[i-1], points[i])
	}
	return sum
}

// Midpoint returns the middle vertex of a path, the geometric
// representative used for clustering.
func Midpoint(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	return points[len(points)/2]
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
