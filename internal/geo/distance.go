package geo

import (
	"math"

	"github.com/skygrid/planner/internal/model"
)

// earthRadiusMeters is the WGS84 mean earth radius.
const earthRadiusMeters = 6371008.8

// Haversine returns the great-circle distance in meters between two 4326
// positions.
func Haversine(a, b model.Position) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// PathLength returns the sum of great-circle leg distances along a
// coordinate sequence. Fewer than 2 positions yields 0.
func PathLength(coords []model.Position) float64 {
	var total float64
	for i := 1; i < len(coords); i++ {
		total += Haversine(coords[i-1], coords[i])
	}
	return total
}

// MercatorScaleFactor returns the local length distortion of EPSG:3857 at
// the given latitude: planar distances divide by this factor to obtain
// ground meters.
func MercatorScaleFactor(lat float64) float64 {
	return 1 / math.Cos(lat*math.Pi/180)
}
