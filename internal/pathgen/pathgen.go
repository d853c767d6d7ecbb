// Package pathgen synthesizes ordered waypoint sequences from drawn
// geometries: grid (area fill), corridor (linear inspection), perimeter
// (boundary survey) and manual paths. All generators are pure functions of
// (geometry, settings).
//
// Planar math runs in EPSG:3857. Ground spacings are scaled by the Mercator
// length distortion at the geometry's centroid latitude, so waypoint
// spacing is true meters on the ground; outputs are unprojected back to
// EPSG:4326.
package pathgen

import (
	"errors"
	"math"

	"github.com/skygrid/planner/internal/geo"
	"github.com/skygrid/planner/internal/model"
)

// ErrInvalidSettings is returned for non-positive spacings or widths.
var ErrInvalidSettings = errors.New("invalid path settings")

// ErrInvalidGeometry is returned when the source geometry cannot form the
// required shape.
var ErrInvalidGeometry = errors.New("invalid source geometry")

// rotate rotates p around origin by rad radians (counterclockwise).
func rotate(p, origin geo.XY, rad float64) geo.XY {
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-origin.X, p.Y-origin.Y
	return geo.XY{
		X: origin.X + dx*cos - dy*sin,
		Y: origin.Y + dx*sin + dy*cos,
	}
}

func planarDist(a, b geo.XY) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// resample walks a planar polyline emitting a point at every spacing
// interval, starting with the first vertex. The final vertex is always
// included so the path reaches the end of the feature.
func resample(line []geo.XY, spacing float64) []geo.XY {
	if len(line) == 0 {
		return nil
	}
	out := []geo.XY{line[0]}
	carry := 0.0
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		segLen := planarDist(a, b)
		if segLen == 0 {
			continue
		}
		pos := spacing - carry
		for pos <= segLen {
			t := pos / segLen
			out = append(out, geo.XY{
				X: a.X + (b.X-a.X)*t,
				Y: a.Y + (b.Y-a.Y)*t,
			})
			pos += spacing
		}
		carry = segLen - (pos - spacing)
	}
	last := line[len(line)-1]
	if planarDist(out[len(out)-1], last) > 1e-9 {
		out = append(out, last)
	}
	return out
}

// waypointsFromPlanar unprojects planar points and attaches altitude and
// speed from settings.
func waypointsFromPlanar(pts []geo.XY, altitude, speed float64) []model.Waypoint {
	wps := make([]model.Waypoint, len(pts))
	for i, p := range pts {
		pos := geo.FromWebMercator(p)
		wps[i] = model.Waypoint{
			Lng:      pos.Lng,
			Lat:      pos.Lat,
			Altitude: altitude,
			Speed:    speed,
		}
	}
	return wps
}

// AppendManual appends a user-clicked waypoint to a manual path, preserving
// click order. No spacing constraint applies.
func AppendManual(path []model.Waypoint, p model.Position, altitude, speed float64) []model.Waypoint {
	return append(path, model.Waypoint{
		Lng:      p.Lng,
		Lat:      p.Lat,
		Altitude: altitude,
		Speed:    speed,
	})
}
