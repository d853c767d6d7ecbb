package pathgen

import (
	"math"

	"github.com/skygrid/planner/internal/geo"
	"github.com/skygrid/planner/internal/model"
)

// Corridor generates an out-and-back inspection path along a drawn line.
// Two parallel offset lines are built at ±width from the source line, each
// resampled at the waypoint spacing, and stitched into one continuous pass:
// the outbound leg follows the left offset in line direction, the return
// leg follows the right offset from the far end back to the start (nearest
// endpoint stitching at the corridor's far end).
func Corridor(line []model.Position, settings model.CorridorSettings) ([]model.Waypoint, error) {
	if settings.WidthMeters <= 0 || settings.WaypointSpacingMeters <= 0 {
		return nil, ErrInvalidSettings
	}
	if _, err := geo.LineStringFromPositions(line); err != nil {
		return nil, ErrInvalidGeometry
	}

	anchor := geo.Centroid2D(line)
	scale := geo.MercatorScaleFactor(anchor.Lat)
	width := settings.WidthMeters * scale
	spacing := settings.WaypointSpacingMeters * scale

	planar := geo.ProjectAll(line)
	left := offsetPolyline(planar, width)
	right := offsetPolyline(planar, -width)

	outbound := resample(left, spacing)
	ret := resample(right, spacing)
	reverseXY(ret)

	pts := append(outbound, ret...)
	return waypointsFromPlanar(pts, settings.AltitudeMeters, settings.SpeedMps), nil
}

// offsetPolyline shifts each vertex perpendicular to the line by dist
// (positive = left of travel direction), using the averaged normal of the
// adjacent segments at interior vertices (miter joins).
func offsetPolyline(line []geo.XY, dist float64) []geo.XY {
	n := len(line)
	out := make([]geo.XY, n)
	for i := 0; i < n; i++ {
		var nx, ny float64
		if i > 0 {
			sx, sy := segNormal(line[i-1], line[i])
			nx += sx
			ny += sy
		}
		if i < n-1 {
			sx, sy := segNormal(line[i], line[i+1])
			nx += sx
			ny += sy
		}
		mag := math.Hypot(nx, ny)
		if mag > 0 {
			nx /= mag
			ny /= mag
		}
		out[i] = geo.XY{X: line[i].X + nx*dist, Y: line[i].Y + ny*dist}
	}
	return out
}

// segNormal returns the unit left normal of segment a->b.
func segNormal(a, b geo.XY) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	mag := math.Hypot(dx, dy)
	if mag == 0 {
		return 0, 0
	}
	return -dy / mag, dx / mag
}

func reverseXY(pts []geo.XY) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
