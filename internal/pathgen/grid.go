package pathgen

import (
	"math"
	"sort"

	"github.com/skygrid/planner/internal/geo"
	"github.com/skygrid/planner/internal/model"
)

// Grid generates a boustrophedon ("lawnmower") area-fill path over a simple
// polygon. The polygon's bounding frame is rotated by the settings angle,
// parallel scan lines are laid across it at the ground spacing, each line is
// clipped to the polygon, and the surviving segments are ordered in
// alternating direction so consecutive lines connect end-to-start.
//
// A polygon narrower than the spacing yields an empty waypoint list, not an
// error.
func Grid(polygon []model.Position, settings model.GridSettings) ([]model.Waypoint, error) {
	if settings.SpacingMeters <= 0 {
		return nil, ErrInvalidSettings
	}
	if settings.AngleDegrees < 0 || settings.AngleDegrees >= 180 {
		return nil, ErrInvalidSettings
	}
	// Validate the ring before doing any math.
	if _, err := geo.PolygonFromRing(polygon); err != nil {
		return nil, ErrInvalidGeometry
	}

	ring := geo.CloseRing(polygon)
	anchor := geo.Centroid2D(ring)
	scale := geo.MercatorScaleFactor(anchor.Lat)
	spacing := settings.SpacingMeters * scale

	origin := geo.ToWebMercator(anchor)
	rad := settings.AngleDegrees * math.Pi / 180

	// Rotate the ring so the requested flight direction becomes horizontal.
	rotated := make([]geo.XY, len(ring))
	for i, c := range ring {
		rotated[i] = rotate(geo.ToWebMercator(c), origin, -rad)
	}

	minY, maxY := rotated[0].Y, rotated[0].Y
	for _, p := range rotated[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	var segments [][2]geo.XY
	row := 0
	for y := minY; y <= maxY+1e-9; y += spacing {
		xs := scanCrossings(rotated, y)
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		rowSegs := make([][2]geo.XY, 0, len(xs)/2)
		for i := 0; i+1 < len(xs); i += 2 {
			rowSegs = append(rowSegs, [2]geo.XY{
				{X: xs[i], Y: y},
				{X: xs[i+1], Y: y},
			})
		}
		// Boustrophedon: odd rows run right-to-left, and their segments are
		// visited in reverse so the path always resumes near where the
		// previous row ended.
		if row%2 == 1 {
			for i, j := 0, len(rowSegs)-1; i < j; i, j = i+1, j-1 {
				rowSegs[i], rowSegs[j] = rowSegs[j], rowSegs[i]
			}
			for i := range rowSegs {
				rowSegs[i][0], rowSegs[i][1] = rowSegs[i][1], rowSegs[i][0]
			}
		}
		segments = append(segments, rowSegs...)
		row++
	}

	if len(segments) == 0 {
		return []model.Waypoint{}, nil
	}

	pts := make([]geo.XY, 0, len(segments)*2)
	for _, seg := range segments {
		pts = append(pts,
			rotate(seg[0], origin, rad),
			rotate(seg[1], origin, rad),
		)
	}
	return waypointsFromPlanar(pts, settings.AltitudeMeters, settings.SpeedMps), nil
}

// scanCrossings returns the x coordinates where the horizontal line at y
// crosses the ring's edges. Each edge is treated half-open on its y range
// ([min,max)), so a scan line through a shared vertex or a boundary-aligned
// edge produces exactly one crossing pair per interior span.
func scanCrossings(ring []geo.XY, y float64) []float64 {
	var xs []float64
	for i := 1; i < len(ring); i++ {
		a, b := ring[i-1], ring[i]
		if a.Y == b.Y {
			continue // horizontal edge, covered by its neighbors
		}
		lo, hi := a, b
		if lo.Y > hi.Y {
			lo, hi = hi, lo
		}
		if y < lo.Y || y >= hi.Y {
			continue
		}
		t := (y - lo.Y) / (hi.Y - lo.Y)
		xs = append(xs, lo.X+(hi.X-lo.X)*t)
	}
	return xs
}
