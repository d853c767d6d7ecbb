// Package tilecache estimates and performs offline caching of slippy-map
// tiles for a viewport and zoom range. Fetching is cancellable and
// failure-tolerant; stored tiles survive cancellation.
package tilecache

import (
	"math"

	"github.com/skygrid/planner/internal/viewport"
)

// Tile addresses one slippy-map tile.
type Tile struct {
	Zoom int
	X    int
	Y    int
}

// TileXY returns the tile column/row containing the coordinate at the given
// zoom, using standard Web Mercator tile math.
func TileXY(lng, lat float64, zoom int) (x, y int) {
	n := math.Exp2(float64(zoom))
	x = int(math.Floor((lng + 180) / 360 * n))
	latRad := lat * math.Pi / 180
	y = int(math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n))

	max := int(n) - 1
	x = clamp(x, 0, max)
	y = clamp(y, 0, max)
	return x, y
}

// Range is the inclusive tile rectangle covering a bounds at one zoom.
type Range struct {
	Zoom int
	MinX int
	MaxX int
	MinY int
	MaxY int
}

// Count returns the number of tiles in the range.
func (r Range) Count() int {
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}

// RangeForBounds returns the tile rectangle covering the bounds at zoom.
// Tile rows grow southward, so the north edge gives MinY.
func RangeForBounds(b viewport.Bounds, zoom int) Range {
	minX, maxY := TileXY(b.MinLng, b.MinLat, zoom)
	maxX, minY := TileXY(b.MaxLng, b.MaxLat, zoom)
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Range{Zoom: zoom, MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
