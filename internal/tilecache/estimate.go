package tilecache

import "github.com/skygrid/planner/internal/viewport"

// DefaultAverageTileBytes is the assumed storage cost per tile when the
// host supplies no measurement.
const DefaultAverageTileBytes = 25 * 1024

// Estimate summarizes the cost of caching a viewport across a zoom range.
type Estimate struct {
	TileCount      int   `json:"tileCount"`
	EstimatedBytes int64 `json:"estimatedBytes"`
}

// EstimateBounds sums tile counts at each zoom level from minZoom to
// maxZoom inclusive and multiplies by the average tile size.
func EstimateBounds(b viewport.Bounds, minZoom, maxZoom int, avgTileBytes int64) Estimate {
	if avgTileBytes <= 0 {
		avgTileBytes = DefaultAverageTileBytes
	}
	var count int
	for z := minZoom; z <= maxZoom; z++ {
		count += RangeForBounds(b, z).Count()
	}
	return Estimate{
		TileCount:      count,
		EstimatedBytes: int64(count) * avgTileBytes,
	}
}
