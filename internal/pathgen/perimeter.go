package pathgen

import (
	"github.com/skygrid/planner/internal/geo"
	"github.com/skygrid/planner/internal/model"
)

// Perimeter generates a boundary-survey path by resampling a polygon's
// exterior ring at the given ground spacing, in ring order, closing the
// loop back onto the first waypoint.
func Perimeter(polygon []model.Position, spacingMeters, altitudeMeters, speedMps float64) ([]model.Waypoint, error) {
	if spacingMeters <= 0 {
		return nil, ErrInvalidSettings
	}
	if _, err := geo.PolygonFromRing(polygon); err != nil {
		return nil, ErrInvalidGeometry
	}

	ring := geo.CloseRing(polygon)
	anchor := geo.Centroid2D(ring)
	scale := geo.MercatorScaleFactor(anchor.Lat)

	planar := geo.ProjectAll(ring)
	pts := resample(planar, spacingMeters*scale)

	// resample already ends on the ring's last vertex, which equals the
	// first; the loop closure comes for free.
	return waypointsFromPlanar(pts, altitudeMeters, speedMps), nil
}
