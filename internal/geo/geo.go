// Package geo provides geometry construction and coordinate math for the
// planning engine. Positions are EPSG:4326 ([lng,lat], GeoJSON axis order);
// planar algorithms project into EPSG:3857 and back.
package geo

import (
	"errors"
	"fmt"

	"github.com/skygrid/planner/internal/model"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// ErrInsufficientCoordinates is returned when a geometry has too few points
// for its kind.
var ErrInsufficientCoordinates = errors.New("insufficient coordinates for geometry")

// PointFromPosition builds a simplefeatures point from a position.
func PointFromPosition(p model.Position) (geom.Point, error) {
	pt, err := geom.NewPoint(geom.Coordinates{
		XY: geom.XY{X: p.Lng, Y: p.Lat},
	})
	if err != nil {
		return geom.Point{}, fmt.Errorf("building point: %w", err)
	}
	return pt, nil
}

// LineStringFromPositions builds a simplefeatures line string.
// At least 2 positions are required.
func LineStringFromPositions(coords []model.Position) (geom.LineString, error) {
	if len(coords) < 2 {
		return geom.LineString{}, ErrInsufficientCoordinates
	}
	flat := make([]float64, 0, len(coords)*2)
	for _, c := range coords {
		flat = append(flat, c.Lng, c.Lat)
	}
	seq := geom.NewSequence(flat, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("building line string: %w", err)
	}
	return ls, nil
}

// PolygonFromRing builds a simplefeatures polygon from an exterior ring.
// The ring is closed automatically if the first and last positions differ.
// At least 3 distinct positions are required.
func PolygonFromRing(coords []model.Position) (geom.Polygon, error) {
	ring := CloseRing(coords)
	if len(ring) < 4 {
		return geom.Polygon{}, ErrInsufficientCoordinates
	}
	ls, err := LineStringFromPositions(ring)
	if err != nil {
		return geom.Polygon{}, err
	}
	poly, err := geom.NewPolygon([]geom.LineString{ls})
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("building polygon: %w", err)
	}
	return poly, nil
}

// CloseRing returns coords with the first position appended when the ring is
// not already closed. The input slice is never mutated.
func CloseRing(coords []model.Position) []model.Position {
	if len(coords) == 0 {
		return nil
	}
	first, last := coords[0], coords[len(coords)-1]
	closed := make([]model.Position, len(coords), len(coords)+1)
	copy(closed, coords)
	if first != last {
		closed = append(closed, first)
	}
	return closed
}

// XY is a planar EPSG:3857 coordinate in meters.
type XY struct {
	X float64
	Y float64
}

// ToWebMercator projects a 4326 position into 3857 planar meters.
func ToWebMercator(p model.Position) XY {
	f := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ := f(p.Lng, p.Lat, 0)
	return XY{X: x, Y: y}
}

// FromWebMercator unprojects a 3857 planar coordinate back to 4326.
func FromWebMercator(xy XY) model.Position {
	f := wgs84.EPSG().Transform(3857, 4326)
	lng, lat, _ := f(xy.X, xy.Y, 0)
	return model.Position{Lng: lng, Lat: lat}
}

// ProjectAll projects a coordinate slice into 3857.
func ProjectAll(coords []model.Position) []XY {
	out := make([]XY, len(coords))
	for i, c := range coords {
		out[i] = ToWebMercator(c)
	}
	return out
}

// Centroid2D returns the arithmetic mean of a coordinate slice. Good enough
// as a rotation/scale anchor; not a polygon area centroid.
func Centroid2D(coords []model.Position) model.Position {
	if len(coords) == 0 {
		return model.Position{}
	}
	var sLng, sLat float64
	for _, c := range coords {
		sLng += c.Lng
		sLat += c.Lat
	}
	n := float64(len(coords))
	return model.Position{Lng: sLng / n, Lat: sLat / n}
}
