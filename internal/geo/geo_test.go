package geo

import (
	"math"
	"testing"

	"github.com/skygrid/planner/internal/model"
)

func TestHaversine_OneDegreeAtEquator(t *testing.T) {
	a := model.Position{Lng: 0, Lat: 0}
	b := model.Position{Lng: 1, Lat: 0}

	got := Haversine(a, b)
	want := 2 * math.Pi * earthRadiusMeters / 360

	if math.Abs(got-want) > 1 {
		t.Errorf("Haversine(0°,1°) = %f, want %f", got, want)
	}
}

func TestHaversine_ZeroDistance(t *testing.T) {
	p := model.Position{Lng: 4.47, Lat: 51.92}
	if got := Haversine(p, p); got != 0 {
		t.Errorf("Haversine(p,p) = %f, want 0", got)
	}
}

func TestPathLength(t *testing.T) {
	if got := PathLength(nil); got != 0 {
		t.Errorf("PathLength(nil) = %f, want 0", got)
	}
	if got := PathLength([]model.Position{{Lng: 1, Lat: 1}}); got != 0 {
		t.Errorf("PathLength(single) = %f, want 0", got)
	}

	coords := []model.Position{
		{Lng: 0, Lat: 0},
		{Lng: 0.001, Lat: 0},
		{Lng: 0.001, Lat: 0.001},
	}
	want := Haversine(coords[0], coords[1]) + Haversine(coords[1], coords[2])
	if got := PathLength(coords); math.Abs(got-want) > 1e-9 {
		t.Errorf("PathLength = %f, want %f", got, want)
	}
}

func TestMercatorScaleFactor(t *testing.T) {
	if got := MercatorScaleFactor(0); math.Abs(got-1) > 1e-12 {
		t.Errorf("scale at equator = %f, want 1", got)
	}
	if got := MercatorScaleFactor(60); math.Abs(got-2) > 1e-9 {
		t.Errorf("scale at 60° = %f, want 2", got)
	}
}

func TestWebMercatorRoundTrip(t *testing.T) {
	p := model.Position{Lng: 4.4700, Lat: 51.9200}
	got := FromWebMercator(ToWebMercator(p))

	if math.Abs(got.Lng-p.Lng) > 1e-6 || math.Abs(got.Lat-p.Lat) > 1e-6 {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestCloseRing(t *testing.T) {
	open := []model.Position{
		{Lng: 0, Lat: 0},
		{Lng: 1, Lat: 0},
		{Lng: 1, Lat: 1},
	}
	closed := CloseRing(open)
	if len(closed) != 4 {
		t.Fatalf("closed ring has %d positions, want 4", len(closed))
	}
	if closed[0] != closed[3] {
		t.Errorf("ring not closed: first %+v, last %+v", closed[0], closed[3])
	}
	if len(open) != 3 {
		t.Errorf("input slice was mutated, len = %d", len(open))
	}

	// already closed rings pass through unchanged
	again := CloseRing(closed)
	if len(again) != 4 {
		t.Errorf("re-closing changed length to %d", len(again))
	}

	if got := CloseRing(nil); got != nil {
		t.Errorf("CloseRing(nil) = %v, want nil", got)
	}
}

func TestPointFromPosition(t *testing.T) {
	pt, err := PointFromPosition(model.Position{Lng: 4.47, Lat: 51.92})
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	coord, ok := pt.Coordinates()
	if !ok {
		t.Fatal("point has no coordinates")
	}
	if coord.X != 4.47 || coord.Y != 51.92 {
		t.Errorf("point = %+v, want (4.47, 51.92)", coord.XY)
	}
}

func TestLineStringFromPositions(t *testing.T) {
	_, err := LineStringFromPositions([]model.Position{{Lng: 1, Lat: 1}})
	if err != ErrInsufficientCoordinates {
		t.Errorf("single point: err = %v, want ErrInsufficientCoordinates", err)
	}

	ls, err := LineStringFromPositions([]model.Position{
		{Lng: 0, Lat: 0},
		{Lng: 1, Lat: 1},
	})
	if err != nil {
		t.Fatalf("2-point line: err = %v, want nil", err)
	}
	if n := ls.Coordinates().Length(); n != 2 {
		t.Errorf("line has %d coordinates, want 2", n)
	}
}

func TestPolygonFromRing(t *testing.T) {
	_, err := PolygonFromRing([]model.Position{
		{Lng: 0, Lat: 0},
		{Lng: 1, Lat: 0},
	})
	if err != ErrInsufficientCoordinates {
		t.Errorf("2-point ring: err = %v, want ErrInsufficientCoordinates", err)
	}

	_, err = PolygonFromRing([]model.Position{
		{Lng: 0, Lat: 0},
		{Lng: 1, Lat: 0},
		{Lng: 1, Lat: 1},
	})
	if err != nil {
		t.Errorf("3-point ring: err = %v, want nil", err)
	}
}

func TestCentroid2D(t *testing.T) {
	got := Centroid2D([]model.Position{
		{Lng: 0, Lat: 0},
		{Lng: 2, Lat: 0},
		{Lng: 2, Lat: 2},
		{Lng: 0, Lat: 2},
	})
	if math.Abs(got.Lng-1) > 1e-12 || math.Abs(got.Lat-1) > 1e-12 {
		t.Errorf("centroid = %+v, want (1,1)", got)
	}

	if got := Centroid2D(nil); got != (model.Position{}) {
		t.Errorf("centroid of empty = %+v, want zero", got)
	}
}
