package geojson

import (
	"encoding/json"

	"github.com/skygrid/planner/internal/model"
)

// FromElement converts a map element into a GeoJSON feature. Element type,
// label and designation travel in the properties bag.
func FromElement(el model.MapElement) Feature {
	props := map[string]any{
		"id":          el.ID,
		"elementType": string(el.Type),
	}
	if el.Label != "" {
		props["label"] = el.Label
	}
	if el.Description != "" {
		props["description"] = el.Description
	}
	if el.IsPrimary {
		props["isPrimary"] = true
	}

	var g Geometry
	switch el.Kind {
	case model.KindMarker:
		if len(el.Coordinates) > 0 {
			g = NewPoint(el.Coordinates[0].Lng, el.Coordinates[0].Lat)
		}
	case model.KindPolygon:
		g = NewPolygon(pairs(el.Coordinates))
	case model.KindLine:
		g = NewLineString(pairs(el.Coordinates))
	}
	return NewFeature(g, props)
}

// FromWaypoints converts a waypoint path into a LineString feature carrying
// per-waypoint altitude and speed in the properties bag.
func FromWaypoints(wps []model.Waypoint) Feature {
	coords := make([][2]float64, len(wps))
	alts := make([]float64, len(wps))
	speeds := make([]float64, len(wps))
	for i, wp := range wps {
		coords[i] = [2]float64{wp.Lng, wp.Lat}
		alts[i] = wp.Altitude
		speeds[i] = wp.Speed
	}
	return NewFeature(NewLineString(coords), map[string]any{
		"elementType": string(model.ElementFlightPath),
		"altitudes":   alts,
		"speeds":      speeds,
	})
}

// Marshal renders any GeoJSON value as a compact JSON byte slice.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func pairs(coords []model.Position) [][2]float64 {
	out := make([][2]float64, len(coords))
	for i, c := range coords {
		out[i] = [2]float64{c.Lng, c.Lat}
	}
	return out
}
