// Package geojson encodes planning geometries as GeoJSON for map-engine
// sources and host exports. Points are [lng,lat]; polygons are arrays of
// closed linear rings.
package geojson

import "encoding/json"

// Geometry is a GeoJSON geometry object.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties,omitempty"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewPoint builds a Point geometry from a [lng,lat] pair.
func NewPoint(lng, lat float64) Geometry {
	coords, _ := json.Marshal([2]float64{lng, lat})
	return Geometry{Type: "Point", Coordinates: coords}
}

// NewLineString builds a LineString geometry from [lng,lat] pairs.
func NewLineString(coords [][2]float64) Geometry {
	raw, _ := json.Marshal(coords)
	return Geometry{Type: "LineString", Coordinates: raw}
}

// NewPolygon builds a Polygon geometry from a single closed exterior ring.
func NewPolygon(ring [][2]float64) Geometry {
	raw, _ := json.Marshal([][][2]float64{ring})
	return Geometry{Type: "Polygon", Coordinates: raw}
}

// NewFeature wraps a geometry with properties.
func NewFeature(g Geometry, props map[string]any) Feature {
	return Feature{Type: "Feature", Geometry: g, Properties: props}
}

// NewFeatureCollection wraps features in a collection.
func NewFeatureCollection(features ...Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
