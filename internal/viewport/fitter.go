// Package viewport computes bounding boxes over site geometry. The caller
// (map render bridge) translates bounds into camera moves; nothing here
// touches the map engine.
package viewport

import "github.com/skygrid/planner/internal/model"

// PaddingFraction expands fitted bounds on each side so elements don't
// touch the viewport edge.
const PaddingFraction = 0.1

// Bounds is an axis-aligned box in EPSG:4326.
type Bounds struct {
	MinLng float64 `json:"minLng"`
	MinLat float64 `json:"minLat"`
	MaxLng float64 `json:"maxLng"`
	MaxLat float64 `json:"maxLat"`
}

// Extend grows the bounds to include p.
func (b *Bounds) Extend(p model.Position) {
	if p.Lng < b.MinLng {
		b.MinLng = p.Lng
	}
	if p.Lng > b.MaxLng {
		b.MaxLng = p.Lng
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
}

// Union merges two bounds.
func (b Bounds) Union(o Bounds) Bounds {
	out := b
	out.Extend(model.Position{Lng: o.MinLng, Lat: o.MinLat})
	out.Extend(model.Position{Lng: o.MaxLng, Lat: o.MaxLat})
	return out
}

// Contains reports whether p lies inside the bounds (inclusive).
func (b Bounds) Contains(p model.Position) bool {
	return p.Lng >= b.MinLng && p.Lng <= b.MaxLng &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// pad expands the bounds by PaddingFraction of each dimension per side.
func (b Bounds) pad() Bounds {
	dLng := (b.MaxLng - b.MinLng) * PaddingFraction
	dLat := (b.MaxLat - b.MinLat) * PaddingFraction
	return Bounds{
		MinLng: b.MinLng - dLng,
		MinLat: b.MinLat - dLat,
		MaxLng: b.MaxLng + dLng,
		MaxLat: b.MaxLat + dLat,
	}
}

// BoundsForSite returns the padded bounding box over every coordinate in
// every element of the site, across all layers regardless of visibility.
// ok is false when the site has no geometry.
func BoundsForSite(site model.Site) (Bounds, bool) {
	var b Bounds
	seeded := false
	for _, ld := range site.MapData {
		if ld == nil {
			continue
		}
		for _, coll := range [][]model.MapElement{ld.Markers, ld.Polygons, ld.Lines} {
			for _, el := range coll {
				for _, c := range el.Coordinates {
					if !seeded {
						b = Bounds{MinLng: c.Lng, MinLat: c.Lat, MaxLng: c.Lng, MaxLat: c.Lat}
						seeded = true
						continue
					}
					b.Extend(c)
				}
			}
		}
	}
	if !seeded {
		return Bounds{}, false
	}
	return b.pad(), true
}

// BoundsForAllSites returns the union of each site's padded bounds.
// ok is false when no site has geometry.
func BoundsForAllSites(sites []model.Site) (Bounds, bool) {
	var out Bounds
	seeded := false
	for _, site := range sites {
		b, ok := BoundsForSite(site)
		if !ok {
			continue
		}
		if !seeded {
			out = b
			seeded = true
			continue
		}
		out = out.Union(b)
	}
	return out, seeded
}
