package geodata

import "github.com/skygrid/planner/internal/model"

// hueStepDegrees separates per-site display hues when several sites are
// shown together.
const hueStepDegrees = 60

// VisibleElement is a read-model projection of one element annotated with
// its site, layer and display hue.
type VisibleElement struct {
	SiteID  string
	Layer   model.LayerID
	Hue     int // degrees, derived from site order
	Element model.MapElement
}

// ListVisible returns the union of markers, polygons and lines across all
// allowed layers whose visibility flag is true, over every registered site.
// Pure projection: no side effects, insertion order preserved within each
// collection.
func (s *Store) ListVisible(allowed []model.LayerID, visible map[model.LayerID]bool) []VisibleElement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []VisibleElement
	for siteIdx, siteID := range s.order {
		md := s.sites[siteID]
		hue := (siteIdx * hueStepDegrees) % 360
		for _, layer := range allowed {
			if !visible[layer] {
				continue
			}
			ld, ok := md[layer]
			if !ok {
				continue
			}
			for _, coll := range [][]model.MapElement{ld.Markers, ld.Polygons, ld.Lines} {
				for _, el := range coll {
					out = append(out, VisibleElement{
						SiteID:  siteID,
						Layer:   layer,
						Hue:     hue,
						Element: el,
					})
				}
			}
		}
	}
	return out
}
