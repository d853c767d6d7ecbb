// Package model defines the core planning data types shared across the
// engine: projects, sites, layers, map elements and flight settings.
// Types here carry no GIS dependencies; geometry construction lives in
// internal/geo.
package model

// Position is a 2D geographic coordinate in EPSG:4326.
type Position struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// GeometryKind tags the shape of a map element or drawing mode.
type GeometryKind string

const (
	KindMarker  GeometryKind = "marker"
	KindPolygon GeometryKind = "polygon"
	KindLine    GeometryKind = "line"
)

// LayerID identifies a map data layer within a site.
type LayerID string

const (
	LayerSiteSurvey LayerID = "siteSurvey"
	LayerFlightPlan LayerID = "flightPlan"
	LayerEmergency  LayerID = "emergency"
)

// AllLayers lists every layer in display order.
var AllLayers = []LayerID{LayerSiteSurvey, LayerFlightPlan, LayerEmergency}

// ElementType selects style and behavior for a map element.
type ElementType string

const (
	ElementSiteLocation       ElementType = "siteLocation"
	ElementOperationsBoundary ElementType = "operationsBoundary"
	ElementFlightGeography    ElementType = "flightGeography"
	ElementFlightPath         ElementType = "flightPath"
	ElementMusterPoint        ElementType = "musterPoint"
	ElementEvacuationRoute    ElementType = "evacuationRoute"
)

// MapElement is a single drawn feature on a site layer.
// Coordinates hold a point (one position), a linear ring (first/last equal)
// or a line string, depending on Kind.
type MapElement struct {
	ID          string       `json:"id"`
	Type        ElementType  `json:"elementType"`
	Kind        GeometryKind `json:"kind"`
	Coordinates []Position   `json:"coordinates"`
	Label       string       `json:"label,omitempty"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"isActive"`
	IsPrimary   bool         `json:"isPrimary,omitempty"`
}

// LayerData holds the element collections of one layer.
type LayerData struct {
	Markers  []MapElement `json:"markers"`
	Polygons []MapElement `json:"polygons"`
	Lines    []MapElement `json:"lines"`
}

// MapData is a site's full set of drawn features, keyed by layer.
type MapData map[LayerID]*LayerData

// SiteStatus is the operational status of a site.
type SiteStatus string

const (
	SiteStatusPlanning SiteStatus = "planning"
	SiteStatusActive   SiteStatus = "active"
	SiteStatusArchived SiteStatus = "archived"
)

// Site is one survey location within a project.
type Site struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Status  SiteStatus `json:"status"`
	MapData MapData    `json:"mapData"`
}

// MaxSitesPerProject caps the ordered site list of a project.
const MaxSitesPerProject = 10

// Project owns an ordered list of sites and tracks which one is active.
type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Sites        []Site `json:"sites"`
	ActiveSiteID string `json:"activeSiteId"`
}

// SiteIndex returns the position of a site in the project's ordered list,
// or -1 if the ID is not present.
func (p *Project) SiteIndex(siteID string) int {
	for i := range p.Sites {
		if p.Sites[i].ID == siteID {
			return i
		}
	}
	return -1
}

// NewMapData returns an empty MapData with every layer initialized.
func NewMapData() MapData {
	md := make(MapData, len(AllLayers))
	for _, l := range AllLayers {
		md[l] = &LayerData{}
	}
	return md
}
