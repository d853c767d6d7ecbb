package model

// ElementStyle describes how one element type is rendered.
type ElementStyle struct {
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillOpacity float64 `json:"fillOpacity"`
}

// ElementStyleTable maps element types to their render style. Static host
// configuration; the engine only reads it.
var ElementStyleTable = map[ElementType]ElementStyle{
	ElementSiteLocation:       {Color: "#2563eb", Icon: "pin", StrokeWidth: 2, FillOpacity: 1},
	ElementOperationsBoundary: {Color: "#f59e0b", Icon: "", StrokeWidth: 3, FillOpacity: 0.08},
	ElementFlightGeography:    {Color: "#10b981", Icon: "", StrokeWidth: 2, FillOpacity: 0.15},
	ElementFlightPath:         {Color: "#8b5cf6", Icon: "", StrokeWidth: 2, FillOpacity: 0},
	ElementMusterPoint:        {Color: "#ef4444", Icon: "flag", StrokeWidth: 2, FillOpacity: 1},
	ElementEvacuationRoute:    {Color: "#ef4444", Icon: "", StrokeWidth: 3, FillOpacity: 0},
}

// Basemap is one selectable base style for the map engine.
type Basemap struct {
	Label    string `json:"label"`
	StyleURL string `json:"styleUrl"`
}

// BasemapTable lists the basemaps offered by the host application.
var BasemapTable = map[string]Basemap{
	"streets":   {Label: "Streets", StyleURL: "mapbox://styles/mapbox/streets-v12"},
	"satellite": {Label: "Satellite", StyleURL: "mapbox://styles/mapbox/satellite-streets-v12"},
	"outdoors":  {Label: "Outdoors", StyleURL: "mapbox://styles/mapbox/outdoors-v12"},
}

// LayerInfo labels a data layer for display.
type LayerInfo struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// LayerTable labels the data layers for display.
var LayerTable = map[LayerID]LayerInfo{
	LayerSiteSurvey: {Label: "Site Survey", Color: "#2563eb"},
	LayerFlightPlan: {Label: "Flight Plan", Color: "#10b981"},
	LayerEmergency:  {Label: "Emergency", Color: "#ef4444"},
}
