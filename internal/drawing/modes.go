package drawing

import "github.com/skygrid/planner/internal/model"

// ModeID identifies a drawing mode.
type ModeID string

const (
	ModeNone               ModeID = "none"
	ModeSiteLocation       ModeID = "siteLocation"
	ModeOperationsBoundary ModeID = "operationsBoundary"
	ModeFlightGeography    ModeID = "flightGeography"
	ModeMusterPoint        ModeID = "musterPoint"
	ModeEvacuationRoute    ModeID = "evacuationRoute"
)

// Mode declares the geometry kind, target layer and completion rule of one
// drawing mode.
type Mode struct {
	ID          ModeID
	Layer       model.LayerID
	ElementType model.ElementType
	Kind        model.GeometryKind
	MinPoints   int
}

// Modes is the closed set of drawing modes, keyed by ID.
var Modes = map[ModeID]Mode{
	ModeSiteLocation: {
		ID:          ModeSiteLocation,
		Layer:       model.LayerSiteSurvey,
		ElementType: model.ElementSiteLocation,
		Kind:        model.KindMarker,
		MinPoints:   1,
	},
	ModeOperationsBoundary: {
		ID:          ModeOperationsBoundary,
		Layer:       model.LayerSiteSurvey,
		ElementType: model.ElementOperationsBoundary,
		Kind:        model.KindPolygon,
		MinPoints:   3,
	},
	ModeFlightGeography: {
		ID:          ModeFlightGeography,
		Layer:       model.LayerFlightPlan,
		ElementType: model.ElementFlightGeography,
		Kind:        model.KindPolygon,
		MinPoints:   3,
	},
	ModeMusterPoint: {
		ID:          ModeMusterPoint,
		Layer:       model.LayerEmergency,
		ElementType: model.ElementMusterPoint,
		Kind:        model.KindMarker,
		MinPoints:   1,
	},
	ModeEvacuationRoute: {
		ID:          ModeEvacuationRoute,
		Layer:       model.LayerEmergency,
		ElementType: model.ElementEvacuationRoute,
		Kind:        model.KindLine,
		MinPoints:   2,
	},
}
