package drawing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skygrid/planner/internal/geodata"
	"github.com/skygrid/planner/internal/model"
)

// fixedSite satisfies SiteProvider with a constant site ID.
type fixedSite string

func (f fixedSite) ActiveSiteID() string { return string(f) }

func newTestMachine(t *testing.T) (*Machine, *geodata.Store) {
	t.Helper()
	store := geodata.New()
	require.NoError(t, store.RegisterSite("site-a"))
	return NewMachine(store, fixedSite("site-a")), store
}

func TestMachine_StartWhileActive(t *testing.T) {
	m, _ := newTestMachine(t)

	require.NoError(t, m.Start(ModeFlightGeography))
	assert.ErrorIs(t, m.Start(ModeOperationsBoundary), ErrDrawingInProgress)
	assert.Equal(t, ModeFlightGeography, m.ActiveMode())
}

func TestMachine_StartUnknownMode(t *testing.T) {
	m, _ := newTestMachine(t)
	assert.ErrorIs(t, m.Start("freehand"), ErrUnknownMode)
	assert.False(t, m.IsDrawing())
}

func TestMachine_IdleOperations(t *testing.T) {
	m, _ := newTestMachine(t)

	assert.ErrorIs(t, m.AddPoint(model.Position{}), ErrNotDrawing)
	assert.ErrorIs(t, m.RemoveLastPoint(), ErrNotDrawing)
	assert.ErrorIs(t, m.Complete(), ErrNotDrawing)
	assert.ErrorIs(t, m.Cancel(), ErrNotDrawing)
	assert.Equal(t, ModeNone, m.ActiveMode())
}

func TestMachine_MarkerClickToComplete(t *testing.T) {
	m, store := newTestMachine(t)

	require.NoError(t, m.Start(ModeSiteLocation))
	require.NoError(t, m.AddPoint(model.Position{Lng: 4.47, Lat: 51.92}))

	// single click commits and returns to idle
	assert.False(t, m.IsDrawing())

	md, _ := store.SiteData("site-a")
	markers := md[model.LayerSiteSurvey].Markers
	require.Len(t, markers, 1)
	assert.Equal(t, model.ElementSiteLocation, markers[0].Type)
	assert.Equal(t, model.KindMarker, markers[0].Kind)
	require.Len(t, markers[0].Coordinates, 1)
	assert.NotEmpty(t, markers[0].ID)
	assert.True(t, markers[0].IsActive)
}

func TestMachine_PolygonInsufficientPoints(t *testing.T) {
	m, store := newTestMachine(t)

	require.NoError(t, m.Start(ModeFlightGeography))
	require.NoError(t, m.AddPoint(model.Position{Lng: 0, Lat: 0}))
	require.NoError(t, m.AddPoint(model.Position{Lng: 1, Lat: 0}))

	assert.ErrorIs(t, m.Complete(), ErrInsufficientPoints)

	// drawing stays active, buffer untouched
	assert.True(t, m.IsDrawing())
	assert.Len(t, m.Points(), 2)

	md, _ := store.SiteData("site-a")
	assert.Empty(t, md[model.LayerFlightPlan].Polygons)
}

func TestMachine_PolygonAutoClose(t *testing.T) {
	m, store := newTestMachine(t)

	require.NoError(t, m.Start(ModeFlightGeography))
	require.NoError(t, m.AddPoint(model.Position{Lng: 0, Lat: 0}))
	require.NoError(t, m.AddPoint(model.Position{Lng: 1, Lat: 0}))
	require.NoError(t, m.AddPoint(model.Position{Lng: 1, Lat: 1}))
	require.NoError(t, m.Complete())

	assert.False(t, m.IsDrawing())

	md, _ := store.SiteData("site-a")
	polys := md[model.LayerFlightPlan].Polygons
	require.Len(t, polys, 1)
	coords := polys[0].Coordinates
	require.Len(t, coords, 4, "ring should be auto-closed")
	assert.Equal(t, coords[0], coords[3])
}

func TestMachine_LineCommit(t *testing.T) {
	m, store := newTestMachine(t)

	require.NoError(t, m.Start(ModeEvacuationRoute))
	require.NoError(t, m.AddPoint(model.Position{Lng: 0, Lat: 0}))
	require.NoError(t, m.AddPoint(model.Position{Lng: 0.001, Lat: 0.001}))
	require.NoError(t, m.Complete())

	md, _ := store.SiteData("site-a")
	lines := md[model.LayerEmergency].Lines
	require.Len(t, lines, 1)
	// lines are not closed
	assert.Len(t, lines[0].Coordinates, 2)
	assert.Equal(t, model.ElementEvacuationRoute, lines[0].Type)
}

func TestMachine_RemoveLastPoint(t *testing.T) {
	m, _ := newTestMachine(t)

	require.NoError(t, m.Start(ModeFlightGeography))
	assert.ErrorIs(t, m.RemoveLastPoint(), ErrEmptyBuffer)

	require.NoError(t, m.AddPoint(model.Position{Lng: 0, Lat: 0}))
	require.NoError(t, m.AddPoint(model.Position{Lng: 1, Lat: 0}))
	require.NoError(t, m.RemoveLastPoint())

	points := m.Points()
	require.Len(t, points, 1)
	assert.Equal(t, model.Position{Lng: 0, Lat: 0}, points[0])
}

func TestMachine_CancelDiscardsBuffer(t *testing.T) {
	m, store := newTestMachine(t)

	require.NoError(t, m.Start(ModeOperationsBoundary))
	require.NoError(t, m.AddPoint(model.Position{Lng: 0, Lat: 0}))
	require.NoError(t, m.Cancel())

	assert.False(t, m.IsDrawing())
	assert.Empty(t, m.Points())

	md, _ := store.SiteData("site-a")
	assert.Empty(t, md[model.LayerSiteSurvey].Polygons)

	// a fresh drawing starts with an empty buffer
	require.NoError(t, m.Start(ModeOperationsBoundary))
	assert.Empty(t, m.Points())
}

func TestMachine_CommitFailureKeepsDrawingActive(t *testing.T) {
	store := geodata.New()
	// no site registered: commit will be rejected by the store
	m := NewMachine(store, fixedSite("missing"))

	require.NoError(t, m.Start(ModeSiteLocation))
	err := m.AddPoint(model.Position{Lng: 1, Lat: 1})
	assert.ErrorIs(t, err, geodata.ErrNotFound)
	assert.True(t, m.IsDrawing(), "store rejection is not a state transition")
}
