package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skygrid/planner/internal/geodata"
	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/persist"
	"github.com/skygrid/planner/internal/persist/memory"
)

func newTestService(t *testing.T) (*Service, *geodata.Store, persist.Store) {
	t.Helper()
	store := geodata.New()
	backend := memory.New()
	ctx := NewContext()
	svc := NewService(Dependencies{GeoData: store, Persist: backend}, ctx)
	return svc, store, backend
}

func seedProject(t *testing.T, svc *Service, backend persist.Store) *model.Project {
	t.Helper()
	require.NoError(t, backend.SaveProject(&model.Project{
		ID:   "proj-1",
		Name: "Harbor Survey",
		Sites: []model.Site{
			{ID: "site-a", Name: "North Quay", MapData: model.NewMapData()},
		},
		ActiveSiteID: "site-a",
	}))
	p, err := svc.LoadProject("proj-1")
	require.NoError(t, err)
	return p
}

func TestService_LoadProjectHydratesGeoData(t *testing.T) {
	svc, store, backend := newTestService(t)
	seedProject(t, svc, backend)

	assert.Equal(t, []string{"site-a"}, store.SiteIDs())
	assert.Equal(t, "site-a", svc.Context().ActiveSiteID())
}

func TestService_LoadProjectNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.LoadProject("missing")
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestService_LoadProjectDefaultsActiveSite(t *testing.T) {
	svc, _, backend := newTestService(t)
	require.NoError(t, backend.SaveProject(&model.Project{
		ID: "proj-2",
		Sites: []model.Site{
			{ID: "site-x", MapData: model.NewMapData()},
			{ID: "site-y", MapData: model.NewMapData()},
		},
	}))

	_, err := svc.LoadProject("proj-2")
	require.NoError(t, err)
	assert.Equal(t, "site-x", svc.Context().ActiveSiteID(),
		"first site becomes active when the document names none")
}

func TestService_CreateSite(t *testing.T) {
	svc, store, backend := newTestService(t)
	seedProject(t, svc, backend)

	site, err := svc.CreateSite("South Quay")
	require.NoError(t, err)
	assert.NotEmpty(t, site.ID)
	assert.Equal(t, "South Quay", site.Name)
	assert.Equal(t, model.SiteStatusPlanning, site.Status)

	// new site becomes active and is registered in the geodata store
	assert.Equal(t, site.ID, svc.Context().ActiveSiteID())
	assert.Contains(t, store.SiteIDs(), site.ID)
	assert.Len(t, svc.Context().Project().Sites, 2)
}

func TestService_CreateSiteWithoutProject(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.CreateSite("anything")
	assert.ErrorIs(t, err, ErrNoProject)
}

func TestService_CreateSiteLimit(t *testing.T) {
	svc, _, backend := newTestService(t)
	seedProject(t, svc, backend)

	for i := 1; i < model.MaxSitesPerProject; i++ {
		_, err := svc.CreateSite("Site")
		require.NoError(t, err)
	}
	_, err := svc.CreateSite("One too many")
	assert.ErrorIs(t, err, ErrSiteLimit)
	assert.Len(t, svc.Context().Project().Sites, model.MaxSitesPerProject)
}

func TestService_DuplicateSiteFreshElementIDs(t *testing.T) {
	svc, store, backend := newTestService(t)
	seedProject(t, svc, backend)

	require.NoError(t, store.Add("site-a", model.LayerSiteSurvey, model.MapElement{
		ID:          "m1",
		Kind:        model.KindMarker,
		Coordinates: []model.Position{{Lng: 4.47, Lat: 51.92}},
	}))
	svc.SyncSiteData()

	dup, err := svc.DuplicateSite("site-a")
	require.NoError(t, err)
	assert.Equal(t, "North Quay (copy)", dup.Name)
	assert.NotEqual(t, "site-a", dup.ID)

	markers := dup.MapData[model.LayerSiteSurvey].Markers
	require.Len(t, markers, 1)
	assert.NotEqual(t, "m1", markers[0].ID, "duplicated elements get fresh IDs")
	assert.Equal(t, 4.47, markers[0].Coordinates[0].Lng)

	_, err = svc.DuplicateSite("missing")
	assert.ErrorIs(t, err, ErrSiteNotFound)
}

func TestService_DeleteSiteCascades(t *testing.T) {
	svc, store, backend := newTestService(t)
	seedProject(t, svc, backend)

	second, err := svc.CreateSite("South Quay")
	require.NoError(t, err)
	require.NoError(t, store.Add(second.ID, model.LayerSiteSurvey, model.MapElement{
		ID: "m2", Kind: model.KindMarker,
		Coordinates: []model.Position{{Lng: 1, Lat: 1}},
	}))

	require.NoError(t, svc.DeleteSite(second.ID))

	assert.NotContains(t, store.SiteIDs(), second.ID)
	_, ok := store.Element("m2")
	assert.False(t, ok, "deleting a site removes its elements")

	// the deleted site was active; activation falls back to the first site
	assert.Equal(t, "site-a", svc.Context().ActiveSiteID())

	assert.ErrorIs(t, svc.DeleteSite("missing"), ErrSiteNotFound)
}

func TestService_DeleteLastSiteClearsActive(t *testing.T) {
	svc, _, backend := newTestService(t)
	seedProject(t, svc, backend)

	require.NoError(t, svc.DeleteSite("site-a"))
	assert.Equal(t, "", svc.Context().ActiveSiteID())
	assert.Empty(t, svc.Context().Project().Sites)
}

func TestService_SetActiveSite(t *testing.T) {
	svc, _, backend := newTestService(t)
	seedProject(t, svc, backend)

	assert.ErrorIs(t, svc.SetActiveSite("missing"), ErrSiteNotFound)
	assert.Equal(t, "site-a", svc.Context().ActiveSiteID())

	site, err := svc.CreateSite("South Quay")
	require.NoError(t, err)
	require.NoError(t, svc.SetActiveSite("site-a"))
	assert.Equal(t, "site-a", svc.Context().ActiveSiteID())
	require.NoError(t, svc.SetActiveSite(site.ID))
	assert.Equal(t, site.ID, svc.Context().ActiveSiteID())
}

func TestService_SyncSiteData(t *testing.T) {
	svc, store, backend := newTestService(t)
	p := seedProject(t, svc, backend)

	require.NoError(t, store.Add("site-a", model.LayerFlightPlan, model.MapElement{
		ID: "p1", Kind: model.KindPolygon,
		Coordinates: []model.Position{
			{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}, {Lng: 0, Lat: 0},
		},
	}))
	svc.SyncSiteData()

	polys := p.Sites[0].MapData[model.LayerFlightPlan].Polygons
	require.Len(t, polys, 1)
	assert.Equal(t, "p1", polys[0].ID)
}

func TestContext_ActiveLayer(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, model.LayerSiteSurvey, ctx.ActiveLayer())

	ctx.SetActiveLayer(model.LayerEmergency)
	assert.Equal(t, model.LayerEmergency, ctx.ActiveLayer())
}
