package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skygrid/planner/internal/model"
)

func siteWith(elements ...model.MapElement) model.Site {
	md := model.NewMapData()
	md[model.LayerSiteSurvey].Markers = elements
	return model.Site{ID: "site-a", MapData: md}
}

func TestBoundsForSite_Empty(t *testing.T) {
	_, ok := BoundsForSite(model.Site{ID: "empty", MapData: model.NewMapData()})
	assert.False(t, ok)

	_, ok = BoundsForSite(model.Site{ID: "nil-data"})
	assert.False(t, ok)
}

func TestBoundsForSite_PaddedBox(t *testing.T) {
	site := siteWith(
		model.MapElement{ID: "a", Kind: model.KindMarker,
			Coordinates: []model.Position{{Lng: 4.0, Lat: 51.0}}},
		model.MapElement{ID: "b", Kind: model.KindMarker,
			Coordinates: []model.Position{{Lng: 5.0, Lat: 52.0}}},
	)

	b, ok := BoundsForSite(site)
	require.True(t, ok)

	// raw box is (4,51)-(5,52); each side is padded by 10% of the extent
	assert.InDelta(t, 3.9, b.MinLng, 1e-9)
	assert.InDelta(t, 50.9, b.MinLat, 1e-9)
	assert.InDelta(t, 5.1, b.MaxLng, 1e-9)
	assert.InDelta(t, 52.1, b.MaxLat, 1e-9)

	assert.True(t, b.Contains(model.Position{Lng: 4.5, Lat: 51.5}))
	assert.False(t, b.Contains(model.Position{Lng: 6.0, Lat: 51.5}))
}

func TestBoundsForSite_SpansAllLayers(t *testing.T) {
	md := model.NewMapData()
	md[model.LayerSiteSurvey].Markers = []model.MapElement{
		{ID: "m", Kind: model.KindMarker, Coordinates: []model.Position{{Lng: 4.0, Lat: 51.0}}},
	}
	md[model.LayerEmergency].Lines = []model.MapElement{
		{ID: "l", Kind: model.KindLine, Coordinates: []model.Position{
			{Lng: 4.2, Lat: 51.2}, {Lng: 4.8, Lat: 51.8},
		}},
	}
	site := model.Site{ID: "site-a", MapData: md}

	b, ok := BoundsForSite(site)
	require.True(t, ok)
	assert.True(t, b.Contains(model.Position{Lng: 4.0, Lat: 51.0}))
	assert.True(t, b.Contains(model.Position{Lng: 4.8, Lat: 51.8}))
}

func TestBoundsForAllSites(t *testing.T) {
	west := siteWith(model.MapElement{ID: "w", Kind: model.KindMarker,
		Coordinates: []model.Position{{Lng: 4.0, Lat: 51.0}}})
	east := siteWith(model.MapElement{ID: "e", Kind: model.KindMarker,
		Coordinates: []model.Position{{Lng: 6.0, Lat: 53.0}}})
	empty := model.Site{ID: "empty", MapData: model.NewMapData()}

	b, ok := BoundsForAllSites([]model.Site{west, empty, east})
	require.True(t, ok)
	assert.True(t, b.Contains(model.Position{Lng: 4.0, Lat: 51.0}))
	assert.True(t, b.Contains(model.Position{Lng: 6.0, Lat: 53.0}))

	_, ok = BoundsForAllSites([]model.Site{empty})
	assert.False(t, ok)

	_, ok = BoundsForAllSites(nil)
	assert.False(t, ok)
}

func TestBoundsExtendAndUnion(t *testing.T) {
	b := Bounds{MinLng: 1, MinLat: 1, MaxLng: 2, MaxLat: 2}
	b.Extend(model.Position{Lng: 3, Lat: 0.5})
	assert.Equal(t, Bounds{MinLng: 1, MinLat: 0.5, MaxLng: 3, MaxLat: 2}, b)

	u := b.Union(Bounds{MinLng: 0, MinLat: 2, MaxLng: 1, MaxLat: 4})
	assert.Equal(t, Bounds{MinLng: 0, MinLat: 0.5, MaxLng: 3, MaxLat: 4}, u)
}
