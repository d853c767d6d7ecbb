package bridge

import (
	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/viewport"
)

// FitOptions tunes a camera move.
type FitOptions struct {
	PaddingPx int
	Animate   bool
}

// MapEngine is the abstract imperative surface of the underlying
// map-rendering library. Callbacks registered here execute on the engine's
// own thread, outside the application's update cycle.
type MapEngine interface {
	AddSource(id string, geojson []byte) error
	RemoveSource(id string) error
	AddLayer(id, sourceID string, style model.ElementStyle) error
	RemoveLayer(id string) error

	OnClick(func(model.Position))
	OnDoubleClick(func(model.Position))
	OnStyleReload(func())

	FitBounds(b viewport.Bounds, opts FitOptions) error
	SetStyle(url string) error
}

// Config holds the map-engine configuration the bridge requires.
type Config struct {
	AccessToken    string
	DefaultBasemap string
}
