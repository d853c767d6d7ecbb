// Package bridge orchestrates the planning engine against an imperative map
// engine. It owns the one-time registration of native event handlers, the
// reference cell those handlers read through, and the full re-render that
// follows a basemap style reload.
package bridge

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/skygrid/planner/internal/dispatch"
	"github.com/skygrid/planner/internal/drawing"
	"github.com/skygrid/planner/internal/geodata"
	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/viewport"
	"github.com/skygrid/planner/pkg/geojson"
)

// ErrMissingConfiguration is returned when the map engine cannot be used
// (e.g. no access token). The bridge fails fast rather than degrade.
var ErrMissingConfiguration = errors.New("map engine configuration missing")

// ErrUnknownBasemap is returned for a basemap ID not in the table.
var ErrUnknownBasemap = errors.New("unknown basemap")

// Dependencies holds everything the bridge needs.
type Dependencies struct {
	Engine     MapEngine
	Store      *geodata.Store
	Machine    *drawing.Machine
	Dispatcher *dispatch.Dispatcher
	Log        *slog.Logger
}

// Bridge wires drawing state and the geodata store to a map engine.
type Bridge struct {
	deps Dependencies
	cfg  Config
	cell RefCell

	attachOnce sync.Once

	mu       sync.Mutex
	rendered []string // layer/source IDs currently added to the engine

	// Layer visibility flags, toggled by the host UI.
	visible map[model.LayerID]bool
}

// New validates configuration and creates a bridge. A missing access token
// is a hard error surfaced to the host.
func New(deps Dependencies, cfg Config) (*Bridge, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token not set", ErrMissingConfiguration)
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	visible := make(map[model.LayerID]bool, len(model.AllLayers))
	for _, l := range model.AllLayers {
		visible[l] = true
	}
	return &Bridge{deps: deps, cfg: cfg, visible: visible}, nil
}

// Attach registers the native event handlers exactly once per engine
// instance. The handlers close over the reference cell, never over drawing
// state itself.
func (b *Bridge) Attach() {
	b.attachOnce.Do(func() {
		b.registerDispatch()

		b.deps.Engine.OnClick(func(p model.Position) {
			_ = b.deps.Dispatcher.Dispatch(dispatch.Event{
				Name: dispatch.EventClick, Position: p, Timestamp: time.Now(),
			})
		})
		b.deps.Engine.OnDoubleClick(func(p model.Position) {
			_ = b.deps.Dispatcher.Dispatch(dispatch.Event{
				Name: dispatch.EventDoubleClick, Position: p, Timestamp: time.Now(),
			})
		})
		b.deps.Engine.OnStyleReload(func() {
			_ = b.deps.Dispatcher.Dispatch(dispatch.Event{
				Name: dispatch.EventStyleReload, Timestamp: time.Now(),
			})
		})
	})
}

func (b *Bridge) registerDispatch() {
	b.deps.Dispatcher.Register(dispatch.EventClick, func(e dispatch.Event) error {
		ref := b.cell.Load()
		if !ref.IsDrawing || ref.AddPoint == nil {
			return nil // clicking with no mode active is a no-op
		}
		if err := ref.AddPoint(e.Position); err != nil {
			return err
		}
		b.SyncDrawingState()
		return b.RenderAll()
	})

	b.deps.Dispatcher.Register(dispatch.EventDoubleClick, func(e dispatch.Event) error {
		ref := b.cell.Load()
		if !ref.IsDrawing || ref.Complete == nil {
			return nil
		}
		if err := ref.Complete(); err != nil {
			// Insufficient points keeps the drawing active; surface the
			// condition but change nothing.
			return err
		}
		b.SyncDrawingState()
		return b.RenderAll()
	})

	// Style reload tears down every custom layer inside the engine; re-add
	// all of them exactly once per reload event.
	b.deps.Dispatcher.Register(dispatch.EventStyleReload, func(dispatch.Event) error {
		b.mu.Lock()
		b.rendered = nil // engine dropped them with the old style
		b.mu.Unlock()
		return b.RenderAll()
	})
}

// SyncDrawingState mirrors the state machine into the reference cell.
// Must be called after every drawing state change.
func (b *Bridge) SyncDrawingState() {
	m := b.deps.Machine
	b.cell.Sync(DrawingRef{
		IsDrawing: m.IsDrawing(),
		Mode:      m.ActiveMode(),
		AddPoint:  m.AddPoint,
		Complete:  m.Complete,
	})
}

// SetLayerVisible toggles a layer's visibility flag and re-renders.
func (b *Bridge) SetLayerVisible(layer model.LayerID, v bool) error {
	b.mu.Lock()
	b.visible[layer] = v
	b.mu.Unlock()
	return b.RenderAll()
}

// RenderAll removes previously added custom layers and re-adds every
// visible element from the store.
func (b *Bridge) RenderAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range b.rendered {
		if err := b.deps.Engine.RemoveLayer(id); err != nil {
			b.deps.Log.Warn("removing layer", "id", id, "error", err)
		}
		if err := b.deps.Engine.RemoveSource(id); err != nil {
			b.deps.Log.Warn("removing source", "id", id, "error", err)
		}
	}
	b.rendered = b.rendered[:0]

	visible := make(map[model.LayerID]bool, len(b.visible))
	for k, v := range b.visible {
		visible[k] = v
	}
	for _, ve := range b.deps.Store.ListVisible(model.AllLayers, visible) {
		id := "planner-" + ve.Element.ID
		feature := geojson.FromElement(ve.Element)
		feature.Properties["siteHue"] = ve.Hue
		raw, err := geojson.Marshal(geojson.NewFeatureCollection(feature))
		if err != nil {
			return fmt.Errorf("encoding element %s: %w", ve.Element.ID, err)
		}
		if err := b.deps.Engine.AddSource(id, raw); err != nil {
			return fmt.Errorf("adding source %s: %w", id, err)
		}
		style := model.ElementStyleTable[ve.Element.Type]
		if err := b.deps.Engine.AddLayer(id, id, style); err != nil {
			return fmt.Errorf("adding layer %s: %w", id, err)
		}
		b.rendered = append(b.rendered, id)
	}
	return nil
}

// SetBasemap switches the underlying style. The engine's reload event will
// trigger the single re-render of custom layers.
func (b *Bridge) SetBasemap(id string) error {
	bm, ok := model.BasemapTable[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBasemap, id)
	}
	return b.deps.Engine.SetStyle(bm.StyleURL)
}

// FitSite moves the camera to a site's padded bounds. Sites without
// geometry leave the camera untouched.
func (b *Bridge) FitSite(site model.Site) error {
	bounds, ok := viewport.BoundsForSite(site)
	if !ok {
		return nil
	}
	return b.deps.Engine.FitBounds(bounds, FitOptions{PaddingPx: 40, Animate: true})
}

// FitAllSites moves the camera to the union bounds of every site.
func (b *Bridge) FitAllSites(sites []model.Site) error {
	bounds, ok := viewport.BoundsForAllSites(sites)
	if !ok {
		return nil
	}
	return b.deps.Engine.FitBounds(bounds, FitOptions{PaddingPx: 40, Animate: true})
}
