// Package drawing implements the drawing-mode state machine that turns map
// clicks into committed map elements. Only one mode can be active at a
// time; commits write into the geodata store.
package drawing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/skygrid/planner/internal/geo"
	"github.com/skygrid/planner/internal/geodata"
	"github.com/skygrid/planner/internal/model"
)

var (
	// ErrDrawingInProgress is returned by Start while a mode is active.
	ErrDrawingInProgress = errors.New("drawing already in progress")
	// ErrNotDrawing is returned when an operation requires an active mode.
	ErrNotDrawing = errors.New("no drawing in progress")
	// ErrInsufficientPoints is returned by Complete below the mode minimum.
	ErrInsufficientPoints = errors.New("insufficient points")
	// ErrUnknownMode is returned by Start for a mode not in the registry.
	ErrUnknownMode = errors.New("unknown drawing mode")
	// ErrEmptyBuffer is returned by RemoveLastPoint with no points.
	ErrEmptyBuffer = errors.New("point buffer is empty")
)

// SiteProvider yields the site that committed elements belong to.
type SiteProvider interface {
	ActiveSiteID() string
}

// Machine is the drawing-mode state machine. All methods are synchronous;
// the single-writer model means no internal locking is needed beyond what
// the store provides.
type Machine struct {
	store *geodata.Store
	sites SiteProvider

	mode   Mode
	active bool
	points []model.Position
}

// NewMachine creates an idle state machine writing into store.
func NewMachine(store *geodata.Store, sites SiteProvider) *Machine {
	return &Machine{store: store, sites: sites}
}

// IsDrawing reports whether a mode is active.
func (m *Machine) IsDrawing() bool { return m.active }

// ActiveMode returns the active mode ID, or ModeNone when idle.
func (m *Machine) ActiveMode() ModeID {
	if !m.active {
		return ModeNone
	}
	return m.mode.ID
}

// Points returns a copy of the accumulated point buffer.
func (m *Machine) Points() []model.Position {
	out := make([]model.Position, len(m.points))
	copy(out, m.points)
	return out
}

// Start activates a drawing mode. Legal only from idle; callers must cancel
// an active drawing first.
func (m *Machine) Start(id ModeID) error {
	if m.active {
		return ErrDrawingInProgress
	}
	mode, ok := Modes[id]
	if !ok {
		return ErrUnknownMode
	}
	m.mode = mode
	m.active = true
	m.points = nil
	return nil
}

// AddPoint appends a coordinate to the buffer in insertion order. For
// marker modes the first point commits immediately (click-to-complete) and
// the machine returns to idle.
func (m *Machine) AddPoint(p model.Position) error {
	if !m.active {
		return ErrNotDrawing
	}
	if m.mode.Kind == model.KindMarker {
		return m.commit([]model.Position{p})
	}
	m.points = append(m.points, p)
	return nil
}

// RemoveLastPoint pops the most recent point from the buffer.
func (m *Machine) RemoveLastPoint() error {
	if !m.active {
		return ErrNotDrawing
	}
	if len(m.points) == 0 {
		return ErrEmptyBuffer
	}
	m.points = m.points[:len(m.points)-1]
	return nil
}

// Complete commits the buffered geometry as a new element and returns to
// idle. Below the mode's minimum point count it reports
// ErrInsufficientPoints and the machine stays active with the buffer
// untouched. Polygons are auto-closed by appending the first point.
func (m *Machine) Complete() error {
	if !m.active {
		return ErrNotDrawing
	}
	if len(m.points) < m.mode.MinPoints {
		return ErrInsufficientPoints
	}
	coords := m.points
	if m.mode.Kind == model.KindPolygon {
		coords = geo.CloseRing(coords)
	}
	return m.commit(coords)
}

// Cancel discards the buffer and returns to idle without writing anything.
func (m *Machine) Cancel() error {
	if !m.active {
		return ErrNotDrawing
	}
	m.active = false
	m.points = nil
	return nil
}

func (m *Machine) commit(coords []model.Position) error {
	el := model.MapElement{
		ID:          uuid.NewString(),
		Type:        m.mode.ElementType,
		Kind:        m.mode.Kind,
		Coordinates: coords,
		IsActive:    true,
	}
	if err := m.store.Add(m.sites.ActiveSiteID(), m.mode.Layer, el); err != nil {
		// Store rejection is not a state transition; the drawing stays
		// active so the caller can retry or cancel.
		return err
	}
	m.active = false
	m.points = nil
	return nil
}
