package bridge

import (
	"sync"

	"github.com/skygrid/planner/internal/drawing"
	"github.com/skygrid/planner/internal/model"
)

// DrawingRef is the snapshot of drawing state a native handler needs.
// The functions themselves are mirrored, not just the flags, so a handler
// registered once keeps calling current behavior.
type DrawingRef struct {
	IsDrawing bool
	Mode      drawing.ModeID
	AddPoint  func(model.Position) error
	Complete  func() error
}

// RefCell is the mutable reference cell native handlers dereference at call
// time. It exists to defeat stale closures: handlers are registered exactly
// once per engine instance and must never read values captured at
// registration.
type RefCell struct {
	mu  sync.RWMutex
	ref DrawingRef
}

// Sync mirrors the latest drawing state into the cell. Call on every state
// change.
func (c *RefCell) Sync(ref DrawingRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ref = ref
}

// Load returns the current snapshot.
func (c *RefCell) Load() DrawingRef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ref
}
