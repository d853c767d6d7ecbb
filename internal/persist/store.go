// Package persist defines the document-store contract the engine delegates
// project persistence to. The engine mutates local state optimistically and
// never waits for persistence acknowledgment.
package persist

import (
	"errors"

	"github.com/skygrid/planner/internal/model"
)

// ErrNotFound is returned when a project ID is not present in the store.
var ErrNotFound = errors.New("project not found")

// ProjectPatch is a partial project update. Nil fields are left unchanged.
type ProjectPatch struct {
	Name         *string
	ActiveSiteID *string
	Sites        *[]model.Site
}

// Store is the interface all persistence backends must satisfy.
type Store interface {
	// Lifecycle
	Init() error
	Close() error

	// Project document operations
	LoadProject(id string) (*model.Project, error)
	SaveProject(p *model.Project) error
	UpdateProject(id string, patch ProjectPatch) error
	DeleteProject(id string) error
}
