// Package memory implements the persist.Store interface with an in-memory
// map. Used in tests and when no database is configured.
package memory

import (
	"encoding/json"
	"sync"

	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/persist"
)

// Backend stores project documents in memory.
type Backend struct {
	mu       sync.RWMutex
	projects map[string]*model.Project
}

// New creates a new memory backend.
func New() *Backend {
	return &Backend{
		projects: make(map[string]*model.Project),
	}
}

// Init initializes the backend.
func (b *Backend) Init() error { return nil }

// Close cleans up resources.
func (b *Backend) Close() error { return nil }

// LoadProject returns a deep copy of the stored project document.
func (b *Backend) LoadProject(id string) (*model.Project, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.projects[id]
	if !ok {
		return nil, persist.ErrNotFound
	}
	return clone(p)
}

// SaveProject stores a deep copy of the project document.
func (b *Backend) SaveProject(p *model.Project) error {
	cp, err := clone(p)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.projects[p.ID] = cp
	return nil
}

// UpdateProject applies a partial patch to a stored project.
func (b *Backend) UpdateProject(id string, patch persist.ProjectPatch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projects[id]
	if !ok {
		return persist.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.ActiveSiteID != nil {
		p.ActiveSiteID = *patch.ActiveSiteID
	}
	if patch.Sites != nil {
		cp, err := clone(&model.Project{Sites: *patch.Sites})
		if err != nil {
			return err
		}
		p.Sites = cp.Sites
	}
	return nil
}

// DeleteProject removes a project document.
func (b *Backend) DeleteProject(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.projects[id]; !ok {
		return persist.ErrNotFound
	}
	delete(b.projects, id)
	return nil
}

// clone round-trips through JSON so callers never share layer slices with
// the store.
func clone(p *model.Project) (*model.Project, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out model.Project
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
