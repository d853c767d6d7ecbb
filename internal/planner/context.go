// Package planner holds the explicit planning context (active project,
// site, layer) and the site lifecycle service. Nothing in the engine reads
// ambient globals; this context is threaded into every component that
// needs it.
package planner

import (
	"sync"

	"github.com/skygrid/planner/internal/model"
)

// Context tracks which project, site and layer planning operations act on.
type Context struct {
	mu           sync.RWMutex
	project      *model.Project
	activeSiteID string
	activeLayer  model.LayerID
}

// NewContext creates a Context with no project loaded.
func NewContext() *Context {
	return &Context{
		activeLayer: model.LayerSiteSurvey,
	}
}

// Project returns the current project, or nil when none is loaded.
func (c *Context) Project() *model.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.project
}

// SetProject replaces the loaded project and adopts its active site.
func (c *Context) SetProject(p *model.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.project = p
	if p != nil {
		c.activeSiteID = p.ActiveSiteID
	} else {
		c.activeSiteID = ""
	}
}

// ActiveSiteID returns the site that drawing commits target.
func (c *Context) ActiveSiteID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeSiteID
}

// SetActiveSiteID switches the drawing target site.
func (c *Context) SetActiveSiteID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeSiteID = id
	if c.project != nil {
		c.project.ActiveSiteID = id
	}
}

// ActiveLayer returns the layer new elements land on by default.
func (c *Context) ActiveLayer() model.LayerID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeLayer
}

// SetActiveLayer switches the default layer.
func (c *Context) SetActiveLayer(l model.LayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeLayer = l
}
