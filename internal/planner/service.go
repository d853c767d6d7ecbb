package planner

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/skygrid/planner/internal/geodata"
	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/persist"
)

// ErrSiteLimit is returned when a project already holds the maximum number
// of sites.
var ErrSiteLimit = errors.New("site limit reached")

// ErrNoProject is returned when an operation needs a loaded project.
var ErrNoProject = errors.New("no project loaded")

// ErrSiteNotFound is returned for operations on unknown site IDs.
var ErrSiteNotFound = errors.New("site not found")

// Dependencies holds all dependencies for the planner service.
type Dependencies struct {
	GeoData *geodata.Store
	Persist persist.Store
	Log     *slog.Logger
}

// Service owns site lifecycle: sites are created, duplicated and deleted
// here, never by the engine's lower layers. Local state mutates first;
// persistence is fire-and-forget.
type Service struct {
	deps Dependencies
	ctx  *Context
}

// NewService creates a planner service around the given context.
func NewService(deps Dependencies, ctx *Context) *Service {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Service{deps: deps, ctx: ctx}
}

// Context returns the planning context.
func (s *Service) Context() *Context { return s.ctx }

// LoadProject fetches a project from the document store and hydrates the
// geodata registry with each site's map data.
func (s *Service) LoadProject(id string) (*model.Project, error) {
	p, err := s.deps.Persist.LoadProject(id)
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", id, err)
	}
	s.deps.GeoData.Reset()
	for i := range p.Sites {
		s.deps.GeoData.HydrateSite(p.Sites[i].ID, p.Sites[i].MapData)
	}
	s.ctx.SetProject(p)
	if p.ActiveSiteID == "" && len(p.Sites) > 0 {
		s.ctx.SetActiveSiteID(p.Sites[0].ID)
	}
	s.deps.Log.Info("project loaded", "project", p.ID, "sites", len(p.Sites))
	return p, nil
}

// CreateSite appends a new empty site to the project and makes it active.
func (s *Service) CreateSite(name string) (*model.Site, error) {
	p := s.ctx.Project()
	if p == nil {
		return nil, ErrNoProject
	}
	if len(p.Sites) >= model.MaxSitesPerProject {
		return nil, ErrSiteLimit
	}
	site := model.Site{
		ID:      uuid.NewString(),
		Name:    name,
		Status:  model.SiteStatusPlanning,
		MapData: model.NewMapData(),
	}
	p.Sites = append(p.Sites, site)
	if err := s.deps.GeoData.RegisterSite(site.ID); err != nil {
		return nil, err
	}
	s.ctx.SetActiveSiteID(site.ID)
	s.persistSites(p)
	return &p.Sites[len(p.Sites)-1], nil
}

// DuplicateSite deep-copies a site, its map data included, under fresh
// element IDs.
func (s *Service) DuplicateSite(siteID string) (*model.Site, error) {
	p := s.ctx.Project()
	if p == nil {
		return nil, ErrNoProject
	}
	if len(p.Sites) >= model.MaxSitesPerProject {
		return nil, ErrSiteLimit
	}
	idx := p.SiteIndex(siteID)
	if idx < 0 {
		return nil, ErrSiteNotFound
	}
	src := p.Sites[idx]

	dup := model.Site{
		ID:      uuid.NewString(),
		Name:    src.Name + " (copy)",
		Status:  model.SiteStatusPlanning,
		MapData: copyMapData(src.MapData),
	}
	p.Sites = append(p.Sites, dup)
	s.deps.GeoData.HydrateSite(dup.ID, dup.MapData)
	s.persistSites(p)
	return &p.Sites[len(p.Sites)-1], nil
}

// DeleteSite removes a site and cascades its elements out of the geodata
// registry. Unknown IDs leave everything unchanged.
func (s *Service) DeleteSite(siteID string) error {
	p := s.ctx.Project()
	if p == nil {
		return ErrNoProject
	}
	idx := p.SiteIndex(siteID)
	if idx < 0 {
		return ErrSiteNotFound
	}
	p.Sites = append(p.Sites[:idx], p.Sites[idx+1:]...)
	if err := s.deps.GeoData.RemoveSite(siteID); err != nil && !errors.Is(err, geodata.ErrNotFound) {
		return err
	}
	if s.ctx.ActiveSiteID() == siteID {
		next := ""
		if len(p.Sites) > 0 {
			next = p.Sites[0].ID
		}
		s.ctx.SetActiveSiteID(next)
	}
	s.persistSites(p)
	return nil
}

// SetActiveSite switches the active site after validating the ID.
func (s *Service) SetActiveSite(siteID string) error {
	p := s.ctx.Project()
	if p == nil {
		return ErrNoProject
	}
	if p.SiteIndex(siteID) < 0 {
		return ErrSiteNotFound
	}
	s.ctx.SetActiveSiteID(siteID)
	s.persistActiveSite(siteID)
	return nil
}

// SyncSiteData copies the geodata registry's current element collections
// back onto the project's sites and persists them. Called after drawing
// commits and element mutations.
func (s *Service) SyncSiteData() {
	p := s.ctx.Project()
	if p == nil {
		return
	}
	for i := range p.Sites {
		if md, ok := s.deps.GeoData.SiteData(p.Sites[i].ID); ok {
			p.Sites[i].MapData = md
		}
	}
	s.persistSites(p)
}

// persistSites writes the project's site list to the document store
// without waiting: local state is already authoritative.
func (s *Service) persistSites(p *model.Project) {
	sites := make([]model.Site, len(p.Sites))
	copy(sites, p.Sites)
	go func() {
		err := s.deps.Persist.UpdateProject(p.ID, persist.ProjectPatch{Sites: &sites})
		if err != nil {
			s.deps.Log.Error("persisting sites", "project", p.ID, "error", err)
		}
	}()
}

func (s *Service) persistActiveSite(siteID string) {
	p := s.ctx.Project()
	if p == nil {
		return
	}
	go func() {
		err := s.deps.Persist.UpdateProject(p.ID, persist.ProjectPatch{ActiveSiteID: &siteID})
		if err != nil {
			s.deps.Log.Error("persisting active site", "project", p.ID, "error", err)
		}
	}()
}

func copyMapData(src model.MapData) model.MapData {
	out := model.NewMapData()
	for layer, ld := range src {
		if ld == nil {
			continue
		}
		dst := &model.LayerData{
			Markers:  copyElements(ld.Markers),
			Polygons: copyElements(ld.Polygons),
			Lines:    copyElements(ld.Lines),
		}
		out[layer] = dst
	}
	return out
}

func copyElements(src []model.MapElement) []model.MapElement {
	out := make([]model.MapElement, len(src))
	for i, el := range src {
		el.ID = uuid.NewString()
		el.Coordinates = append([]model.Position(nil), el.Coordinates...)
		out[i] = el
	}
	return out
}
