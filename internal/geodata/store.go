// Package geodata holds the in-memory registry of drawn map elements,
// organized per site and per layer. All mutating operations are expressed as
// collection-in -> collection-out transforms so invariants (such as
// at-most-one primary element per collection) hold at every observable
// point.
package geodata

import (
	"errors"
	"sync"

	"github.com/skygrid/planner/internal/model"
)

// ErrNotFound is returned when a site or element ID is not present.
var ErrNotFound = errors.New("not found")

// ErrSiteExists is returned when registering a site ID twice.
var ErrSiteExists = errors.New("site already registered")

// ErrUnknownKind is returned for a geometry kind outside the closed
// marker/polygon/line set.
var ErrUnknownKind = errors.New("unknown geometry kind")

// Patch describes a partial element update. Nil fields are left unchanged.
type Patch struct {
	Label       *string
	Description *string
	IsActive    *bool
}

// Store is the per-site, per-layer element registry. It has exactly one
// writer (the drawing state machine / planner service) and many readers;
// the mutex guards against interleaved native-callback access.
type Store struct {
	mu    sync.RWMutex
	order []string // site IDs in project order, drives display hue
	sites map[string]model.MapData
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		sites: make(map[string]model.MapData),
	}
}

// RegisterSite adds a site to the registry with empty layers.
// Site creation itself belongs to the owning application; the store only
// mirrors it.
func (s *Store) RegisterSite(siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[siteID]; ok {
		return ErrSiteExists
	}
	s.sites[siteID] = model.NewMapData()
	s.order = append(s.order, siteID)
	return nil
}

// HydrateSite replaces a site's map data wholesale, registering the site if
// needed. Used when loading a project from the document store.
func (s *Store) HydrateSite(siteID string, md model.MapData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[siteID]; !ok {
		s.order = append(s.order, siteID)
	}
	if md == nil {
		md = model.NewMapData()
	}
	s.sites[siteID] = md
}

// RemoveSite deletes a site and cascades away all of its elements.
func (s *Store) RemoveSite(siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[siteID]; !ok {
		return ErrNotFound
	}
	delete(s.sites, siteID)
	for i, id := range s.order {
		if id == siteID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Reset clears all sites and elements.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites = make(map[string]model.MapData)
	s.order = nil
}

// Add appends an element to the given site layer collection matching the
// element's geometry kind.
func (s *Store) Add(siteID string, layer model.LayerID, el model.MapElement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	md, ok := s.sites[siteID]
	if !ok {
		return ErrNotFound
	}
	ld, ok := md[layer]
	if !ok {
		ld = &model.LayerData{}
		md[layer] = ld
	}
	switch el.Kind {
	case model.KindMarker:
		ld.Markers = append(ld.Markers, el)
	case model.KindPolygon:
		ld.Polygons = append(ld.Polygons, el)
	case model.KindLine:
		ld.Lines = append(ld.Lines, el)
	default:
		return ErrUnknownKind
	}
	return nil
}

// Update applies a partial patch to the element with the given ID.
func (s *Store) Update(id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	el := s.locate(id)
	if el == nil {
		return ErrNotFound
	}
	if patch.Label != nil {
		el.Label = *patch.Label
	}
	if patch.Description != nil {
		el.Description = *patch.Description
	}
	if patch.IsActive != nil {
		el.IsActive = *patch.IsActive
	}
	return nil
}

// Remove deletes the element with the given ID from whichever collection
// holds it.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, md := range s.sites {
		for _, ld := range md {
			for _, coll := range []*[]model.MapElement{&ld.Markers, &ld.Polygons, &ld.Lines} {
				if next, ok := removeByID(*coll, id); ok {
					*coll = next
					return nil
				}
			}
		}
	}
	return ErrNotFound
}

// SetPrimary designates the element with the given ID as the single primary
// element of its collection. The whole collection is rewritten in one pass
// (clear-then-set) under the write lock, so readers never observe two
// primaries. Unknown IDs leave the store unchanged.
func (s *Store) SetPrimary(siteID string, layer model.LayerID, kind model.GeometryKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	md, ok := s.sites[siteID]
	if !ok {
		return ErrNotFound
	}
	ld, ok := md[layer]
	if !ok {
		return ErrNotFound
	}
	coll := collectionFor(ld, kind)
	if coll == nil {
		return ErrNotFound
	}
	next, found := setPrimaryIn(*coll, id)
	if !found {
		return ErrNotFound
	}
	*coll = next
	return nil
}

// Element returns a copy of the element with the given ID.
func (s *Store) Element(id string) (model.MapElement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if el := s.locate(id); el != nil {
		return *el, true
	}
	return model.MapElement{}, false
}

// SiteData returns the map data of one site. The returned value aliases
// store internals; callers must treat it as read-only.
func (s *Store) SiteData(siteID string) (model.MapData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	md, ok := s.sites[siteID]
	return md, ok
}

// SiteIDs returns the registered site IDs in project order.
func (s *Store) SiteIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// locate finds an element pointer by ID. Caller must hold the lock.
func (s *Store) locate(id string) *model.MapElement {
	for _, md := range s.sites {
		for _, ld := range md {
			for _, coll := range []*[]model.MapElement{&ld.Markers, &ld.Polygons, &ld.Lines} {
				for i := range *coll {
					if (*coll)[i].ID == id {
						return &(*coll)[i]
					}
				}
			}
		}
	}
	return nil
}

func collectionFor(ld *model.LayerData, kind model.GeometryKind) *[]model.MapElement {
	switch kind {
	case model.KindMarker:
		return &ld.Markers
	case model.KindPolygon:
		return &ld.Polygons
	case model.KindLine:
		return &ld.Lines
	}
	return nil
}

// setPrimaryIn returns a new collection where only the element with the
// given ID has IsPrimary set. The input slice is not modified.
func setPrimaryIn(elems []model.MapElement, id string) ([]model.MapElement, bool) {
	found := false
	next := make([]model.MapElement, len(elems))
	for i, el := range elems {
		el.IsPrimary = el.ID == id
		if el.IsPrimary {
			found = true
		}
		next[i] = el
	}
	return next, found
}

func removeByID(elems []model.MapElement, id string) ([]model.MapElement, bool) {
	for i := range elems {
		if elems[i].ID == id {
			return append(elems[:i:i], elems[i+1:]...), true
		}
	}
	return elems, false
}
