package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skygrid/planner/internal/drawing"
	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/pathgen"
	"github.com/skygrid/planner/internal/viewport"
)

// runDemo drives the whole planning stack against a synthetic project:
// create a project and site, draw a flight geography, generate a grid path
// and report the result. Useful for smoke-testing a configured backend.
func runDemo() error {
	start := time.Now()

	project := &model.Project{
		ID:   uuid.NewString(),
		Name: "Demo Project",
	}
	if err := persistBackend.SaveProject(project); err != nil {
		return fmt.Errorf("saving demo project: %w", err)
	}
	if _, err := plannerService.LoadProject(project.ID); err != nil {
		return fmt.Errorf("loading demo project: %w", err)
	}

	site, err := plannerService.CreateSite("Demo Site")
	if err != nil {
		return fmt.Errorf("creating demo site: %w", err)
	}
	Logger.Info("Created demo site", "site", site.ID)

	// roughly 200m x 200m square near Rotterdam
	square := []model.Position{
		{Lng: 4.4700, Lat: 51.9200},
		{Lng: 4.4729, Lat: 51.9200},
		{Lng: 4.4729, Lat: 51.9218},
		{Lng: 4.4700, Lat: 51.9218},
	}

	machine := drawing.NewMachine(geoStore, plannerCtx)
	if err := machine.Start(drawing.ModeFlightGeography); err != nil {
		return fmt.Errorf("starting drawing: %w", err)
	}
	for _, p := range square {
		if err := machine.AddPoint(p); err != nil {
			return fmt.Errorf("adding point: %w", err)
		}
	}
	if err := machine.Complete(); err != nil {
		return fmt.Errorf("completing drawing: %w", err)
	}
	plannerService.SyncSiteData()

	md, ok := geoStore.SiteData(site.ID)
	if !ok {
		return fmt.Errorf("demo site has no map data")
	}
	polys := md[model.LayerFlightPlan].Polygons
	if len(polys) == 0 {
		return fmt.Errorf("demo site has no flight geography")
	}

	wps, err := pathgen.Grid(polys[0].Coordinates, model.GridSettings{
		SpacingMeters:  30,
		AngleDegrees:   0,
		AltitudeMeters: 60,
		SpeedMps:       8,
	})
	if err != nil {
		return fmt.Errorf("generating demo path: %w", err)
	}
	stats := pathgen.ComputeStats(wps)
	influxManager.WritePathStats(site.ID, "grid", stats)

	if b, ok := viewport.BoundsForSite(*site); ok {
		Logger.Info("Demo viewport",
			"minLng", b.MinLng, "minLat", b.MinLat,
			"maxLng", b.MaxLng, "maxLat", b.MaxLat)
	}

	Logger.Info("Demo complete",
		"waypoints", stats.WaypointCount,
		"distanceMeters", stats.DistanceMeters,
		"durationMinutes", stats.DurationMinutes,
		"took", time.Since(start),
	)
	return nil
}
