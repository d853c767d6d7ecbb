package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/skygrid/planner/internal/database"
	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/pathgen"
	"github.com/skygrid/planner/internal/tilecache"
	"github.com/skygrid/planner/internal/viewport"
	"github.com/skygrid/planner/pkg/geojson"
)

// planRequest is the JSON document accepted by the plan command.
type planRequest struct {
	Algorithm   string           `json:"algorithm"` // grid, corridor, perimeter
	Coordinates []model.Position `json:"coordinates"`

	Grid     model.GridSettings     `json:"grid"`
	Corridor model.CorridorSettings `json:"corridor"`

	// perimeter settings
	SpacingMeters  float64 `json:"spacingMeters"`
	AltitudeMeters float64 `json:"altitudeMeters"`
	SpeedMps       float64 `json:"speedMps"`
}

func runPlan(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("plan requires a request file")
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}
	var req planRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}

	start := time.Now()
	var wps []model.Waypoint
	switch req.Algorithm {
	case "grid":
		wps, err = pathgen.Grid(req.Coordinates, req.Grid)
	case "corridor":
		wps, err = pathgen.Corridor(req.Coordinates, req.Corridor)
	case "perimeter":
		wps, err = pathgen.Perimeter(req.Coordinates, req.SpacingMeters, req.AltitudeMeters, req.SpeedMps)
	default:
		return fmt.Errorf("unknown algorithm %q", req.Algorithm)
	}
	if err != nil {
		return fmt.Errorf("generating path: %w", err)
	}

	stats := pathgen.ComputeStats(wps)
	Logger.Info("Generated flight path",
		"algorithm", req.Algorithm,
		"waypoints", stats.WaypointCount,
		"distanceMeters", stats.DistanceMeters,
		"durationMinutes", stats.DurationMinutes,
		"took", time.Since(start),
	)
	influxManager.WritePathStats("cli", req.Algorithm, stats)

	fc := geojson.NewFeatureCollection(geojson.FromWaypoints(wps))
	out, err := geojson.Marshal(fc)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	if len(args) > 1 {
		if err := os.WriteFile(args[1], out, 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		Logger.Info("Wrote flight path", "path", args[1])
		return nil
	}
	fmt.Println(string(out))
	return nil
}

func runTiles(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("tiles requires a subcommand: estimate, fetch or clear")
	}
	sub, rest := args[0], args[1:]

	if sub == "clear" {
		store, err := openTileStore()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		Logger.Info("Tile cache cleared", "namespace", viper.GetString("tiles.namespace"))
		return nil
	}

	fs := flag.NewFlagSet("tiles "+sub, flag.ContinueOnError)
	minLng := fs.Float64("minLng", 0, "west bound")
	minLat := fs.Float64("minLat", 0, "south bound")
	maxLng := fs.Float64("maxLng", 0, "east bound")
	maxLat := fs.Float64("maxLat", 0, "north bound")
	minZoom := fs.Int("minZoom", 10, "minimum zoom level")
	maxZoom := fs.Int("maxZoom", 16, "maximum zoom level")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	bounds := viewport.Bounds{
		MinLng: *minLng, MinLat: *minLat,
		MaxLng: *maxLng, MaxLat: *maxLat,
	}

	switch sub {
	case "estimate":
		est := tilecache.EstimateBounds(bounds, *minZoom, *maxZoom,
			int64(viper.GetInt("tiles.averageTileBytes")))
		fmt.Printf("%d tiles, ~%.1f MB\n",
			est.TileCount, float64(est.EstimatedBytes)/(1024*1024))
		return nil

	case "fetch":
		urlTemplate := viper.GetString("tiles.urlTemplate")
		if urlTemplate == "" {
			return fmt.Errorf("tiles.urlTemplate is not configured")
		}
		store, err := openTileStore()
		if err != nil {
			return err
		}
		fetcher := tilecache.NewFetcher(store, urlTemplate, Logger)

		start := time.Now()
		res := fetcher.Fetch(context.Background(), bounds, *minZoom, *maxZoom,
			func(done, total int, percent float64) {
				if done%50 == 0 || done == total {
					fmt.Printf("\r%d/%d tiles (%.0f%%)", done, total, percent)
				}
			})
		fmt.Println()
		if res.Err != nil {
			return fmt.Errorf("tile fetch aborted: %w", res.Err)
		}
		Logger.Info("Tile fetch complete",
			"cached", res.CachedCount,
			"failed", res.FailedCount,
			"took", time.Since(start),
		)
		influxManager.WriteTileFetch(viper.GetString("tiles.namespace"), res, time.Since(start))
		return nil

	default:
		return fmt.Errorf("unknown tiles subcommand %q", sub)
	}
}

func openTileStore() (*tilecache.Store, error) {
	db, err := database.GetSqliteDBStandalone(viper.GetString("tiles.dbPath"))
	if err != nil {
		return nil, fmt.Errorf("opening tile database: %w", err)
	}
	return tilecache.NewStore(db, viper.GetString("tiles.namespace"))
}
