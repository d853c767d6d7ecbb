// Package influx exports planning telemetry to InfluxDB: one measurement
// per generated flight plan and one per offline tile fetch run. Disabled
// installs are a no-op.
package influx

import (
	"errors"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/skygrid/planner/internal/model"
	"github.com/skygrid/planner/internal/tilecache"
)

// Manager handles the InfluxDB connection and writes.
type Manager struct {
	Client  influxdb2.Client
	Writer  influxdb2_api.WriteAPI
	IsValid bool
	Logger  zerolog.Logger
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		IsValid: false,
		Logger:  log,
	}
}

// Connect establishes a connection to InfluxDB.
func (m *Manager) Connect() error {
	if !viper.GetBool("influx.enabled") {
		return errors.New("influx.enabled is false")
	}

	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf(
			"%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		viper.GetString("influx.token"),
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	m.Writer = m.Client.WriteAPI(
		viper.GetString("influx.org"),
		viper.GetString("influx.bucket"),
	)
	m.IsValid = true
	m.Logger.Info().Msg("Connected to InfluxDB")
	return nil
}

// Close flushes pending writes and closes the client.
func (m *Manager) Close() {
	if !m.IsValid {
		return
	}
	m.Writer.Flush()
	m.Client.Close()
	m.IsValid = false
}

// WritePathStats records the statistics of one generated flight plan.
func (m *Manager) WritePathStats(siteID, algorithm string, stats model.FlightStats) {
	if !m.IsValid {
		return
	}
	p := influxdb2.NewPoint(
		"flight_plan",
		map[string]string{
			"site":      siteID,
			"algorithm": algorithm,
		},
		map[string]any{
			"distance_m":     stats.DistanceMeters,
			"duration_min":   stats.DurationMinutes,
			"waypoints":      stats.WaypointCount,
			"altitude_min_m": stats.AltitudeRange.Min,
			"altitude_max_m": stats.AltitudeRange.Max,
			"altitude_avg_m": stats.AltitudeRange.Average,
		},
		time.Now(),
	)
	m.Writer.WritePoint(p)
}

// WriteTileFetch records the outcome of one offline tile fetch run.
func (m *Manager) WriteTileFetch(namespace string, res tilecache.Result, took time.Duration) {
	if !m.IsValid {
		return
	}
	p := influxdb2.NewPoint(
		"tile_fetch",
		map[string]string{
			"namespace": namespace,
		},
		map[string]any{
			"cached":      res.CachedCount,
			"failed":      res.FailedCount,
			"success":     res.Success,
			"duration_ms": took.Milliseconds(),
		},
		time.Now(),
	)
	m.Writer.WritePoint(p)
}
