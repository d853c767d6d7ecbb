// Package config loads the planner configuration from a JSON file via
// viper, with defaults for every key.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./plannerlogs")

	viper.SetDefault("storage.type", "memory")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "planner")
	viper.SetDefault("db.sqlitePath", "./planner.db")

	viper.SetDefault("mapengine.accessToken", "")
	viper.SetDefault("basemap.default", "streets")

	viper.SetDefault("tiles.urlTemplate", "")
	viper.SetDefault("tiles.namespace", "offline-tiles")
	viper.SetDefault("tiles.averageTileBytes", 25*1024)
	viper.SetDefault("tiles.dbPath", "./tiles.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "planner-metrics")
	viper.SetDefault("influx.bucket", "flight_planning")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetConfigName("planner.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
