package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/skygrid/planner/internal/config"
	"github.com/skygrid/planner/internal/database"
	"github.com/skygrid/planner/internal/geodata"
	"github.com/skygrid/planner/internal/influx"
	"github.com/skygrid/planner/internal/logging"
	"github.com/skygrid/planner/internal/persist"
	"github.com/skygrid/planner/internal/planner"
)

// version info - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "planner"
)

// global variables
var (
	SessionStartTime time.Time = time.Now()

	// LogFilePath is the session log file inside logsDir
	LogFilePath string
	LogFile     *os.File

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// ZLogger is the zerolog logger used by the database and influx managers
	ZLogger zerolog.Logger

	// Services
	dbManager      *database.Manager
	influxManager  *influx.Manager
	persistBackend persist.Store
	geoStore       *geodata.Store
	plannerCtx     *planner.Context
	plannerService *planner.Service
)

func setup() {
	var err error

	// Initialize slog manager before config so load failures get logged
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(nil, viper.GetString("logLevel"))
	Logger = SlogManager.Logger()

	err = config.Load(".")
	if err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	// create logs dir if it doesn't exist
	if _, err := os.Stat(viper.GetString("logsDir")); os.IsNotExist(err) {
		os.Mkdir(viper.GetString("logsDir"), 0755)
	}

	LogFilePath = logging.LogFilePath(viper.GetString("logsDir"), AppName, SessionStartTime)
	LogFile, err = os.OpenFile(LogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
	}

	// Re-setup logging with file output
	SlogManager.Setup(LogFile, viper.GetString("logLevel"))
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", LogFilePath)

	ZLogger = logging.NewZerolog(LogFile)

	influxManager = influx.NewManager(ZLogger)
	if viper.GetBool("influx.enabled") {
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("Failed to connect to InfluxDB", "error", err)
		}
	}
}

func main() {
	setup()
	Logger.Info("Starting up...", "version", CurrentVersion, "build", BuildDate)

	if err := initStorage(); err != nil {
		Logger.Error("Storage initialization failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		influxManager.Close()
		if persistBackend != nil {
			persistBackend.Close()
		}
	}()

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch strings.ToLower(args[0]) {
	case "version":
		fmt.Printf("%s %s (%s)\n", AppName, CurrentVersion, BuildDate)
	case "demo":
		err = runDemo()
	case "plan":
		err = runPlan(args[1:])
	case "tiles":
		err = runTiles(args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		Logger.Error("Command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  planner version")
	fmt.Println("  planner demo")
	fmt.Println("  planner plan <request.json> [output.geojson]")
	fmt.Println("  planner tiles estimate -minLng ... -minLat ... -maxLng ... -maxLat ... -minZoom ... -maxZoom ...")
	fmt.Println("  planner tiles fetch    -minLng ... -minLat ... -maxLng ... -maxLat ... -minZoom ... -maxZoom ...")
	fmt.Println("  planner tiles clear")
}
