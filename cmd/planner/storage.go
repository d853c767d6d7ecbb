package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/skygrid/planner/internal/database"
	"github.com/skygrid/planner/internal/geodata"
	"github.com/skygrid/planner/internal/persist"
	"github.com/skygrid/planner/internal/persist/gormstore"
	"github.com/skygrid/planner/internal/persist/memory"
	"github.com/skygrid/planner/internal/planner"
)

func initStorage() error {
	backend, err := createPersistBackend(viper.GetString("storage.type"))
	if err != nil {
		Logger.Error("Failed to create persistence backend", "error", err)
		return err
	}
	persistBackend = backend
	if err := persistBackend.Init(); err != nil {
		Logger.Error("Failed to initialize persistence backend", "error", err)
		return err
	}

	geoStore = geodata.New()
	plannerCtx = planner.NewContext()
	plannerService = planner.NewService(planner.Dependencies{
		GeoData: geoStore,
		Persist: persistBackend,
		Log:     Logger,
	}, plannerCtx)

	return nil
}

func createPersistBackend(kind string) (persist.Store, error) {
	switch kind {
	case "database":
		dbManager = database.NewManager(ZLogger)
		if err := dbManager.Connect(); err != nil {
			return nil, fmt.Errorf("connecting database: %w", err)
		}
		Logger.Info("Database persistence backend initialized")
		return gormstore.New(dbManager.DB), nil

	default:
		Logger.Info("Memory persistence backend initialized")
		return memory.New(), nil
	}
}
