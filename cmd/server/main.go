package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/cowtrack/analytics-backend-go/internal/api"
	"github.com/cowtrack/analytics-backend-go/internal/config"
	"github.com/cowtrack/analytics-backend-go/internal/database"
	"github.com/cowtrack/analytics-backend-go/internal/export"
	"github.com/cowtrack/analytics-backend-go/internal/handler"
	"github.com/cowtrack/analytics-backend-go/internal/repository"
	"github.com/cowtrack/analytics-backend-go/internal/service"
)

func main() {
	log := slog.New(tint.NewHandler(os.Stderr, nil))
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open run archive", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Error("failed to migrate run archive", "error", err)
		os.Exit(1)
	}
	runs := repository.NewRunRepository(db)

	ingestion, err := service.NewIngestionService(&service.IngestionConfig{
		Logger:   log,
		Runs:     runs,
		CacheTTL: cfg.CacheTTL,
	})
	if err != nil {
		log.Error("failed to create ingestion service", "error", err)
		os.Exit(1)
	}
	defer ingestion.Close()

	dashboard := service.NewDashboardService()
	exporter := export.NewExporter(log, cfg.ExportDir)

	// Seed the dashboard from a local export when one is configured, so a
	// fresh deployment serves data before the first admin-triggered run.
	if cfg.SourceFile != "" {
		snap, err := ingestion.IngestFromFile(cfg.SourceFile)
		if err != nil {
			log.Error("failed to ingest source file", "path", cfg.SourceFile, "error", err)
			os.Exit(1)
		}
		dashboard.SetSnapshot(snap)
	}

	router := api.SetupRouter(cfg, log,
		handler.NewDashboardHandler(dashboard),
		handler.NewIngestHandler(ingestion, dashboard, exporter, runs, cfg.SourceURL),
	)

	log.Info("server starting", "port", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
