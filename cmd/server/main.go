package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/obesitrack/internal/config"
	"github.com/MKhiriev/obesitrack/internal/handler"
	"github.com/MKhiriev/obesitrack/internal/inference"
	"github.com/MKhiriev/obesitrack/internal/logger"
	"github.com/MKhiriev/obesitrack/internal/server"
	"github.com/MKhiriev/obesitrack/internal/service"
	"github.com/MKhiriev/obesitrack/internal/store"
	"github.com/MKhiriev/obesitrack/models"
)

const fallbackVersion = "1.0.0"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("obesitrack-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping default")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = fallbackVersion
		if buildInfo.Known() {
			cfg.App.Version = buildInfo.BuildVersion()
		}
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("model_path", cfg.Model.Path).
		Str("version", cfg.App.Version).
		Msg("received configs")

	if err = run(context.Background(), cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server terminated")
	}
}

// run wires storages, the classifier, services, handlers and servers, then
// blocks until shutdown. Storages are closed on every return path.
func run(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	predictor, err := inference.NewInferenceService(ctx, cfg.Model, log)
	if err != nil {
		return fmt.Errorf("error loading model artifact: %w", err)
	}

	services, err := service.NewServices(storages, predictor, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	version, date, commit := info.BuildVersion(), info.BuildDate(), info.BuildCommit()
	if version == "" {
		version = "N/A"
	}
	if date == "" {
		date = "N/A"
	}
	if commit == "" {
		commit = "N/A"
	}

	fmt.Printf("Build version: %s\n", version)
	fmt.Printf("Build date: %s\n", date)
	fmt.Printf("Build commit: %s\n", commit)
}
