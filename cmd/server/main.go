package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/handler"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/server"
	"github.com/MKhiriev/go-blog-identity/internal/service"
	"github.com/MKhiriev/go-blog-identity/internal/store"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// local development convenience; absence of the file is not an error
	_ = godotenv.Load()

	log := logger.NewLogger("go-blog-identity")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)
	services := service.NewServices(repositories, cfg, log)
	handlers := handler.NewHandlers(services, cfg, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
