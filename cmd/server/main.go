package main

import (
	"context"
	"fmt"

	"github.com/credvault/credvault/internal/config"
	"github.com/credvault/credvault/internal/crypto"
	httpHandler "github.com/credvault/credvault/internal/handler/http"
	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/server"
	"github.com/credvault/credvault/internal/service"
	"github.com/credvault/credvault/internal/store"
	"github.com/credvault/credvault/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("credvault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	codec, err := crypto.NewCodec([]byte(cfg.App.EncryptionKey))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating secret codec")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, codec, cfg.App, log)
	handler := httpHandler.NewHandler(services, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
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
