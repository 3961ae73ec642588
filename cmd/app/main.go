package main

import (
	"solireserve/config"
	"solireserve/di"
	"solireserve/helper"
	"solireserve/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title SoliReserve API
// @version 1.0
// @description Hotel reservations for social housing operators: conventions, tariffs, reservation processes and savings reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
