package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"solireserve/config"
	"solireserve/di"
	"solireserve/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	defer func() {
		if err := worker.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka client")
		}
	}()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Process events consumer stopped")

		return
	}

	log.Info().Msg("Process events consumer stopped")
}
