package main

import (
	"os"

	"solireserve/config"
	"solireserve/helper"
	"solireserve/shared/logger"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up | step-up | down | drop | version | force <version>"

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()

	logger.InitLogger(cfg)

	action, arg := os.Args[1], ""
	if len(os.Args) > 2 {
		arg = os.Args[2]
	}

	if err := helper.Run(cfg, action, arg); err != nil {
		log.Fatal().Err(err).Str("usage", usage).Msg("Migration failed")
	}
}
