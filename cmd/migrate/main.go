package main

import (
	"backoffice/config"
	"backoffice/helper"
	"backoffice/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	switch os.Args[1] {
	case helper.ActionUp, helper.ActionDown, helper.ActionDrop, helper.ActionStepUp:
		if err := helper.Runner(cfg, os.Args[1]); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	default:
		log.Fatal().Str("direction", os.Args[1]).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
