package main

import (
	"backoffice/config"
	"backoffice/di"
	"backoffice/helper"
	"backoffice/infras/jwt"
	"backoffice/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	generated, err := jwt.EnsureSecret(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare session secret")
	}

	if generated {
		log.Warn().Msg("JWT_SESSION_SECRET is not set, using an ephemeral secret; sessions end on restart")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
