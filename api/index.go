package handler

import (
	"backoffice/config"
	"backoffice/di"
	"backoffice/infras/jwt"
	"backoffice/shared/logger"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	console http.Handler
)

// Handler serves the console from a serverless function. The handler, and with it
// the session store, is built once per warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if _, err := jwt.EnsureSecret(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare session secret")
		}

		console = di.InitializeService().Handler()
	})

	console.ServeHTTP(w, r)
}
