package http

import (
	"backoffice/config"
	"backoffice/infras/otel"
	"backoffice/infras/postgres"
	"backoffice/internal/session"
	"backoffice/transport/http/response"
	"backoffice/transport/http/router"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readHeaderTimeout = 10 * time.Second
	healthPath        = "/healthz"
)

type HTTP struct {
	Config *config.Config
	Router router.Router
	store  *session.Store
	otel   otel.Otel
	db     *postgres.Connection
	state  atomic.Int32
	mux    *chi.Mux
	once   sync.Once
}

func New(cfg *config.Config, r router.Router, store *session.Store, otel otel.Otel, db *postgres.Connection) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
		store:  store,
		otel:   otel,
		db:     db,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Serve listens until SIGINT or SIGTERM, then drains through the grace and cleanup periods.
func (h *HTTP) Serve() {
	h.setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go h.store.Run(ctx)

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting up HTTP server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	case <-ctx.Done():
	}

	h.shutdown(server)
}

// Handler exposes the routes without listening, for serverless entrypoints.
func (h *HTTP) Handler() http.Handler {
	h.setup()

	return h.mux
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.mux = chi.NewRouter()
		h.mux.Get(healthPath, h.health)
		h.Router.SetupRoutes(h.mux)
		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, "OK")
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) shutdown(server *http.Server) {
	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == "development" {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		shutdownConfig.GracePeriodSeconds = 0
		shutdownConfig.CleanupPeriodSeconds = 0
	} else {
		log.Info().Msg("Received SIGTERM.")
	}

	// Load balancers see the failing health check and stop routing here.
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")
	h.state.Store(int32(ServerStateInGracePeriod))
	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")
	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second+time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server did not drain in time")
	}

	if err := h.db.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close activity database")
	}

	if err := h.otel.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to flush traces")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
