package router

import (
	"backoffice/config"
	_ "backoffice/docs"
	"backoffice/infras/metrics"
	"backoffice/internal/handlers/activity"
	"backoffice/internal/handlers/auth"
	"backoffice/internal/handlers/home"
	"backoffice/internal/handlers/media"
	"backoffice/internal/handlers/tag"
	"backoffice/internal/handlers/todo"
	"backoffice/shared/constant"
	"backoffice/transport/http/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Home     home.Handler
	Media    media.Handler
	Tag      tag.Handler
	Todo     todo.Handler
	Activity activity.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	app            middleware.AppMiddleware
	auth           middleware.Auth
	metrics        *metrics.Metrics
	config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.app.RequestID, r.app.Tracing, chiMiddleware.Recoverer, r.app.RateLimit())

	if r.config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.config.App.CORS.AllowedHeaders,
			AllowCredentials: r.config.App.CORS.AllowCredentials,
			MaxAge:           r.config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	router.Get(constant.RouteSwaggerPrefix+"/*", httpSwagger.Handler(httpSwagger.URL(constant.RouteSwaggerPrefix+"/doc.json")))

	r.DomainHandlers.Auth.Router(router)

	router.Group(func(protected chi.Router) {
		protected.Use(r.auth.Session)

		r.DomainHandlers.Auth.SessionRouter(protected)
		r.DomainHandlers.Home.Router(protected)
		r.DomainHandlers.Media.Router(protected)
		r.DomainHandlers.Tag.Router(protected)
		r.DomainHandlers.Todo.Router(protected)
		r.DomainHandlers.Activity.Router(protected)
	})
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	auth middleware.Auth,
	metrics *metrics.Metrics,
	config *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		app:            app,
		auth:           auth,
		metrics:        metrics,
		config:         config,
	}
}
