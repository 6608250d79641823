//go:build wireinject
// +build wireinject

package di

import (
	"backoffice/config"
	"backoffice/infras/backend"
	"backoffice/infras/jwt"
	"backoffice/infras/metrics"
	"backoffice/infras/otel"
	"backoffice/infras/postgres"
	"backoffice/infras/redis"
	"backoffice/infras/s3"
	"backoffice/internal/session"
	"backoffice/shared/cache"
	"backoffice/transport/http"
	"backoffice/transport/http/middleware"
	"backoffice/transport/http/render"
	"backoffice/transport/http/router"

	activityRepository "backoffice/internal/domains/activity/repository"
	activityService "backoffice/internal/domains/activity/service"
	authService "backoffice/internal/domains/auth/service"
	calendarService "backoffice/internal/domains/calendar/service"
	mediaRepository "backoffice/internal/domains/media/repository"
	mediaService "backoffice/internal/domains/media/service"
	tagRepository "backoffice/internal/domains/tag/repository"
	tagService "backoffice/internal/domains/tag/service"
	todoRepository "backoffice/internal/domains/todo/repository"
	todoService "backoffice/internal/domains/todo/service"

	activityHandler "backoffice/internal/handlers/activity"
	authHandler "backoffice/internal/handlers/auth"
	homeHandler "backoffice/internal/handlers/home"
	mediaHandler "backoffice/internal/handlers/media"
	tagHandler "backoffice/internal/handlers/tag"
	todoHandler "backoffice/internal/handlers/todo"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	metrics.New,
	wire.Bind(new(backend.Recorder), new(*metrics.Metrics)),
	backend.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	wire.Bind(new(cache.LookupObserver), new(*metrics.Metrics)),
	cache.NewRedisCache,
	session.New,
	render.New,
)

var activityDomain = wire.NewSet(
	activityRepository.New,
	activityService.New,
)

var mediaDomain = wire.NewSet(
	mediaRepository.New,
	mediaService.New,
)

var tagDomain = wire.NewSet(
	tagRepository.New,
	tagService.New,
)

var todoDomain = wire.NewSet(
	todoRepository.New,
	todoService.New,
	calendarService.New,
)

var domains = wire.NewSet(
	activityDomain,
	mediaDomain,
	tagDomain,
	todoDomain,
	authService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	activityHandler.New,
	authHandler.New,
	homeHandler.New,
	mediaHandler.New,
	tagHandler.New,
	todoHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
