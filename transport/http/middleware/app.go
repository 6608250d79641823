package middleware

import (
	"backoffice/config"
	"backoffice/infras/metrics"
	"backoffice/infras/otel"
	"backoffice/shared/cache"
	"backoffice/shared/constant"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"
	unmatchedRoute    = "unmatched"
)

type AppMiddleware interface {
	RequestID(next http.Handler) http.Handler
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel    otel.Otel
	config  *config.Config
	cache   cache.RedisCache
	metrics *metrics.Metrics
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache, metrics *metrics.Metrics) AppMiddleware {
	return &appMiddleware{
		otel:    otel,
		config:  config,
		cache:   cache,
		metrics: metrics,
	}
}

// RequestID keeps the caller's X-Request-ID or mints one; the backend client forwards it.
func (a *appMiddleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(constant.RequestHeaderRequestID)
		if id == "" {
			generated, err := gonanoid.New()
			if err != nil {
				generated = fmt.Sprintf("%d", time.Now().UnixNano())
			}

			id = generated
		}

		w.Header().Set(constant.RequestHeaderRequestID, id)
		ctx := context.WithValue(r.Context(), constant.ContextKeyRequestID, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Tracing opens the request span, then records status and duration against the matched route.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		scope.SetAttributes(map[string]any{
			"http.route":       route,
			"http.status_code": status,
		})

		if status >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s answered %d", r.Method, route, status))
		}

		duration := time.Since(start)
		a.metrics.ObserveHTTP(r.Method, route, status, duration)

		log.Debug().
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("duration", duration).
			Msg("request served")
	})
}
