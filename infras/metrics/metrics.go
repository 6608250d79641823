package metrics

import (
	"backoffice/config"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "backoffice"

// Metrics owns the console's Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpDuration    *prometheus.HistogramVec
	httpTotal       *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	backendTotal    *prometheus.CounterVec
	loaderPages     *prometheus.CounterVec
	loaderItems     *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
}

func New(cfg *config.Config) *Metrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"app": cfg.App.Name}

	m := &Metrics{
		registry: registry,
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "Duration of console HTTP requests in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of console HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "backend_request_duration_seconds",
			Help:        "Duration of calls to the REST backend in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		backendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "backend_requests_total",
			Help:        "Total number of calls to the REST backend",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		loaderPages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "loader_pages_total",
			Help:        "Pages handled by list loaders by outcome",
			ConstLabels: constLabels,
		}, []string{"loader", "outcome"}),
		loaderItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "loader_items_total",
			Help:        "Items appended by list loaders",
			ConstLabels: constLabels,
		}, []string{"loader"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "cache_lookups_total",
			Help:        "Cache lookups by key family and result",
			ConstLabels: constLabels,
		}, []string{"family", "result"}),
	}

	registry.MustRegister(
		m.httpDuration,
		m.httpTotal,
		m.backendDuration,
		m.backendTotal,
		m.loaderPages,
		m.loaderItems,
		m.cacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})

	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}

	return m.handler
}

func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	code := strconv.Itoa(status)
	m.httpDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	m.httpTotal.WithLabelValues(method, route, code).Inc()
}

// ObserveBackend records one backend round trip; status 0 means the request never got a response.
func (m *Metrics) ObserveBackend(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	code := strconv.Itoa(status)
	m.backendDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	m.backendTotal.WithLabelValues(method, route, code).Inc()
}

func (m *Metrics) PageLoaded(loader string, items int) {
	if m == nil {
		return
	}

	m.loaderPages.WithLabelValues(loader, "loaded").Inc()
	m.loaderItems.WithLabelValues(loader).Add(float64(items))
}

func (m *Metrics) PageFailed(loader string) {
	if m == nil {
		return
	}

	m.loaderPages.WithLabelValues(loader, "failed").Inc()
}

func (m *Metrics) StaleDiscarded(loader string) {
	if m == nil {
		return
	}

	m.loaderPages.WithLabelValues(loader, "stale").Inc()
}

func (m *Metrics) CacheLookup(family string, hit bool) {
	if m == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}

	m.cacheLookups.WithLabelValues(family, result).Inc()
}
