package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics: prometheus-метрики HTTP-слоя на собственном реестре.
type Metrics struct {
	reg *prometheus.Registry

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	meetingsListed  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meeting_service",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route name, method and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meeting_service",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		meetingsListed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meeting_service",
			Name:      "meetings_index_total",
			Help:      "Meeting index requests by sidebar filter.",
		}, []string{"filter"}),
	}
	m.reg.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.meetingsListed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) ObserveIndex(filter string) {
	m.meetingsListed.WithLabelValues(filter).Inc()
}

// Middleware пишет счётчик и латентность; route: имя маршрута из таблицы.
func (m *Metrics) Middleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requestCount.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern: шаблон маршрута chi, если он уже сматчен.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		return rc.RoutePattern()
	}
	return ""
}
