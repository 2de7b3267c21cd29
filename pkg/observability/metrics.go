package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/meridian/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meridian"

// Metrics holds every collector. The zero value is not usable; call New.
type Metrics struct {
	registry *prometheus.Registry

	navigation     *prometheus.CounterVec
	layoutBuilds   *prometheus.CounterVec
	layoutDuration prometheus.Histogram
	layoutPlaced   prometheus.Gauge
	layoutSkipped  prometheus.Gauge
	layoutStranded prometheus.Gauge
	climateTiles   *prometheus.CounterVec
	climatePasses  prometheus.Counter
	reqDuration    *prometheus.HistogramVec
	reqInflight    prometheus.Gauge
}

// New creates the collectors and registers them, plus the Go runtime and
// process collectors, on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		navigation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigation_total",
			Help:      "Navigation outcomes by kind and fallback reason.",
		}, []string{"kind", "reason"}),
		layoutBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_requests_total",
			Help:      "Layout requests by source (built or cache).",
		}, []string{"source"}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_build_duration_seconds",
			Help:      "Duration of BFS layout builds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		layoutPlaced: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_placed_areas",
			Help:      "Areas placed by the last layout build.",
		}),
		layoutSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_skipped_areas",
			Help:      "Areas unreachable from the seeds in the last layout build.",
		}),
		layoutStranded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_unplaceable_areas",
			Help:      "Areas left without a free hex cell in the last layout build.",
		}),
		climateTiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "climate_tiles_rewritten_total",
			Help:      "Tiles rewritten by climate passes, by winning direction.",
		}, []string{"direction"}),
		climatePasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "climate_passes_total",
			Help:      "Climate passes run.",
		}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_inflight",
			Help:      "HTTP requests currently being served.",
		}),
	}

	m.registry.MustRegister(
		m.navigation, m.layoutBuilds, m.layoutDuration, m.layoutPlaced, m.layoutSkipped,
		m.layoutStranded, m.climateTiles, m.climatePasses, m.reqDuration, m.reqInflight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the private registry, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveNavigation counts one resolved move.
func (m *Metrics) ObserveNavigation(kind domain.NavigationKind, reason domain.UnknownReason) {
	r := string(reason)
	if r == "" {
		r = "none"
	}
	m.navigation.WithLabelValues(string(kind), r).Inc()
}

// ObserveLayout records a layout request. A cached layout carries no duration.
func (m *Metrics) ObserveLayout(l *domain.Layout, took time.Duration, cached bool) {
	if cached {
		m.layoutBuilds.WithLabelValues("cache").Inc()
		return
	}
	m.layoutBuilds.WithLabelValues("built").Inc()
	m.layoutDuration.Observe(took.Seconds())
	if l != nil {
		m.layoutPlaced.Set(float64(len(l.Areas())))
		m.layoutSkipped.Set(float64(len(l.Skipped)))
		m.layoutStranded.Set(float64(len(l.Unplaceable)))
	}
}

// ObserveClimate records one climate pass.
func (m *Metrics) ObserveClimate(zones []domain.TransitionZone) {
	m.climatePasses.Inc()
	for _, z := range zones {
		m.climateTiles.WithLabelValues(string(z.Direction)).Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware instruments chi routes by their pattern, not the raw path, to
// keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.reqInflight.Inc()
		defer m.reqInflight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.reqDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
