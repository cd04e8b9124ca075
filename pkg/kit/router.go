package kit

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterOptions struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

// NewRouter returns a chi router carrying the shared middleware stack.
// With a Registry set, requests are measured and, if enabled, /metrics is
// served behind MetricsAuth.
func NewRouter(opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Recoverer)
	r.Use(Logging(opts.Log))

	if opts.Registry == nil {
		return r
	}

	metrics := NewMetrics(opts.Registry)
	r.Use(metrics.Middleware(opts.Service, ChiRoutePatternOrPath))

	if opts.MetricsEnabled {
		r.With(MetricsAuth(opts.MetricsToken)).
			Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}
	return r
}
