package cart

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// MutationLimit caps mutations per client IP per MutationWindow; zero uses the defaults.
	MutationLimit  int
	MutationWindow time.Duration
}

const (
	defaultMutationLimit  = 20
	defaultMutationWindow = 10 * time.Second
)

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := kit.NewRouter(kit.RouterOptions{
		Log:            deps.Log,
		Service:        deps.Service,
		Registry:       deps.Registry,
		MetricsEnabled: deps.MetricsEnabled,
		MetricsToken:   deps.MetricsToken,
	})
	setupRoutes(r, s, deps)
	return r
}

func setupRoutes(r *chi.Mux, s *Server, deps HTTPDeps) {
	limit, window := deps.MutationLimit, deps.MutationWindow
	if limit <= 0 {
		limit = defaultMutationLimit
	}
	if window <= 0 {
		window = defaultMutationWindow
	}
	limiter := kit.NewIPRateLimiter(limit, window)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Route("/cart", func(cr chi.Router) {
		cr.Get("/", s.getCart)
		cr.Get("/notifications", s.notifications)

		cr.Group(func(mr chi.Router) {
			mr.Use(limiter.Middleware)
			mr.Post("/products/{id}", s.add)
			mr.Delete("/products/{id}", s.remove)
			mr.Put("/products/{id}/amount", s.updateAmount)
		})
	})
}
