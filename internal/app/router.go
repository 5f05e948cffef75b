package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/portalmitra/portalmitra/internal/auth"
	"github.com/portalmitra/portalmitra/internal/dashboard"
	"github.com/portalmitra/portalmitra/internal/mitra"
	"github.com/portalmitra/portalmitra/internal/observability"
	"github.com/portalmitra/portalmitra/internal/surat"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthHandler      *auth.Handler
	AuthMiddleware   auth.Middleware
	MitraHandler     *mitra.Handler
	SuratHandler     *surat.Handler
	DashboardHandler *dashboard.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with portal defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		if params.Config != nil && params.Config.AuthRateLimit > 0 {
			r.Use(httprate.LimitByIP(params.Config.AuthRateLimit, params.Config.AuthRateWindow))
		}
		params.AuthHandler.MountRoutes(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireUser)
		if params.MitraHandler != nil {
			r.Route("/api/mitra", params.MitraHandler.MountRoutes)
		}
		if params.SuratHandler != nil {
			r.Route("/api/surat", params.SuratHandler.MountRoutes)
		}
		if params.DashboardHandler != nil {
			r.Route("/api/dashboard", params.DashboardHandler.MountRoutes)
		}
	})

	return r
}
