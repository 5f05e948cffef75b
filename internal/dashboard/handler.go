package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portalmitra/portalmitra/internal/platform/httpx"
	"github.com/portalmitra/portalmitra/internal/rbac"
	"github.com/portalmitra/portalmitra/internal/shared"
)

// Handler manages dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermLihatDashboardStatistik, shared.PermKelolaDashboardStatistik))
		r.Get("/statistik", h.statistik)
	})
}

func (h *Handler) statistik(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistik(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": stats})
}
