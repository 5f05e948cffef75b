package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/portalmitra/portalmitra/internal/platform/httpx"
	"github.com/portalmitra/portalmitra/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows. Responses use the
// portal envelope: {"success": bool, ...}.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type successResponse struct {
	Success bool `json:"success"`
	User    any  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSON(w, http.StatusBadRequest, failureResponse{Message: "Username dan password wajib diisi"})
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.JSON(w, http.StatusBadRequest, failureResponse{Message: "Username dan password wajib diisi"})
		return
	}

	user, err := h.service.Login(r.Context(), Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		httpx.JSON(w, loginFailureStatus(err), failureResponse{Message: shared.UserSafeMessage(err)})
		return
	}
	httpx.JSON(w, http.StatusOK, successResponse{Success: true, User: user})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSON(w, http.StatusBadRequest, failureResponse{Message: shared.UserSafeMessage(shared.ErrInvalidInput)})
		return
	}

	identity, err := h.service.Register(r.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httpx.JSON(w, registerFailureStatus(err), failureResponse{Message: shared.UserSafeMessage(err)})
		return
	}
	httpx.JSON(w, http.StatusCreated, successResponse{Success: true, Message: "Registrasi berhasil", User: identity})
}

func loginFailureStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrAccountInactive),
		errors.Is(err, shared.ErrNoRoleAssigned):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func registerFailureStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUsernameTaken), errors.Is(err, shared.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
