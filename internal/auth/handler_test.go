package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/portalmitra/portalmitra/internal/auth"
	"github.com/portalmitra/portalmitra/internal/rbac"
	"github.com/portalmitra/portalmitra/internal/shared"
)

func newAuthRouter(repo auth.Repository, resolver auth.RoleResolver) chi.Router {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	handler := auth.NewHandler(logger, auth.NewService(repo, resolver, logger, auth.ServiceConfig{}))
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestLoginHandlerEmptyFields(t *testing.T) {
	router := newAuthRouter(newStubRepo(), &stubResolver{})

	res := postJSON(t, router, "/login", `{"username":"","password":""}`)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Username dan password wajib diisi") {
		t.Fatalf("expected empty-field message, got: %s", res.Body.String())
	}
}

func TestLoginHandlerSuccess(t *testing.T) {
	repo := newStubRepo(activeUser(t, "budi", "rahasia123"))
	resolver := &stubResolver{resolution: rbac.Resolution{
		Role:        rbac.Role{ID: "r1", Name: "guest"},
		Permissions: []string{"lihat_dashboard_statistik", "lihat_data_kerjasama"},
	}}
	router := newAuthRouter(repo, resolver)

	res := postJSON(t, router, "/login", `{"username":"budi","password":"rahasia123"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		User    struct {
			Username    string   `json:"username"`
			Role        string   `json:"role"`
			Permissions []string `json:"permissions"`
		} `json:"user"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.User.Role != "guest" || len(body.User.Permissions) != 2 {
		t.Fatalf("unexpected payload: %s", res.Body.String())
	}
	if strings.Contains(strings.ToLower(res.Body.String()), "password") {
		t.Fatalf("response must not carry password material: %s", res.Body.String())
	}
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	router := newAuthRouter(newStubRepo(activeUser(t, "budi", "rahasia123")), &stubResolver{})

	res := postJSON(t, router, "/login", `{"username":"budi","password":"salah12345"}`)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Username atau password tidak valid") {
		t.Fatalf("expected credential message, got: %s", res.Body.String())
	}
}

func TestLoginHandlerInactiveAccount(t *testing.T) {
	user := activeUser(t, "budi", "rahasia123")
	user.IsActive = false
	router := newAuthRouter(newStubRepo(user), &stubResolver{})

	res := postJSON(t, router, "/login", `{"username":"budi","password":"rahasia123"}`)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Akun Anda tidak aktif") {
		t.Fatalf("expected inactive message, got: %s", res.Body.String())
	}
}

func TestRegisterHandlerCreated(t *testing.T) {
	router := newAuthRouter(newStubRepo(), &stubResolver{})

	res := postJSON(t, router, "/register", `{"name":"Budi","email":"budi@test.local","username":"budi","password":"rahasia123"}`)
	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "Registrasi berhasil") {
		t.Fatalf("expected success message, got: %s", res.Body.String())
	}
}

func TestRegisterHandlerUsernameTaken(t *testing.T) {
	router := newAuthRouter(newStubRepo(activeUser(t, "budi", "rahasia123")), &stubResolver{})

	res := postJSON(t, router, "/register", `{"name":"Budi","email":"lain@test.local","username":"budi","password":"rahasia123"}`)
	if res.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Username sudah digunakan") {
		t.Fatalf("expected taken message, got: %s", res.Body.String())
	}
}

func TestRegisterHandlerShortPassword(t *testing.T) {
	router := newAuthRouter(newStubRepo(), &stubResolver{})

	res := postJSON(t, router, "/register", `{"name":"Budi","email":"budi@test.local","username":"budi","password":"pendek7"}`)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), shared.UserSafeMessage(shared.ErrInvalidInput)) {
		t.Fatalf("expected validation message, got: %s", res.Body.String())
	}
}
