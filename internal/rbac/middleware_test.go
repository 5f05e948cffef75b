package rbac_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portalmitra/portalmitra/internal/rbac"
	"github.com/portalmitra/portalmitra/internal/shared"
)

var errTest = errors.New("boom")

func newMiddleware(repo *stubRepo) rbac.Middleware {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return rbac.Middleware{Service: rbac.NewService(repo, logger, 0), Logger: logger}
}

func doRequest(mw func(http.Handler) http.Handler, withIdentity bool) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if withIdentity {
		ctx := shared.ContextWithIdentity(req.Context(), shared.Identity{UserID: "u1", Username: "budi"})
		req = req.WithContext(ctx)
	}
	res := httptest.NewRecorder()
	mw(next).ServeHTTP(res, req)
	return res
}

func TestRequireAnyAllowsGrantedPermission(t *testing.T) {
	repo := newStubRepo()
	seedGuest(repo, "u1")
	mw := newMiddleware(repo)

	res := doRequest(mw.RequireAny("lihat_data_kerjasama", "kelola_mitra"), true)
	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", res.Code, res.Body.String())
	}
}

func TestRequireAnyDeniesMissingPermission(t *testing.T) {
	repo := newStubRepo()
	seedGuest(repo, "u1")
	mw := newMiddleware(repo)

	res := doRequest(mw.RequireAny("kelola_hak_akses"), true)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestRequireAnyDeniesWithoutIdentity(t *testing.T) {
	repo := newStubRepo()
	seedGuest(repo, "u1")
	mw := newMiddleware(repo)

	res := doRequest(mw.RequireAny("lihat_data_kerjasama"), false)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestRequireAllNeedsEveryPermission(t *testing.T) {
	repo := newStubRepo()
	seedGuest(repo, "u1")
	mw := newMiddleware(repo)

	res := doRequest(mw.RequireAll("lihat_data_kerjasama", "lihat_dashboard_statistik"), true)
	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}

	res = doRequest(mw.RequireAll("lihat_data_kerjasama", "kelola_mitra"), true)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestRequireAnyFailsClosedOnBackendError(t *testing.T) {
	repo := newStubRepo()
	seedGuest(repo, "u1")
	repo.grantsErr = errTest
	mw := newMiddleware(repo)

	res := doRequest(mw.RequireAny("lihat_data_kerjasama"), true)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}
