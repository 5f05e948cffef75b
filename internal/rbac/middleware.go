package rbac

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/portalmitra/portalmitra/internal/platform/httpx"
	"github.com/portalmitra/portalmitra/internal/shared"
)

// Middleware wires permission checks for HTTP handlers. It expects the
// authenticated identity in the request context.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// RequireAny ensures the current user holds at least one of the permissions.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	required := normalizePermissions(perms)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			granted, ok := m.grantedPermissions(w, r)
			if !ok {
				return
			}
			if hasAnyPermission(granted, required) {
				next.ServeHTTP(w, r)
				return
			}
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "Anda tidak memiliki hak akses")
		})
	}
}

// RequireAll ensures the current user holds all of the permissions.
func (m Middleware) RequireAll(perms ...string) func(http.Handler) http.Handler {
	required := normalizePermissions(perms)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			granted, ok := m.grantedPermissions(w, r)
			if !ok {
				return
			}
			if hasAllPermissions(granted, required) {
				next.ServeHTTP(w, r)
				return
			}
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "Anda tidak memiliki hak akses")
		})
	}
}

// grantedPermissions resolves the caller's permission set, writing the error
// response itself when the request cannot proceed.
func (m Middleware) grantedPermissions(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok || identity.UserID == "" {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "Anda tidak memiliki hak akses")
		return nil, false
	}
	granted, err := m.Service.ResolvePermissions(r.Context(), identity.UserID)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("rbac middleware", slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", shared.UserSafeMessage(err))
		return nil, false
	}
	return granted, true
}

// normalizePermissions trims and deduplicates the required set. Permission
// names are matched case-sensitively.
func normalizePermissions(perms []string) []string {
	unique := make(map[string]struct{}, len(perms))
	normalized := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := unique[p]; ok {
			continue
		}
		unique[p] = struct{}{}
		normalized = append(normalized, p)
	}
	return normalized
}

func hasAnyPermission(granted, required []string) bool {
	set := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		set[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

func hasAllPermissions(granted, required []string) bool {
	set := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		set[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}
