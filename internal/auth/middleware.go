package auth

import (
	"log/slog"
	"net/http"

	"github.com/portalmitra/portalmitra/internal/platform/httpx"
	"github.com/portalmitra/portalmitra/internal/shared"
)

// Middleware authenticates resource requests. The portal keeps no sessions or
// tokens: every protected request carries HTTP Basic credentials, which are
// verified against the store and placed in the request context.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// RequireUser rejects requests without valid credentials.
func (m Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="portalmitra"`)
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(shared.ErrInvalidCredentials))
			return
		}
		user, err := m.Service.Authenticate(r.Context(), Credentials{Username: username, Password: password})
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		ctx := shared.ContextWithIdentity(r.Context(), shared.Identity{UserID: user.ID, Username: user.Username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
