package httpx

import (
	"errors"
	"net/http"

	"github.com/portalmitra/portalmitra/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807. Infra
// errors never carry backend detail into the response body.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrUsernameTaken), errors.Is(err, shared.ErrEmailTaken):
		Problem(w, http.StatusConflict, "Conflict", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrInvalidInput):
		Problem(w, http.StatusBadRequest, "Validation Failed", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrAccountInactive), errors.Is(err, shared.ErrNoRoleAssigned):
		Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(err))
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", shared.UserSafeMessage(err))
	}
}
