package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. The same value covers an
	// unknown username and a wrong password so responses cannot be used to
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountInactive indicates a disabled account whose password was correct.
	ErrAccountInactive = errors.New("account inactive")
	// ErrNoRoleAssigned indicates a user without any role assignment.
	ErrNoRoleAssigned = errors.New("no role assigned")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username taken")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email taken")
	// ErrInvalidInput indicates request payload validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRoleProvisioning indicates required seed roles are missing.
	ErrRoleProvisioning = errors.New("role provisioning")
	// ErrLookup indicates a backing-store failure.
	ErrLookup = errors.New("lookup failure")
)

// UserSafeMessage maps a domain error to a message that can be shown to the
// end user. Infra errors collapse to a generic message; backend detail stays
// in the server logs.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Username atau password tidak valid"
	case errors.Is(err, ErrAccountInactive):
		return "Akun Anda tidak aktif, silakan hubungi administrator"
	case errors.Is(err, ErrNoRoleAssigned):
		return "Akun Anda belum memiliki peran, silakan hubungi administrator"
	case errors.Is(err, ErrUsernameTaken):
		return "Username sudah digunakan"
	case errors.Is(err, ErrEmailTaken):
		return "Email sudah digunakan"
	case errors.Is(err, ErrInvalidInput):
		return "Data yang dikirim tidak valid"
	case errors.Is(err, ErrNotFound):
		return "Data tidak ditemukan"
	default:
		return "Terjadi kesalahan, silakan coba lagi"
	}
}
