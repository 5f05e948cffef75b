package auth

import (
	"log/slog"
	"time"
)

// User represents a user account as stored, including the password hash.
// The hash never leaves this package: callers receive an Identity instead.
type User struct {
	ID             string
	Name           string
	Email          string
	Username       string
	PasswordHash   string
	ProfilePicture string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identity is the public view of a user account.
type Identity struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	IsActive       bool   `json:"isActive"`
}

// Identity strips the password hash from a stored user.
func (u *User) Identity() Identity {
	return Identity{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		IsActive:       u.IsActive,
	}
}

// AuthenticatedUser is the composed login result: identity plus the resolved
// role and flattened permission set.
type AuthenticatedUser struct {
	Identity
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Credentials carries a login attempt. LogValue redacts the password so no
// log call site can leak it.
type Credentials struct {
	Username string
	Password string
}

var _ slog.LogValuer = Credentials{}

// LogValue implements slog.LogValuer.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", "[REDACTED]"),
	)
}
