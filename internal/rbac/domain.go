package rbac

import "time"

// Role represents a named bundle of permissions.
type Role struct {
	ID          string
	Name        string
	Description string
}

// Permission represents an atomic capability gating an action.
type Permission struct {
	ID          string
	Name        string
	Description string
}

// Assignment links a user to a role. The pair is unique per user.
type Assignment struct {
	ID        string
	UserID    string
	RoleID    string
	CreatedAt time.Time
}

// Grant links a role to a permission.
type Grant struct {
	ID           string
	RoleID       string
	PermissionID string
}

// Resolution is the outcome of resolving a user's access: the role shown to
// single-role callers plus the permission union across all assignments.
type Resolution struct {
	Role        Role
	Permissions []string
}

// UserState is the slice of the user record the resolver needs.
type UserState struct {
	ID       string
	IsActive bool
}
