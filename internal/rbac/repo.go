package rbac

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portalmitra/portalmitra/internal/shared"
)

// Repository defines persistence operations for permission resolution.
type Repository interface {
	FindUserState(ctx context.Context, userID string) (UserState, error)
	// ListAssignments returns the user's role assignments ordered by creation
	// time, earliest first.
	ListAssignments(ctx context.Context, userID string) ([]Assignment, error)
	GetRole(ctx context.Context, roleID string) (Role, error)
	// ListPermissionNames returns the permission names granted to any of the
	// given roles. Grants whose permission row is missing are skipped.
	ListPermissionNames(ctx context.Context, roleIDs []string) ([]string, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindUserState fetches the existence/active slice of a user record.
func (r *PGRepository) FindUserState(ctx context.Context, userID string) (UserState, error) {
	var state UserState
	err := r.pool.QueryRow(ctx, `SELECT id, is_active FROM users WHERE id = $1`, userID).
		Scan(&state.ID, &state.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserState{}, shared.ErrNotFound
		}
		return UserState{}, err
	}
	return state, nil
}

// ListAssignments returns role assignments for a user, earliest first.
func (r *PGRepository) ListAssignments(ctx context.Context, userID string) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, role_id, created_at FROM user_roles WHERE user_id = $1 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.RoleID, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetRole fetches a role by ID.
func (r *PGRepository) GetRole(ctx context.Context, roleID string) (Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, '') FROM roles WHERE id = $1`, roleID,
	).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, shared.ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// ListPermissionNames returns the distinct permission names granted to the
// given roles. The inner join drops grants with dangling permission refs.
func (r *PGRepository) ListPermissionNames(ctx context.Context, roleIDs []string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT p.name
		   FROM role_permissions rp
		   JOIN permissions p ON p.id = rp.permission_id
		  WHERE rp.role_id = ANY($1)`,
		roleIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

var _ Repository = (*PGRepository)(nil)
