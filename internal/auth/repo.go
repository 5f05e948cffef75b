package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portalmitra/portalmitra/internal/platform/db"
	"github.com/portalmitra/portalmitra/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	// CreateUserWithRole inserts the user and its role assignment in one
	// transaction. The unique indexes on username and email are authoritative:
	// a violation surfaces as ErrUsernameTaken or ErrEmailTaken. A missing
	// role name surfaces as ErrRoleProvisioning.
	CreateUserWithRole(ctx context.Context, user *User, roleName string, assignmentID string) error
}

const userColumns = `id, name, email, username, password_hash, COALESCE(profile_picture, ''), is_active, created_at, updated_at`

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByUsername fetches a user by exact username.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByEmail fetches a user by exact email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByID fetches a user by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PGRepository) findOne(ctx context.Context, query, arg string) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.ProfilePicture,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUserWithRole inserts the user row and binds it to the named role.
func (r *PGRepository) CreateUserWithRole(ctx context.Context, user *User, roleName string, assignmentID string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, name, email, username, password_hash, is_active) VALUES ($1, $2, $3, $4, $5, $6)`,
			user.ID, user.Name, user.Email, user.Username, user.PasswordHash, user.IsActive,
		)
		if err != nil {
			return mapUniqueViolation(err)
		}

		var roleID string
		err = tx.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, roleName).Scan(&roleID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrRoleProvisioning
			}
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO user_roles (id, user_id, role_id) VALUES ($1, $2, $3)`,
			assignmentID, user.ID, roleID,
		)
		return err
	})
}

// mapUniqueViolation interprets a unique-index violation as the corresponding
// domain error. Concurrent registrations both pass the pre-checks; the losing
// insert lands here.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return shared.ErrUsernameTaken
		case "users_email_key":
			return shared.ErrEmailTaken
		}
	}
	return err
}

var _ Repository = (*PGRepository)(nil)
