package surat

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines data access methods for letters.
type RepositoryPort interface {
	Create(ctx context.Context, s *Surat) error
	List(ctx context.Context) ([]Surat, error)
	ListByUser(ctx context.Context, userID string) ([]Surat, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]GroupCount, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const suratColumns = `id, jenis_surat, judul, tujuan, perihal, isi,
	COALESCE(lampiran, ''), status, user_id, created_at, updated_at`

// Create inserts a new letter.
func (r *Repository) Create(ctx context.Context, s *Surat) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO surats (id, jenis_surat, judul, tujuan, perihal, isi, lampiran, status, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.JenisSurat, s.Judul, s.Tujuan, s.Perihal, s.Isi, s.Lampiran, s.Status, s.UserID,
	)
	return err
}

// List returns all letters, newest first.
func (r *Repository) List(ctx context.Context) ([]Surat, error) {
	return r.query(ctx, `SELECT `+suratColumns+` FROM surats ORDER BY created_at DESC`)
}

// ListByUser returns the letters submitted by a user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Surat, error) {
	return r.query(ctx, `SELECT `+suratColumns+` FROM surats WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *Repository) query(ctx context.Context, sql string, args ...any) ([]Surat, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Surat
	for rows.Next() {
		var s Surat
		if err := rows.Scan(
			&s.ID, &s.JenisSurat, &s.Judul, &s.Tujuan, &s.Perihal, &s.Isi,
			&s.Lampiran, &s.Status, &s.UserID, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountAll returns the number of letters.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM surats`).Scan(&count)
	return count, err
}

// CountByStatus groups letters by status.
func (r *Repository) CountByStatus(ctx context.Context) ([]GroupCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM surats GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []GroupCount
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.Name, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

var _ RepositoryPort = (*Repository)(nil)
