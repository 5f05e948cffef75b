package mitra

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines data access methods for partners.
type RepositoryPort interface {
	List(ctx context.Context) ([]Mitra, error)
	Create(ctx context.Context, m *Mitra) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByKategori(ctx context.Context) ([]GroupCount, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const mitraColumns = `id, nama, kategori, tanggal_mulai, tanggal_akhir, status,
	COALESCE(alamat, ''), COALESCE(kontak, ''), COALESCE(email, ''),
	COALESCE(website, ''), COALESCE(deskripsi, ''), created_at, updated_at`

// List returns all partners ordered by name.
func (r *Repository) List(ctx context.Context) ([]Mitra, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+mitraColumns+` FROM mitras ORDER BY nama`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Mitra
	for rows.Next() {
		var m Mitra
		if err := rows.Scan(
			&m.ID, &m.Nama, &m.Kategori, &m.TanggalMulai, &m.TanggalAkhir, &m.Status,
			&m.Alamat, &m.Kontak, &m.Email, &m.Website, &m.Deskripsi,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new partner.
func (r *Repository) Create(ctx context.Context, m *Mitra) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO mitras (id, nama, kategori, tanggal_mulai, tanggal_akhir, status, alamat, kontak, email, website, deskripsi)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.Nama, m.Kategori, m.TanggalMulai, m.TanggalAkhir, m.Status,
		m.Alamat, m.Kontak, m.Email, m.Website, m.Deskripsi,
	)
	return err
}

// CountAll returns the number of partners.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mitras`).Scan(&count)
	return count, err
}

// CountByStatus returns the number of partners with the given status.
func (r *Repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mitras WHERE status = $1`, status).Scan(&count)
	return count, err
}

// CountByKategori groups partners by category.
func (r *Repository) CountByKategori(ctx context.Context) ([]GroupCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT kategori, COUNT(*) FROM mitras GROUP BY kategori ORDER BY kategori`)
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
