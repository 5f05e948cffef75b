package mitra

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/portalmitra/portalmitra/internal/shared"
)

// CreateInput carries a new-partner request.
type CreateInput struct {
	Nama         string    `json:"nama" validate:"required"`
	Kategori     string    `json:"kategori" validate:"required"`
	TanggalMulai time.Time `json:"tanggalMulai" validate:"required"`
	TanggalAkhir time.Time `json:"tanggalAkhir" validate:"required"`
	Status       string    `json:"status" validate:"required"`
	Alamat       string    `json:"alamat"`
	Kontak       string    `json:"kontak"`
	Email        string    `json:"email" validate:"omitempty,email"`
	Website      string    `json:"website"`
	Deskripsi    string    `json:"deskripsi"`
}

// Service handles partner business logic.
type Service struct {
	repo     RepositoryPort
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, validate: validator.New()}
}

// List returns all partners.
func (s *Service) List(ctx context.Context) ([]Mitra, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list mitra", slog.Any("error", err))
		return nil, shared.ErrLookup
	}
	return items, nil
}

// Create validates and inserts a new partner.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Mitra, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, shared.ErrInvalidInput
	}
	m := &Mitra{
		ID:           uuid.NewString(),
		Nama:         in.Nama,
		Kategori:     in.Kategori,
		TanggalMulai: in.TanggalMulai,
		TanggalAkhir: in.TanggalAkhir,
		Status:       in.Status,
		Alamat:       in.Alamat,
		Kontak:       in.Kontak,
		Email:        in.Email,
		Website:      in.Website,
		Deskripsi:    in.Deskripsi,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("create mitra", slog.Any("error", err))
		return nil, shared.ErrLookup
	}
	return m, nil
}
