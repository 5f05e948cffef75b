package surat

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/portalmitra/portalmitra/internal/shared"
)

// Notifier enqueues a notification for a submitted letter. Delivery is best
// effort and never blocks the submission.
type Notifier interface {
	EnqueueSuratSubmitted(ctx context.Context, suratID, judul, userID string) error
}

// SubmitInput carries a letter submission.
type SubmitInput struct {
	JenisSurat string `json:"jenisSurat" validate:"required"`
	Judul      string `json:"judul" validate:"required"`
	Tujuan     string `json:"tujuan" validate:"required"`
	Perihal    string `json:"perihal" validate:"required"`
	Isi        string `json:"isi" validate:"required"`
	Lampiran   string `json:"lampiran"`
}

// Service handles letter business logic.
type Service struct {
	repo     RepositoryPort
	logger   *slog.Logger
	validate *validator.Validate
	notifier Notifier
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger, notifier Notifier) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, validate: validator.New(), notifier: notifier}
}

// Submit validates and stores a new letter for the given user. New letters
// always start in StatusMenunggu.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (*Surat, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, shared.ErrInvalidInput
	}
	letter := &Surat{
		ID:         uuid.NewString(),
		JenisSurat: in.JenisSurat,
		Judul:      in.Judul,
		Tujuan:     in.Tujuan,
		Perihal:    in.Perihal,
		Isi:        in.Isi,
		Lampiran:   in.Lampiran,
		Status:     StatusMenunggu,
		UserID:     userID,
	}
	if err := s.repo.Create(ctx, letter); err != nil {
		s.logger.Error("submit surat", slog.Any("error", err))
		return nil, shared.ErrLookup
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueSuratSubmitted(ctx, letter.ID, letter.Judul, letter.UserID); err != nil {
			s.logger.Warn("enqueue surat notification", slog.Any("error", err))
		}
	}
	return letter, nil
}

// List returns all letters.
func (s *Service) List(ctx context.Context) ([]Surat, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list surat", slog.Any("error", err))
		return nil, shared.ErrLookup
	}
	return items, nil
}

// ListByUser returns the letters submitted by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Surat, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list surat by user", slog.Any("error", err))
		return nil, shared.ErrLookup
	}
	return items, nil
}
