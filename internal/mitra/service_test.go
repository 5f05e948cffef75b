package mitra_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalmitra/portalmitra/internal/mitra"
	"github.com/portalmitra/portalmitra/internal/shared"
	_ "github.com/portalmitra/portalmitra/testing"
)

type stubRepo struct {
	items     []mitra.Mitra
	created   *mitra.Mitra
	listErr   error
	createErr error
}

func (r *stubRepo) List(ctx context.Context) ([]mitra.Mitra, error) {
	return r.items, r.listErr
}

func (r *stubRepo) Create(ctx context.Context, m *mitra.Mitra) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = m
	return nil
}

func (r *stubRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *stubRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return 0, nil
}

func (r *stubRepo) CountByKategori(ctx context.Context) ([]mitra.GroupCount, error) {
	return nil, nil
}

func newService(repo *stubRepo) *mitra.Service {
	return mitra.NewService(repo, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func validInput() mitra.CreateInput {
	now := time.Now()
	return mitra.CreateInput{
		Nama:         "Universitas Nusantara",
		Kategori:     "pendidikan",
		TanggalMulai: now,
		TanggalAkhir: now.AddDate(1, 0, 0),
		Status:       "Aktif",
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := &stubRepo{}
	svc := newService(repo)

	m, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Universitas Nusantara", repo.created.Nama)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := newService(&stubRepo{})

	in := validInput()
	in.Nama = ""
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCreateRejectsMalformedEmail(t *testing.T) {
	svc := newService(&stubRepo{})

	in := validInput()
	in.Email = "bukan-email"
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestListBackendFailure(t *testing.T) {
	svc := newService(&stubRepo{listErr: errors.New("boom")})

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, shared.ErrLookup)
}
