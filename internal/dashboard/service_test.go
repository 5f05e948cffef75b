package dashboard_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalmitra/portalmitra/internal/dashboard"
	"github.com/portalmitra/portalmitra/internal/mitra"
	"github.com/portalmitra/portalmitra/internal/shared"
	"github.com/portalmitra/portalmitra/internal/surat"
	_ "github.com/portalmitra/portalmitra/testing"
)

type stubMitraStats struct {
	total    int64
	aktif    int64
	kategori []mitra.GroupCount
	calls    atomic.Int64
	err      error
}

func (s *stubMitraStats) CountAll(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	return s.total, s.err
}

func (s *stubMitraStats) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.aktif, s.err
}

func (s *stubMitraStats) CountByKategori(ctx context.Context) ([]mitra.GroupCount, error) {
	return s.kategori, s.err
}

type stubSuratStats struct {
	total    int64
	statuses []surat.GroupCount
	err      error
}

func (s *stubSuratStats) CountAll(ctx context.Context) (int64, error) {
	return s.total, s.err
}

func (s *stubSuratStats) CountByStatus(ctx context.Context) ([]surat.GroupCount, error) {
	return s.statuses, s.err
}

func newCachedService(t *testing.T, m *stubMitraStats, s *stubSuratStats) *dashboard.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := dashboard.NewCache(client, time.Minute)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return dashboard.NewService(m, s, cache, logger)
}

func TestStatistikAggregatesCounts(t *testing.T) {
	m := &stubMitraStats{
		total: 3,
		aktif: 2,
		kategori: []mitra.GroupCount{
			{Name: "pendidikan", Count: 2},
			{Name: "industri", Count: 1},
		},
	}
	s := &stubSuratStats{
		total: 2,
		statuses: []surat.GroupCount{
			{Name: "Menunggu", Count: 1},
			{Name: "Disetujui", Count: 1},
		},
	}
	svc := newCachedService(t, m, s)

	stats, err := svc.Statistik(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalMitra)
	assert.Equal(t, int64(2), stats.MitraAktif)
	assert.Equal(t, int64(2), stats.TotalSurat)

	require.Len(t, stats.KategoriMitra, 2)
	assert.Equal(t, "Pendidikan", stats.KategoriMitra[0].Name)
	assert.Equal(t, float64(67), stats.KategoriMitra[0].Percent)
	assert.Equal(t, float64(33), stats.KategoriMitra[1].Percent)

	require.Len(t, stats.StatusSurat, 2)
	assert.Equal(t, float64(50), stats.StatusSurat[0].Percent)
}

func TestStatistikServedFromCache(t *testing.T) {
	m := &stubMitraStats{total: 1, kategori: []mitra.GroupCount{{Name: "pendidikan", Count: 1}}}
	s := &stubSuratStats{}
	svc := newCachedService(t, m, s)

	_, err := svc.Statistik(context.Background())
	require.NoError(t, err)
	_, err = svc.Statistik(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), m.calls.Load(), "second read must hit the cache")
}

func TestStatistikBackendFailure(t *testing.T) {
	m := &stubMitraStats{err: errors.New("boom")}
	s := &stubSuratStats{}
	svc := newCachedService(t, m, s)

	_, err := svc.Statistik(context.Background())
	require.ErrorIs(t, err, shared.ErrLookup)
}

func TestStatistikWithoutRedis(t *testing.T) {
	m := &stubMitraStats{total: 5}
	s := &stubSuratStats{total: 1, statuses: []surat.GroupCount{{Name: "Menunggu", Count: 1}}}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := dashboard.NewService(m, s, dashboard.NewCache(nil, time.Minute), logger)

	stats, err := svc.Statistik(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalMitra)
	assert.Equal(t, float64(100), stats.StatusSurat[0].Percent)
}
