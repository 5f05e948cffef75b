package dashboard

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/portalmitra/portalmitra/internal/mitra"
	"github.com/portalmitra/portalmitra/internal/shared"
	"github.com/portalmitra/portalmitra/internal/surat"
)

// MitraStats is the partner-side data the dashboard aggregates.
type MitraStats interface {
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByKategori(ctx context.Context) ([]mitra.GroupCount, error)
}

// SuratStats is the letter-side data the dashboard aggregates.
type SuratStats interface {
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]surat.GroupCount, error)
}

// Service computes dashboard statistics. Results are cached; concurrent
// rebuilds of a cold cache collapse into a single pass.
type Service struct {
	mitra  MitraStats
	surat  SuratStats
	cache  *Cache
	logger *slog.Logger
	group  singleflight.Group
	titled cases.Caser
}

// NewService builds Service instance.
func NewService(mitraStats MitraStats, suratStats SuratStats, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		mitra:  mitraStats,
		surat:  suratStats,
		cache:  cache,
		logger: logger,
		titled: cases.Title(language.Indonesian),
	}
}

// Statistik returns the dashboard aggregate, from cache when fresh.
func (s *Service) Statistik(ctx context.Context) (*Stats, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("dashboard cache read", slog.Any("error", err))
	}
	if cached != nil {
		return cached, nil
	}

	result := s.group.DoChan(statsCacheKey, func() (any, error) {
		return s.build(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Stats), nil
	}
}

func (s *Service) build(ctx context.Context) (*Stats, error) {
	var (
		stats         Stats
		kategoriRaw   []mitra.GroupCount
		suratStatuses []surat.GroupCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.mitra.CountAll(gctx)
		stats.TotalMitra = n
		return err
	})
	g.Go(func() error {
		n, err := s.mitra.CountByStatus(gctx, "Aktif")
		stats.MitraAktif = n
		return err
	})
	g.Go(func() error {
		n, err := s.surat.CountAll(gctx)
		stats.TotalSurat = n
		return err
	})
	g.Go(func() error {
		groups, err := s.mitra.CountByKategori(gctx)
		kategoriRaw = groups
		return err
	})
	g.Go(func() error {
		groups, err := s.surat.CountByStatus(gctx)
		suratStatuses = groups
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("build dashboard stats", slog.Any("error", err))
		return nil, shared.ErrLookup
	}

	stats.KategoriMitra = s.slices(kategoriRaw)
	suratGroups := make([]mitra.GroupCount, len(suratStatuses))
	for i, g := range suratStatuses {
		suratGroups[i] = mitra.GroupCount{Name: g.Name, Count: g.Count}
	}
	stats.StatusSurat = s.slices(suratGroups)

	if err := s.cache.Set(ctx, &stats); err != nil {
		s.logger.Warn("dashboard cache write", slog.Any("error", err))
	}
	return &stats, nil
}

// slices converts grouped counts into chart slices with whole-number
// percentages of the group total.
func (s *Service) slices(groups []mitra.GroupCount) []Slice {
	var total int64
	for _, g := range groups {
		total += g.Count
	}
	out := make([]Slice, 0, len(groups))
	for _, g := range groups {
		slice := Slice{Name: s.titled.String(g.Name), Value: g.Count}
		if total > 0 {
			slice.Percent = math.Round(float64(g.Count) / float64(total) * 100)
		}
		out = append(out, slice)
	}
	return out
}
