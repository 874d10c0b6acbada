// Package history serves period-bounded price series with cache-aside reads
// and synthetic fallback.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/bobmcallan/stockpulse/internal/cache"
	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
	"github.com/bobmcallan/stockpulse/internal/models"
)

// Service implements HistoryService
type Service struct {
	source    interfaces.MarketDataSource
	synth     interfaces.SyntheticGenerator
	cache     interfaces.Cache
	logger    *common.Logger
	now       func() time.Time
	fallbacks common.FallbackCounter
}

// NewService creates a history service. source may be nil for synthetic-only mode.
func NewService(source interfaces.MarketDataSource, synth interfaces.SyntheticGenerator, c interfaces.Cache, logger *common.Logger) *Service {
	return &Service{
		source: source,
		synth:  synth,
		cache:  c,
		logger: logger,
		now:    time.Now,
	}
}

// GetHistory returns the series for symbol over period (default 1M).
// Provider data is trimmed to the period window ending now; an empty
// result after trimming is valid.
func (s *Service) GetHistory(ctx context.Context, symbol, period string) (models.Result[models.HistoricalSeries], error) {
	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		return models.Result[models.HistoricalSeries]{}, err
	}
	p, err := models.ParsePeriod(period)
	if err != nil {
		return models.Result[models.HistoricalSeries]{}, err
	}

	key := cache.HistoryKey(sym, p)
	if series, ok := cache.Load[models.HistoricalSeries](ctx, s.cache, key); ok {
		return models.Result[models.HistoricalSeries]{Data: series, Cached: true}, nil
	}

	series, err := s.fetchHistory(ctx, sym, p)
	if err != nil {
		return models.Result[models.HistoricalSeries]{}, err
	}

	if err := cache.Store(ctx, s.cache, key, series, common.TTLHistory); err != nil {
		s.logger.Warn().Err(err).Str("symbol", sym).Str("period", string(p)).Msg("Failed to cache history")
	}
	return models.Result[models.HistoricalSeries]{Data: series}, nil
}

func (s *Service) fetchHistory(ctx context.Context, sym string, p models.Period) (models.HistoricalSeries, error) {
	if s.source == nil {
		return normalise(s.synth.GenerateHistory(sym, p)), nil
	}

	series, err := s.source.FetchHistory(ctx, sym, p)
	if err == nil && series != nil {
		points := FilterWindow(series.Data, s.now(), p.Window())
		return normalise(models.NewHistoricalSeries(sym, p, series.Source, points)), nil
	}
	if ctx.Err() != nil {
		return models.HistoricalSeries{}, ctx.Err()
	}

	s.fallbacks.Record(err)
	s.logger.Warn().
		Err(err).
		Str("symbol", sym).
		Str("period", string(p)).
		Str("kind", common.ErrorKind(err)).
		Msg("History source failed, using synthetic data")
	return normalise(s.synth.GenerateHistory(sym, p)), nil
}

// FilterWindow keeps points dated at or after now - window. Points with
// unparseable dates are dropped.
func FilterWindow(points []models.HistoricalPoint, now time.Time, window time.Duration) []models.HistoricalPoint {
	cutoff := now.Add(-window)
	out := make([]models.HistoricalPoint, 0, len(points))
	for _, p := range points {
		at, err := time.Parse(time.RFC3339, p.Date)
		if err != nil || at.Before(cutoff) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// normalise sorts points ascending, drops duplicate dates and rebuilds meta.
func normalise(series models.HistoricalSeries) models.HistoricalSeries {
	points := append([]models.HistoricalPoint(nil), series.Data...)
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	unique := make([]models.HistoricalPoint, 0, len(points))
	for _, p := range points {
		if n := len(unique); n > 0 && unique[n-1].Date == p.Date {
			continue
		}
		unique = append(unique, p)
	}
	return models.NewHistoricalSeries(series.Symbol, series.Period, series.Source, unique)
}

// Stats returns the number of absorbed source errors by kind.
func (s *Service) Stats() map[string]int64 {
	return s.fallbacks.Snapshot()
}

// Ensure Service implements HistoryService
var (
	_ interfaces.HistoryService = (*Service)(nil)
	_ interfaces.FallbackStats  = (*Service)(nil)
)
