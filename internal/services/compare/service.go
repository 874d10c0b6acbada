// Package compare orchestrates multi-symbol comparisons over a period.
package compare

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/stockpulse/internal/cache"
	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
	"github.com/bobmcallan/stockpulse/internal/models"
	"github.com/bobmcallan/stockpulse/internal/services/analytics"
)

// MaxSymbols is the largest comparison accepted.
const MaxSymbols = 5

// Service implements ComparisonService on top of the quote and history services.
type Service struct {
	quotes  interfaces.QuoteService
	history interfaces.HistoryService
	synth   interfaces.SyntheticGenerator
	cache   interfaces.Cache
	logger  *common.Logger
	now     func() time.Time
}

// NewService creates a comparison service
func NewService(quotes interfaces.QuoteService, history interfaces.HistoryService, synth interfaces.SyntheticGenerator, c interfaces.Cache, logger *common.Logger) *Service {
	return &Service{
		quotes:  quotes,
		history: history,
		synth:   synth,
		cache:   c,
		logger:  logger,
		now:     time.Now,
	}
}

// CompareSymbols builds one record per unique symbol, concurrently, and
// summarises them. A symbol whose quote or history cannot be produced is
// replaced by a synthetic record; only invalid input or a cancelled
// context fail the whole comparison.
func (s *Service) CompareSymbols(ctx context.Context, symbols []string, period string) (models.Result[models.ComparisonResult], error) {
	syms, err := normalizeSymbols(symbols)
	if err != nil {
		return models.Result[models.ComparisonResult]{}, err
	}
	p, err := models.ParsePeriod(period)
	if err != nil {
		return models.Result[models.ComparisonResult]{}, err
	}

	key := cache.CompareKey(syms, p)
	if res, ok := cache.Load[models.ComparisonResult](ctx, s.cache, key); ok {
		return models.Result[models.ComparisonResult]{Data: res, Cached: true}, nil
	}

	records := make([]models.ComparisonRecord, len(syms))
	g := new(errgroup.Group)
	g.SetLimit(len(syms))
	for i, sym := range syms {
		g.Go(func() error {
			rec, err := s.compareOne(ctx, sym, p)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn().
					Err(err).
					Str("symbol", sym).
					Str("period", string(p)).
					Str("kind", common.ErrorKind(err)).
					Msg("Comparison leg failed, substituting synthetic record")
				rec = s.syntheticRecord(sym, p)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Result[models.ComparisonResult]{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Result[models.ComparisonResult]{}, err
	}

	result := models.ComparisonResult{
		Period:      p,
		Symbols:     syms,
		Stocks:      records,
		Summary:     s.summarise(records),
		LastUpdated: s.now().UTC().Format(time.RFC3339),
	}

	if err := cache.Store(ctx, s.cache, key, result, common.TTLCompare); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache comparison")
	}
	return models.Result[models.ComparisonResult]{Data: result}, nil
}

func (s *Service) compareOne(ctx context.Context, sym string, p models.Period) (models.ComparisonRecord, error) {
	q, err := s.quotes.GetQuote(ctx, sym)
	if err != nil {
		return models.ComparisonRecord{}, fmt.Errorf("quote: %w", err)
	}
	h, err := s.history.GetHistory(ctx, sym, string(p))
	if err != nil {
		return models.ComparisonRecord{}, fmt.Errorf("history: %w", err)
	}
	return newRecord(q.Data, h.Data.Data), nil
}

func (s *Service) syntheticRecord(sym string, p models.Period) models.ComparisonRecord {
	rec := newRecord(s.synth.GenerateQuote(sym), s.synth.GenerateHistory(sym, p).Data)
	rec.Synthetic = true
	return rec
}

func newRecord(q models.Quote, points []models.HistoricalPoint) models.ComparisonRecord {
	if points == nil {
		points = []models.HistoricalPoint{}
	}
	return models.ComparisonRecord{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Sector:        q.Sector,
		CurrentPrice:  q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		IsPositive:    q.IsPositive,
		MarketCap:     q.MarketCap,
		History:       points,
		Performance:   analytics.ComputeMetrics(points),
	}
}

// summarise picks best and worst by total return (first seen wins ties),
// averages the returns and fills the placeholder correlation matrix.
func (s *Service) summarise(records []models.ComparisonRecord) models.ComparisonSummary {
	var summary models.ComparisonSummary
	if len(records) == 0 {
		return summary
	}

	best, worst := records[0], records[0]
	var total float64
	for _, r := range records {
		total += r.Performance.TotalReturn
		if r.Performance.TotalReturn > best.Performance.TotalReturn {
			best = r
		}
		if r.Performance.TotalReturn < worst.Performance.TotalReturn {
			worst = r
		}
	}
	summary.BestPerformer = best.Symbol
	summary.WorstPerformer = worst.Symbol
	summary.AverageReturn = total / float64(len(records))

	matrix := make(map[string]map[string]float64, len(records))
	for _, a := range records {
		row := make(map[string]float64, len(records))
		for _, b := range records {
			if a.Symbol == b.Symbol {
				row[b.Symbol] = 1.0
				continue
			}
			row[b.Symbol] = s.synth.Correlation()
		}
		matrix[a.Symbol] = row
	}
	summary.CorrelationMatrix = matrix
	return summary
}

// normalizeSymbols upper-cases, validates and dedupes symbols keeping
// first-seen order.
func normalizeSymbols(symbols []string) ([]string, error) {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		sym, err := models.NormalizeSymbol(raw)
		if err != nil {
			return nil, err
		}
		if seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one symbol is required", common.ErrInvalidInput)
	}
	if len(out) > MaxSymbols {
		return nil, fmt.Errorf("%w: at most %d symbols can be compared, got %d", common.ErrInvalidInput, MaxSymbols, len(out))
	}
	return out, nil
}

// Ensure Service implements ComparisonService
var _ interfaces.ComparisonService = (*Service)(nil)
