// Package quote provides a quote service with cache-aside reads and
// automatic synthetic fallback
package quote

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/stockpulse/internal/cache"
	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
	"github.com/bobmcallan/stockpulse/internal/models"
)

// TrendingSymbols is the fixed list served by GetTrending.
var TrendingSymbols = []string{"AAPL", "GOOGL", "MSFT", "TSLA", "AMZN"}

// Service implements QuoteService with a provider-primary, synthetic-fallback policy.
type Service struct {
	source    interfaces.MarketDataSource
	synth     interfaces.SyntheticGenerator
	cache     interfaces.Cache
	logger    *common.Logger
	now       func() time.Time // injectable clock for testing
	fallbacks common.FallbackCounter
}

// NewService creates a new quote service.
// source may be nil when no provider credential is configured; every quote
// is then synthetic.
func NewService(source interfaces.MarketDataSource, synth interfaces.SyntheticGenerator, c interfaces.Cache, logger *common.Logger) *Service {
	return &Service{
		source: source,
		synth:  synth,
		cache:  c,
		logger: logger,
		now:    time.Now,
	}
}

// GetQuote returns the quote for symbol from cache, the provider, or the
// synthetic generator, in that order. Only a malformed symbol or a
// cancelled context produce an error.
func (s *Service) GetQuote(ctx context.Context, symbol string) (models.Result[models.Quote], error) {
	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		return models.Result[models.Quote]{}, err
	}

	key := cache.QuoteKey(sym)
	if q, ok := cache.Load[models.Quote](ctx, s.cache, key); ok {
		return models.Result[models.Quote]{Data: q, Cached: true}, nil
	}

	q, err := s.fetchQuote(ctx, sym)
	if err != nil {
		return models.Result[models.Quote]{}, err
	}

	if err := cache.Store(ctx, s.cache, key, q, common.TTLQuote); err != nil {
		s.logger.Warn().Err(err).Str("symbol", sym).Msg("Failed to cache quote")
	}
	return models.Result[models.Quote]{Data: q}, nil
}

func (s *Service) fetchQuote(ctx context.Context, sym string) (models.Quote, error) {
	if s.source == nil {
		return s.synth.GenerateQuote(sym), nil
	}

	q, err := s.source.FetchQuote(ctx, sym)
	if err == nil && q != nil {
		s.derive(q)
		return *q, nil
	}
	if ctx.Err() != nil {
		return models.Quote{}, ctx.Err()
	}

	s.fallbacks.Record(err)
	s.logger.Warn().
		Err(err).
		Str("symbol", sym).
		Str("kind", common.ErrorKind(err)).
		Msg("Quote source failed, using synthetic data")
	return s.synth.GenerateQuote(sym), nil
}

// derive fills spread, estimates and session state on a provider quote.
func (s *Service) derive(q *models.Quote) {
	now := s.now()
	q.ApplySpread()
	s.synth.EstimateFundamentals(q)
	q.TradingHours = models.TradingHoursAt(now)
	if q.LastUpdated == "" {
		q.LastUpdated = now.UTC().Format(time.RFC3339)
	}
}

// GetCompany returns the quote enriched with a description and the
// heuristic analysis block.
func (s *Service) GetCompany(ctx context.Context, symbol string) (models.Result[models.CompanyProfile], error) {
	sym, err := models.NormalizeSymbol(symbol)
	if err != nil {
		return models.Result[models.CompanyProfile]{}, err
	}

	key := cache.CompanyKey(sym)
	if p, ok := cache.Load[models.CompanyProfile](ctx, s.cache, key); ok {
		return models.Result[models.CompanyProfile]{Data: p, Cached: true}, nil
	}

	res, err := s.GetQuote(ctx, sym)
	if err != nil {
		return models.Result[models.CompanyProfile]{}, err
	}

	q := res.Data
	profile := models.CompanyProfile{
		Quote:       q,
		Description: fmt.Sprintf("%s is a leading company in the %s sector.", q.Name, q.Sector),
		Analysis:    s.synth.Analysis(q),
	}

	if err := cache.Store(ctx, s.cache, key, profile, common.TTLCompany); err != nil {
		s.logger.Warn().Err(err).Str("symbol", sym).Msg("Failed to cache company profile")
	}
	return models.Result[models.CompanyProfile]{Data: profile}, nil
}

// GetTrending returns quotes for TrendingSymbols, fetched concurrently.
func (s *Service) GetTrending(ctx context.Context) (models.Result[[]models.Quote], error) {
	if quotes, ok := cache.Load[[]models.Quote](ctx, s.cache, cache.TrendingKey); ok {
		return models.Result[[]models.Quote]{Data: quotes, Cached: true}, nil
	}

	quotes := make([]models.Quote, len(TrendingSymbols))
	g, gctx := errgroup.WithContext(ctx)
	for i, sym := range TrendingSymbols {
		g.Go(func() error {
			res, err := s.GetQuote(gctx, sym)
			if err != nil {
				return err
			}
			quotes[i] = res.Data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Result[[]models.Quote]{}, err
	}

	if err := cache.Store(ctx, s.cache, cache.TrendingKey, quotes, common.TTLTrending); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache trending quotes")
	}
	return models.Result[[]models.Quote]{Data: quotes}, nil
}

// Stats returns the number of absorbed source errors by kind.
func (s *Service) Stats() map[string]int64 {
	return s.fallbacks.Snapshot()
}

// Ensure Service implements QuoteService
var (
	_ interfaces.QuoteService  = (*Service)(nil)
	_ interfaces.FallbackStats = (*Service)(nil)
)
