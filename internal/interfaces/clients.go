// Package interfaces defines service contracts for StockPulse
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/stockpulse/internal/models"
)

// MarketDataSource fetches quotes and history from an upstream provider.
// Implementations perform no caching and no fallback.
type MarketDataSource interface {
	// FetchQuote retrieves the latest quote for symbol
	FetchQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// FetchHistory retrieves bars at the granularity suited to period,
	// sorted ascending and not yet filtered to the period window
	FetchHistory(ctx context.Context, symbol string, period models.Period) (*models.HistoricalSeries, error)
}

// SyntheticGenerator produces fallback data and heuristic estimates. It never fails.
type SyntheticGenerator interface {
	// GenerateQuote produces a complete, self-consistent quote
	GenerateQuote(symbol string) models.Quote

	// GenerateHistory produces a random-walk series bounded to period
	GenerateHistory(symbol string, period models.Period) models.HistoricalSeries

	// EstimateFundamentals fills market cap, P/E, dividend yield and the 52-week band
	EstimateFundamentals(q *models.Quote)

	// Analysis produces the heuristic recommendation block for a quote
	Analysis(q models.Quote) models.Analysis

	// Correlation returns a placeholder correlation in [0.3, 0.7)
	Correlation() float64
}

// Cache is a TTL key/value store. Values are opaque encoded payloads.
type Cache interface {
	// Get returns the value for key if present and not expired
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
