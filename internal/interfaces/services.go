// Package interfaces defines service contracts for StockPulse
package interfaces

import (
	"context"

	"github.com/bobmcallan/stockpulse/internal/models"
)

// QuoteService serves single-symbol quotes with cache-aside and synthetic fallback
type QuoteService interface {
	// GetQuote returns the quote for symbol; blank symbols are ErrInvalidInput
	GetQuote(ctx context.Context, symbol string) (models.Result[models.Quote], error)

	// GetCompany returns the quote enriched with description and analysis
	GetCompany(ctx context.Context, symbol string) (models.Result[models.CompanyProfile], error)

	// GetTrending returns quotes for the trending symbol list
	GetTrending(ctx context.Context) (models.Result[[]models.Quote], error)
}

// HistoryService serves period-bounded historical series
type HistoryService interface {
	// GetHistory returns the series for symbol; blank period means 1M
	GetHistory(ctx context.Context, symbol, period string) (models.Result[models.HistoricalSeries], error)
}

// ComparisonService compares up to five symbols over a period
type ComparisonService interface {
	CompareSymbols(ctx context.Context, symbols []string, period string) (models.Result[models.ComparisonResult], error)
}

// SearchService matches queries against the company directory
type SearchService interface {
	SearchSymbols(ctx context.Context, query string) (models.Result[[]models.SymbolInfo], error)
}

// FallbackStats reports absorbed source errors by kind.
type FallbackStats interface {
	Stats() map[string]int64
}
