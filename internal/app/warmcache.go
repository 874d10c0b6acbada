package app

import (
	"context"
	"time"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
)

// warmTimeout bounds a single warm-up pass.
const warmTimeout = time.Minute

// warmCache pre-fetches the trending list and the configured symbols so the
// first user query is served from cache. Failures are logged and skipped.
func warmCache(ctx context.Context, quotes interfaces.QuoteService, symbols []string, logger *common.Logger) {
	start := time.Now()

	if _, err := quotes.GetTrending(ctx); err != nil {
		logger.Warn().Err(err).Msg("Warm cache: trending failed")
	}

	warmed := 0
	for _, sym := range symbols {
		if ctx.Err() != nil {
			logger.Info().Int("warmed", warmed).Msg("Warm cache: cancelled")
			return
		}
		if _, err := quotes.GetQuote(ctx, sym); err != nil {
			logger.Warn().Err(err).Str("symbol", sym).Msg("Warm cache: quote failed")
			continue
		}
		warmed++
	}

	logger.Info().
		Int("symbols", warmed).
		Dur("elapsed", time.Since(start)).
		Msg("Warm cache: complete")
}
