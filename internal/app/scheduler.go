package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/bobmcallan/stockpulse/internal/common"
)

// cronLogger adapts common.Logger to cron.Logger.
type cronLogger struct {
	logger *common.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg("Scheduler: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Err(err).Fields(keysAndValues).Msg("Scheduler: " + msg)
}

// StartScheduler registers the periodic warm-cache job on the configured
// cron schedule. Overlapping runs are skipped.
func (a *App) StartScheduler() error {
	if !a.Config.Warm.Enabled || a.Config.Warm.Schedule == "" {
		return nil
	}

	logger := cronLogger{logger: a.Logger}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(a.Config.Warm.Schedule, a.refreshCache); err != nil {
		return fmt.Errorf("register warm cache job %q: %w", a.Config.Warm.Schedule, err)
	}

	c.Start()
	a.scheduler = c
	a.Logger.Info().Str("schedule", a.Config.Warm.Schedule).Msg("Scheduler: started")
	return nil
}

func (a *App) refreshCache() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()
	warmCache(ctx, a.QuoteService, a.Config.Warm.Symbols, a.Logger)
}
