package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/robfig/cron/v3"

	"github.com/bobmcallan/stockpulse/internal/cache"
	"github.com/bobmcallan/stockpulse/internal/clients/alphavantage"
	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
	"github.com/bobmcallan/stockpulse/internal/services/compare"
	"github.com/bobmcallan/stockpulse/internal/services/history"
	"github.com/bobmcallan/stockpulse/internal/services/quote"
	"github.com/bobmcallan/stockpulse/internal/services/search"
	"github.com/bobmcallan/stockpulse/internal/services/synthetic"
)

// App holds the cache, source, services and MCP server. Every component is
// built once here and handed to its consumers.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Cache          interfaces.Cache
	CacheBackend   string
	Source         interfaces.MarketDataSource // nil in synthetic-only mode
	Generator      interfaces.SyntheticGenerator
	QuoteService   interfaces.QuoteService
	HistoryService interfaces.HistoryService
	CompareService interfaces.ComparisonService
	SearchService  interfaces.SearchService
	MCPServer      *server.MCPServer
	StartupTime    time.Time

	fallbacks       map[string]interfaces.FallbackStats
	redis           *cache.RedisCache
	scheduler       *cron.Cron
	warmCacheCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes the App.
// configPath may be empty, in which case STOCKPULSE_CONFIG, the binary
// directory and config/ are tried in that order.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	if configPath == "" {
		configPath = os.Getenv("STOCKPULSE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "stockpulse.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stockpulse.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewAppWithConfig(config, common.NewLoggerFromConfig(config.Logging))
}

// NewAppWithConfig wires every component from an already loaded config.
func NewAppWithConfig(config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	a := &App{
		Config:      config,
		Logger:      logger,
		StartupTime: startupStart,
	}

	a.initCache()

	if config.Clients.AlphaVantage.HasCredential() {
		av := config.Clients.AlphaVantage
		a.Source = alphavantage.NewClient(av.APIKey,
			alphavantage.WithBaseURL(av.BaseURL),
			alphavantage.WithLogger(logger),
			alphavantage.WithRateLimit(av.RateLimit),
			alphavantage.WithTimeout(av.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("Alpha Vantage API key not configured - serving synthetic data only")
	}

	var genOpts []synthetic.Option
	if config.Synthetic.Seed != 0 {
		genOpts = append(genOpts, synthetic.WithSeed(config.Synthetic.Seed))
	}
	gen := synthetic.NewGenerator(genOpts...)
	a.Generator = gen

	quoteService := quote.NewService(a.Source, gen, a.Cache, logger)
	historyService := history.NewService(a.Source, gen, a.Cache, logger)
	a.QuoteService = quoteService
	a.HistoryService = historyService
	a.CompareService = compare.NewService(quoteService, historyService, gen, a.Cache, logger)
	a.SearchService = search.NewService(a.Cache, logger)
	a.fallbacks = map[string]interfaces.FallbackStats{
		"quote":   quoteService,
		"history": historyService,
	}

	a.MCPServer = server.NewMCPServer(
		"stockpulse",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)
	a.registerTools()

	logger.Info().
		Str("cache_backend", a.CacheBackend).
		Bool("provider", a.Source != nil).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// initCache selects the configured backend. An unreachable Redis degrades
// to the in-memory cache rather than failing startup.
func (a *App) initCache() {
	cfg := a.Config.Cache
	mem := cache.NewMemoryCache(cache.WithShards(cfg.Shards))
	a.Cache = mem
	a.CacheBackend = "memory"

	if cfg.Backend != "redis" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rc, err := cache.NewRedisCache(ctx, cfg.Redis, mem, a.Logger)
	if err != nil {
		a.Logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("Redis unavailable - using in-memory cache")
		return
	}
	a.redis = rc
	a.Cache = rc
	a.CacheBackend = "redis"
}

// FallbackStats returns absorbed source errors by service and kind.
func (a *App) FallbackStats() map[string]map[string]int64 {
	out := make(map[string]map[string]int64, len(a.fallbacks))
	for name, f := range a.fallbacks {
		out[name] = f.Stats()
	}
	return out
}

// Close releases all resources held by the App.
// Shutdown order: stop scheduler, cancel warm cache, close redis.
func (a *App) Close() {
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
		a.scheduler = nil
	}
	if a.warmCacheCancel != nil {
		a.warmCacheCancel()
		a.warmCacheCancel = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
		a.redis = nil
	}
}

// StartWarmCache launches a one-off background warm-up of the configured symbols.
func (a *App) StartWarmCache() {
	if !a.Config.Warm.Enabled {
		a.Logger.Info().Msg("Warm cache: disabled")
		return
	}
	warmCtx, warmCancel := context.WithTimeout(context.Background(), warmTimeout)
	a.warmCacheCancel = warmCancel
	go func() {
		defer warmCancel()
		warmCache(warmCtx, a.QuoteService, a.Config.Warm.Symbols, a.Logger)
	}()
}
