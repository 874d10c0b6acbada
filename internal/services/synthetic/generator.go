// Package synthetic generates plausible market data when the upstream
// provider is unavailable or not configured.
package synthetic

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
	"github.com/bobmcallan/stockpulse/internal/models"
)

// dailyVolatility is the random-walk step size as a fraction of price.
const dailyVolatility = 0.02

// Generator produces synthetic quotes and series from a seeded random
// source. It is safe for concurrent use; with a fixed seed and clock the
// sequence of outputs is reproducible.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithSeed makes the output sequence deterministic
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = newRand(seed)
	}
}

// WithClock injects the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a generator seeded randomly unless WithSeed is given.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng: newRand(rand.Uint64()),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateQuote produces a complete quote. Known symbols start from their
// reference session; anything else gets a price in [100, 300).
func (g *Generator) GenerateQuote(symbol string) models.Quote {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	var price, change, open, high, low float64
	var volume int64

	if base, ok := baseQuotes[symbol]; ok {
		price = common.Round2(base.Price + (g.rng.Float64()-0.5)*2)
		change = base.Change
		open = base.Open
		high = math.Max(base.High, price)
		low = math.Min(base.Low, price)
		volume = base.Volume
	} else {
		price = common.Truncate(100+g.rng.Float64()*200, 2)
		change = common.Round2(price * (g.rng.Float64()*0.06 - 0.03))
		prev := price - change
		open = common.Round2(prev * (1 + (g.rng.Float64()-0.5)*0.01))
		high = common.Round2(math.Max(open, price) * (1 + g.rng.Float64()*0.01))
		low = common.Round2(math.Min(open, price) * (1 - g.rng.Float64()*0.01))
		volume = 1_000_000 + int64(g.rng.Float64()*50_000_000)
	}

	prevClose := common.Round2(price - change)
	info, _ := models.LookupCompany(symbol)

	q := models.Quote{
		Symbol:        symbol,
		Name:          info.Name,
		Sector:        info.Sector,
		Industry:      info.Industry,
		Price:         price,
		Change:        change,
		Open:          open,
		High:          high,
		Low:           low,
		Volume:        volume,
		PreviousClose: prevClose,
		LastUpdated:   now.UTC().Format(time.RFC3339),
		TradingHours:  models.TradingHoursAt(now),
		Source:        models.SourceSynthetic,
	}
	if prevClose > 0 {
		q.ChangePercent = models.Percent(common.Round2(change / prevClose * 100))
	}
	q.ApplySpread()
	g.estimateLocked(&q)
	return q
}

// GenerateHistory random-walks from the symbol's base price with 2% step
// volatility. It yields steps+1 points ending at now: hourly for 1D, daily
// otherwise. Each point satisfies low <= open,close <= high.
func (g *Generator) GenerateHistory(symbol string, period models.Period) models.HistoricalSeries {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	steps, interval := period.Steps()

	g.mu.Lock()
	defer g.mu.Unlock()

	price, ok := BasePrice(symbol)
	if !ok {
		price = 100 + g.rng.Float64()*200
	}

	anchor := g.now().UTC().Truncate(time.Second)
	points := make([]models.HistoricalPoint, 0, steps+1)
	for i := steps; i >= 0; i-- {
		ts := anchor.Add(-time.Duration(i) * interval)

		move := (g.rng.Float64() - 0.5) * 2 * dailyVolatility * price
		open := price
		price = math.Max(1, price+move)
		high := math.Max(open, price) * (1 + g.rng.Float64()*0.02)
		low := math.Min(open, price) * (1 - g.rng.Float64()*0.02)
		volume := 1_000_000 + int64(g.rng.Float64()*50_000_000)

		points = append(points, models.HistoricalPoint{
			Date:   ts.Format(time.RFC3339),
			Open:   common.Round2(open),
			High:   common.Round2(high),
			Low:    common.Round2(low),
			Close:  common.Round2(price),
			Volume: volume,
		})
	}

	return models.NewHistoricalSeries(symbol, period, models.SourceSynthetic, points)
}

// EstimateFundamentals fills the heuristic fields of q from its price band.
func (g *Generator) EstimateFundamentals(q *models.Quote) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.estimateLocked(q)
}

func (g *Generator) estimateLocked(q *models.Quote) {
	shares := 2e9
	if q.Price > 100 {
		shares = 1e9
	}
	q.MarketCap = int64(math.Floor(q.Price * shares))
	q.PE = common.Truncate(15+g.rng.Float64()*25, 2)
	q.DividendYield = common.Truncate(g.rng.Float64()*4, 2)
	q.Week52High = common.Round2(q.High * (1.1 + g.rng.Float64()*0.3))
	q.Week52Low = common.Round2(q.Low * (0.7 + g.rng.Float64()*0.2))
}

// Analysis derives the heuristic recommendation block for q.
func (g *Generator) Analysis(q models.Quote) models.Analysis {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec := "HOLD"
	if q.Change >= 0 {
		rec = "BUY"
	}
	return models.Analysis{
		Recommendation: rec,
		Confidence:     "MEDIUM",
		PriceTarget:    common.Round2(q.Price * (1 + g.rng.Float64()*0.2 - 0.1)),
		AnalystRating:  1 + g.rng.IntN(5),
	}
}

// Correlation returns a placeholder correlation in [0.3, 0.7), truncated to
// three decimals. It is not derived from any price data.
func (g *Generator) Correlation() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.Truncate(0.3+g.rng.Float64()*0.4, 3)
}

// Ensure Generator implements SyntheticGenerator
var _ interfaces.SyntheticGenerator = (*Generator)(nil)
