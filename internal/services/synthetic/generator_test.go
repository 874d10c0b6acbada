package synthetic

import (
	"encoding/json"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/models"
)

var fixedNow = time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

func newTestGenerator(seed uint64) *Generator {
	return NewGenerator(WithSeed(seed), WithClock(func() time.Time { return fixedNow }))
}

func TestGenerator_SameSeedSameOutput(t *testing.T) {
	a := newTestGenerator(7)
	b := newTestGenerator(7)

	qa, qb := a.GenerateQuote("AAPL"), b.GenerateQuote("AAPL")
	assert.Equal(t, qa, qb)

	ha, hb := a.GenerateHistory("ZZZZ", models.Period3M), b.GenerateHistory("ZZZZ", models.Period3M)
	ja, _ := json.Marshal(ha)
	jb, _ := json.Marshal(hb)
	assert.Equal(t, string(ja), string(jb))

	assert.Equal(t, a.Correlation(), b.Correlation())
	assert.Equal(t, a.Analysis(qa), b.Analysis(qb))
}

func TestGenerator_DifferentSeedsDiverge(t *testing.T) {
	qa := newTestGenerator(1).GenerateQuote("ZZZZ")
	qb := newTestGenerator(2).GenerateQuote("ZZZZ")
	assert.NotEqual(t, qa.Price, qb.Price)
}

func TestGenerateQuote_KnownSymbol(t *testing.T) {
	g := newTestGenerator(42)
	q := g.GenerateQuote("aapl")

	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "Apple Inc.", q.Name)
	assert.Equal(t, "Technology", q.Sector)
	assert.Equal(t, "Consumer Electronics", q.Industry)
	assert.InDelta(t, 195.89, q.Price, 1.01)
	assert.Equal(t, 2.45, q.Change)
	assert.True(t, q.IsPositive)
	assert.Equal(t, models.SourceSynthetic, q.Source)
	assert.Equal(t, fixedNow.Format(time.RFC3339), q.LastUpdated)
	assert.Equal(t, int64(math.Floor(q.Price*1e9)), q.MarketCap)
	assertQuoteConsistent(t, q)
}

func TestGenerateQuote_UnknownSymbol(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		q := newTestGenerator(seed).GenerateQuote("ZZZZ")

		assert.Equal(t, "ZZZZ Stock", q.Name)
		assert.Equal(t, "Unknown", q.Sector)
		assert.GreaterOrEqual(t, q.Price, 100.0)
		assert.Less(t, q.Price, 300.0)
		assert.Equal(t, q.Change >= 0, q.IsPositive)
		assert.LessOrEqual(t, q.Low, q.High)
		assertQuoteConsistent(t, q)
	}
}

func assertQuoteConsistent(t *testing.T, q models.Quote) {
	t.Helper()
	assert.GreaterOrEqual(t, q.BidPrice, 0.0)
	assert.GreaterOrEqual(t, q.AskPrice, q.BidPrice)
	assert.InDelta(t, math.Max(0.01, q.Price*0.0002), q.Spread, 1e-12)
	assert.GreaterOrEqual(t, q.PE, 15.0)
	assert.Less(t, q.PE, 40.0)
	assert.GreaterOrEqual(t, q.DividendYield, 0.0)
	assert.Less(t, q.DividendYield, 4.0)
	assert.Greater(t, q.Week52High, q.High)
	assert.Less(t, q.Week52Low, q.Low)
	assert.Equal(t, "EST", q.TradingHours.Timezone)
	assert.NotEmpty(t, q.TradingHours.NextOpen)
}

func TestGenerateHistory_ShapeAndInvariants(t *testing.T) {
	g := newTestGenerator(99)

	tests := []struct {
		period   models.Period
		points   int
		interval time.Duration
	}{
		{models.Period1D, 25, time.Hour},
		{models.Period1W, 8, 24 * time.Hour},
		{models.Period1M, 31, 24 * time.Hour},
		{models.Period5Y, 1826, 24 * time.Hour},
	}

	for _, tt := range tests {
		s := g.GenerateHistory("MSFT", tt.period)

		require.Len(t, s.Data, tt.points, tt.period)
		assert.Equal(t, tt.points, s.Meta.TotalPoints)
		assert.Equal(t, "MSFT", s.Symbol)
		assert.Equal(t, tt.period, s.Period)
		assert.Equal(t, s.Data[0].Date, s.Meta.FirstDate)
		assert.Equal(t, fixedNow.Format(time.RFC3339), s.Meta.LastDate)

		first, err := time.Parse(time.RFC3339, s.Data[0].Date)
		require.NoError(t, err)
		assert.Equal(t, fixedNow.Add(-tt.period.Window()), first, "series starts exactly one window back")

		assert.True(t, sort.SliceIsSorted(s.Data, func(i, j int) bool { return s.Data[i].Date < s.Data[j].Date }))
		for i, p := range s.Data {
			if i > 0 {
				prev, _ := time.Parse(time.RFC3339, s.Data[i-1].Date)
				cur, _ := time.Parse(time.RFC3339, p.Date)
				assert.Equal(t, tt.interval, cur.Sub(prev))
			}
			assert.LessOrEqual(t, p.Low, math.Min(p.Open, p.Close), "point %d", i)
			assert.GreaterOrEqual(t, p.High, math.Max(p.Open, p.Close), "point %d", i)
			assert.GreaterOrEqual(t, p.Close, 1.0)
			assert.GreaterOrEqual(t, p.Volume, int64(1_000_000))
			assert.Less(t, p.Volume, int64(51_000_000))
		}
	}
}

func TestGenerateHistory_WalkIsContinuous(t *testing.T) {
	s := newTestGenerator(3).GenerateHistory("NVDA", models.Period1M)
	for i := 1; i < len(s.Data); i++ {
		assert.Equal(t, s.Data[i-1].Close, s.Data[i].Open, "open follows previous close at %d", i)
	}
}

func TestAnalysis(t *testing.T) {
	g := newTestGenerator(11)

	up := g.Analysis(models.Quote{Price: 100, Change: 0})
	assert.Equal(t, "BUY", up.Recommendation)
	assert.Equal(t, "MEDIUM", up.Confidence)
	assert.GreaterOrEqual(t, up.PriceTarget, 90.0)
	assert.LessOrEqual(t, up.PriceTarget, 110.0)
	assert.GreaterOrEqual(t, up.AnalystRating, 1)
	assert.LessOrEqual(t, up.AnalystRating, 5)

	down := g.Analysis(models.Quote{Price: 100, Change: -0.5})
	assert.Equal(t, "HOLD", down.Recommendation)
}

func TestCorrelation_Bounds(t *testing.T) {
	g := newTestGenerator(5)
	for i := 0; i < 500; i++ {
		c := g.Correlation()
		assert.GreaterOrEqual(t, c, 0.3)
		assert.Less(t, c, 0.7)
		assert.Equal(t, common.Truncate(c, 3), c)
	}
}

func TestEstimateFundamentals_SharesByPrice(t *testing.T) {
	g := newTestGenerator(8)

	cheap := models.Quote{Price: 50, High: 51, Low: 49}
	g.EstimateFundamentals(&cheap)
	assert.Equal(t, int64(100e9), cheap.MarketCap)

	dear := models.Quote{Price: 150, High: 151, Low: 149}
	g.EstimateFundamentals(&dear)
	assert.Equal(t, int64(150e9), dear.MarketCap)
}
