// Package models defines data structures for StockPulse
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Percent is a percentage value rendered with two decimals and a trailing "%".
type Percent float64

// String returns the percent formatted like "1.27%".
func (p Percent) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64) + "%"
}

// MarshalJSON renders the percent as a JSON string.
func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either "1.27%" or a bare number.
func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParsePercent(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Percent(f)
	return nil
}

// ParsePercent parses strings such as "1.27%", "-0.62 %" or "3".
func ParsePercent(s string) (Percent, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse percent %q: %w", s, err)
	}
	return Percent(f), nil
}

// TradingHours describes the US equity session relative to the quote time.
type TradingHours struct {
	IsOpen   bool   `json:"isOpen"`
	NextOpen string `json:"nextOpen"`
	Timezone string `json:"timezone"`
}

// Quote is a point-in-time price snapshot for a symbol, with derived
// bid/ask and estimated fundamentals.
type Quote struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Sector        string       `json:"sector"`
	Industry      string       `json:"industry"`
	Price         float64      `json:"price"`
	BidPrice      float64      `json:"bidPrice"`
	AskPrice      float64      `json:"askPrice"`
	Spread        float64      `json:"spread"`
	Change        float64      `json:"change"`
	ChangePercent Percent      `json:"changePercent"`
	Open          float64      `json:"open"`
	High          float64      `json:"high"`
	Low           float64      `json:"low"`
	Volume        int64        `json:"volume"`
	PreviousClose float64      `json:"previousClose"`
	MarketCap     int64        `json:"marketCap"`     // estimated
	PE            float64      `json:"pe"`            // estimated
	DividendYield float64      `json:"dividendYield"` // estimated, percent
	Week52High    float64      `json:"week52High"`
	Week52Low     float64      `json:"week52Low"`
	IsPositive    bool         `json:"isPositive"`
	LastUpdated   string       `json:"lastUpdated"`
	TradingHours  TradingHours `json:"tradingHours"`
	Source        string       `json:"source"` // "alphavantage" or "synthetic"
}

// HistoricalPoint is one OHLCV bar.
type HistoricalPoint struct {
	Date   string  `json:"date"` // RFC 3339, UTC
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// SeriesMeta summarises a historical series.
type SeriesMeta struct {
	FirstDate   string `json:"firstDate,omitempty"`
	LastDate    string `json:"lastDate,omitempty"`
	TotalPoints int    `json:"totalPoints"`
}

// HistoricalSeries is an ascending, date-unique sequence of bars for one
// symbol and period.
type HistoricalSeries struct {
	Symbol string            `json:"symbol"`
	Period Period            `json:"period"`
	Data   []HistoricalPoint `json:"data"`
	Meta   SeriesMeta        `json:"meta"`
	Source string            `json:"source"`
}

// NewHistoricalSeries builds a series and fills its meta block from data.
func NewHistoricalSeries(symbol string, period Period, source string, data []HistoricalPoint) HistoricalSeries {
	if data == nil {
		data = []HistoricalPoint{}
	}
	meta := SeriesMeta{TotalPoints: len(data)}
	if len(data) > 0 {
		meta.FirstDate = data[0].Date
		meta.LastDate = data[len(data)-1].Date
	}
	return HistoricalSeries{
		Symbol: symbol,
		Period: period,
		Data:   data,
		Meta:   meta,
		Source: source,
	}
}

// PerformanceMetrics are derived from a HistoricalSeries. All values are
// rounded to two decimals; percentages are expressed as percent, not fraction.
type PerformanceMetrics struct {
	TotalReturn float64 `json:"totalReturn"`
	Volatility  float64 `json:"volatility"`
	MaxPrice    float64 `json:"maxPrice"`
	MinPrice    float64 `json:"minPrice"`
	PriceRange  float64 `json:"priceRange"`
	SharpeRatio float64 `json:"sharpeRatio"`
}

// Source labels
const (
	SourceAlphaVantage = "alphavantage"
	SourceSynthetic    = "synthetic"
)
