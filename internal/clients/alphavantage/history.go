package alphavantage

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/models"
)

const (
	dailyKey    = "Time Series (Daily)"
	intradayKey = "Time Series (15min)"

	dailyLayout    = "2006-01-02"
	intradayLayout = "2006-01-02 15:04:05"
)

type timeSeriesResponse struct {
	Daily    map[string]map[string]string `json:"Time Series (Daily)"`
	Intraday map[string]map[string]string `json:"Time Series (15min)"`
}

type bar struct {
	at    time.Time
	point models.HistoricalPoint
}

// FetchHistory requests intraday 15-minute bars for 1D and 1W and daily bars
// otherwise, asking for the full output size for intraday, 1Y and 5Y. Bars are
// returned ascending and unfiltered.
func (c *Client) FetchHistory(ctx context.Context, symbol string, period models.Period) (*models.HistoricalSeries, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	function := "TIME_SERIES_DAILY"
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("outputsize", "compact")

	if period.Intraday() {
		function = "TIME_SERIES_INTRADAY"
		params.Set("interval", "15min")
		params.Set("outputsize", "full")
	} else if period.FullHistory() {
		params.Set("outputsize", "full")
	}

	var resp timeSeriesResponse
	if err := c.get(ctx, function, params, &resp); err != nil {
		return nil, err
	}

	bars, err := parseTimeSeries(resp)
	if err != nil {
		return nil, fmt.Errorf("history %s %s: %w", symbol, period, err)
	}

	points := make([]models.HistoricalPoint, len(bars))
	for i, b := range bars {
		points[i] = b.point
	}
	series := models.NewHistoricalSeries(symbol, period, models.SourceAlphaVantage, points)
	return &series, nil
}

func parseTimeSeries(resp timeSeriesResponse) ([]bar, error) {
	raw, layout, loc := resp.Daily, dailyLayout, time.UTC
	if len(raw) == 0 {
		// Intraday timestamps are US/Eastern
		raw, layout, loc = resp.Intraday, intradayLayout, models.MarketLocation()
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no %q or %q in response", common.ErrSourceUnavailable, dailyKey, intradayKey)
	}

	bars := make([]bar, 0, len(raw))
	for stamp, fields := range raw {
		at, err := time.ParseInLocation(layout, stamp, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q", common.ErrSourceUnavailable, stamp)
		}

		f := fieldReader{raw: fields}
		p := models.HistoricalPoint{
			Date:   at.UTC().Format(time.RFC3339),
			Open:   f.float("1. open"),
			High:   f.float("2. high"),
			Low:    f.float("3. low"),
			Close:  f.float("4. close"),
			Volume: f.int("5. volume"),
		}
		if err := f.err(); err != nil {
			return nil, fmt.Errorf("bar %s: %w", stamp, err)
		}
		bars = append(bars, bar{at: at, point: p})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].at.Before(bars[j].at) })
	return bars, nil
}
