package alphavantage

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/models"
)

type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

// globalQuote is the typed view of a GLOBAL_QUOTE payload.
type globalQuote struct {
	Symbol           string
	Open             float64
	High             float64
	Low              float64
	Price            float64
	Volume           int64
	LatestTradingDay string
	PreviousClose    float64
	Change           float64
	ChangePercent    models.Percent
}

// parseGlobalQuote validates that every required field is present and numeric.
func parseGlobalQuote(raw map[string]string) (*globalQuote, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty Global Quote", common.ErrSourceUnavailable)
	}

	f := fieldReader{raw: raw}
	q := &globalQuote{
		Symbol:           f.str("01. symbol"),
		Open:             f.float("02. open"),
		High:             f.float("03. high"),
		Low:              f.float("04. low"),
		Price:            f.float("05. price"),
		Volume:           f.int("06. volume"),
		LatestTradingDay: f.str("07. latest trading day"),
		PreviousClose:    f.float("08. previous close"),
		Change:           f.float("09. change"),
		ChangePercent:    f.percent("10. change percent"),
	}
	if err := f.err(); err != nil {
		return nil, err
	}
	if q.Price <= 0 {
		return nil, fmt.Errorf("%w: non-positive price %v", common.ErrSourceUnavailable, q.Price)
	}
	return q, nil
}

// FetchQuote retrieves the latest GLOBAL_QUOTE for symbol. Derived fields
// (spread, estimates, trading hours) are left to the caller.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	params := url.Values{}
	params.Set("symbol", symbol)

	var resp globalQuoteResponse
	if err := c.get(ctx, "GLOBAL_QUOTE", params, &resp); err != nil {
		return nil, err
	}

	gq, err := parseGlobalQuote(resp.GlobalQuote)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}

	info, _ := models.LookupCompany(symbol)
	return &models.Quote{
		Symbol:        symbol,
		Name:          info.Name,
		Sector:        info.Sector,
		Industry:      info.Industry,
		Price:         gq.Price,
		Change:        gq.Change,
		ChangePercent: models.Percent(common.Round2(float64(gq.ChangePercent))),
		Open:          gq.Open,
		High:          gq.High,
		Low:           gq.Low,
		Volume:        gq.Volume,
		PreviousClose: gq.PreviousClose,
		LastUpdated:   gq.LatestTradingDay,
		Source:        models.SourceAlphaVantage,
	}, nil
}

// fieldReader parses string-encoded provider fields and remembers the
// first missing or malformed one.
type fieldReader struct {
	raw     map[string]string
	missing []string
}

func (f *fieldReader) str(key string) string {
	v := strings.TrimSpace(f.raw[key])
	if v == "" {
		f.missing = append(f.missing, key)
	}
	return v
}

func (f *fieldReader) float(key string) float64 {
	v := f.str(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.missing = append(f.missing, key)
		return 0
	}
	return n
}

func (f *fieldReader) int(key string) int64 {
	v := f.str(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		f.missing = append(f.missing, key)
		return 0
	}
	return n
}

func (f *fieldReader) percent(key string) models.Percent {
	v := f.str(key)
	if v == "" {
		return 0
	}
	p, err := models.ParsePercent(v)
	if err != nil {
		f.missing = append(f.missing, key)
		return 0
	}
	return p
}

func (f *fieldReader) err() error {
	if len(f.missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing or malformed fields: %s", common.ErrSourceUnavailable, strings.Join(f.missing, ", "))
}
