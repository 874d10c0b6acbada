package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/stockpulse/internal/common"
)

// Period is an enumerated lookback window.
type Period string

// Supported periods
const (
	Period1D Period = "1D"
	Period1W Period = "1W"
	Period1M Period = "1M"
	Period3M Period = "3M"
	Period6M Period = "6M"
	Period1Y Period = "1Y"
	Period5Y Period = "5Y"
)

// DefaultPeriod is used when the caller supplies none.
const DefaultPeriod = Period1M

const day = 24 * time.Hour

var periodWindows = map[Period]time.Duration{
	Period1D: day,
	Period1W: 7 * day,
	Period1M: 30 * day,
	Period3M: 90 * day,
	Period6M: 180 * day,
	Period1Y: 365 * day,
	Period5Y: 5 * 365 * day,
}

// Periods lists every supported period in ascending length.
func Periods() []Period {
	return []Period{Period1D, Period1W, Period1M, Period3M, Period6M, Period1Y, Period5Y}
}

// ParsePeriod validates raw. Blank input yields DefaultPeriod; case is
// ignored. Anything else is an ErrInvalidInput.
func ParsePeriod(raw string) (Period, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return DefaultPeriod, nil
	}
	p := Period(raw)
	if _, ok := periodWindows[p]; !ok {
		return "", fmt.Errorf("%w: unsupported period %q (want one of 1D, 1W, 1M, 3M, 6M, 1Y, 5Y)", common.ErrInvalidInput, raw)
	}
	return p, nil
}

// Window returns the lookback duration for the period.
func (p Period) Window() time.Duration {
	return periodWindows[p]
}

// Intraday reports whether the period is served from intraday bars.
func (p Period) Intraday() bool {
	return p == Period1D || p == Period1W
}

// FullHistory reports whether the period needs the provider's full output size.
func (p Period) FullHistory() bool {
	return p == Period1Y || p == Period5Y
}

// Steps is the number of generator intervals in the period: hours for 1D,
// days otherwise.
func (p Period) Steps() (int, time.Duration) {
	if p == Period1D {
		return 24, time.Hour
	}
	return int(p.Window() / day), day
}
