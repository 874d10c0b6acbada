package models

import (
	"math"
	"time"
)

// newYork handles EST/EDT transitions; the fixed zone is used only when
// tzdata is unavailable (e.g. minimal container).
var newYork = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// MarketLocation returns the New York time zone used for US equity sessions.
func MarketLocation() *time.Location {
	return newYork
}

const (
	sessionOpenMinute  = 9*60 + 30
	sessionCloseMinute = 16 * 60
)

// TradingHoursAt reports the US equity session state at now.
func TradingHoursAt(now time.Time) TradingHours {
	return TradingHours{
		IsOpen:   IsMarketOpen(now),
		NextOpen: NextMarketOpen(now).UTC().Format(time.RFC3339),
		Timezone: "EST",
	}
}

// IsMarketOpen reports whether now falls within Monday to Friday,
// 09:30 to 16:00 New York time.
func IsMarketOpen(now time.Time) bool {
	ny := now.In(newYork)
	if !isWeekday(ny.Weekday()) {
		return false
	}
	minute := ny.Hour()*60 + ny.Minute()
	return minute >= sessionOpenMinute && minute < sessionCloseMinute
}

// NextMarketOpen returns the first weekday 09:30 New York time strictly after now.
func NextMarketOpen(now time.Time) time.Time {
	ny := now.In(newYork)
	candidate := time.Date(ny.Year(), ny.Month(), ny.Day(), 9, 30, 0, 0, newYork)
	for !candidate.After(ny) || !isWeekday(candidate.Weekday()) {
		candidate = time.Date(candidate.Year(), candidate.Month(), candidate.Day()+1, 9, 30, 0, 0, newYork)
	}
	return candidate
}

func isWeekday(d time.Weekday) bool {
	return d >= time.Monday && d <= time.Friday
}

// Spread is the modelled bid/ask spread for price.
func Spread(price float64) float64 {
	return math.Max(0.01, price*0.0002)
}

// ApplySpread derives spread, bid, ask and direction from price and change.
func (q *Quote) ApplySpread() {
	q.Spread = Spread(q.Price)
	q.BidPrice = q.Price - q.Spread/2
	q.AskPrice = q.Price + q.Spread/2
	q.IsPositive = q.Change >= 0
}
