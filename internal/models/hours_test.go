package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func nyTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, newYork)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func TestIsMarketOpen(t *testing.T) {
	tests := []struct {
		at   string
		want bool
	}{
		{"2024-03-13 09:29", false}, // Wednesday
		{"2024-03-13 09:30", true},
		{"2024-03-13 15:59", true},
		{"2024-03-13 16:00", false},
		{"2024-03-16 11:00", false}, // Saturday
		{"2024-03-17 11:00", false}, // Sunday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMarketOpen(nyTime(t, tt.at)), tt.at)
	}
}

func TestNextMarketOpen(t *testing.T) {
	tests := []struct {
		at, want string
	}{
		{"2024-03-13 08:00", "2024-03-13 09:30"}, // before open same day
		{"2024-03-13 09:30", "2024-03-14 09:30"}, // strictly after
		{"2024-03-13 17:00", "2024-03-14 09:30"},
		{"2024-03-15 17:00", "2024-03-18 09:30"}, // Friday evening -> Monday
		{"2024-03-16 10:00", "2024-03-18 09:30"}, // Saturday
	}
	for _, tt := range tests {
		got := NextMarketOpen(nyTime(t, tt.at))
		assert.True(t, nyTime(t, tt.want).Equal(got), "%s: got %s", tt.at, got)
	}
}

func TestTradingHoursAt(t *testing.T) {
	th := TradingHoursAt(nyTime(t, "2024-03-13 10:00"))
	assert.True(t, th.IsOpen)
	assert.Equal(t, "EST", th.Timezone)
	_, err := time.Parse(time.RFC3339, th.NextOpen)
	assert.NoError(t, err)
}

func TestQuote_ApplySpread(t *testing.T) {
	q := Quote{Price: 195.89, Change: -1}
	q.ApplySpread()

	assert.InDelta(t, 195.89*0.0002, q.Spread, 1e-12)
	assert.GreaterOrEqual(t, q.AskPrice, q.BidPrice)
	assert.InDelta(t, q.Spread, q.AskPrice-q.BidPrice, 1e-9)
	assert.False(t, q.IsPositive)

	low := Quote{Price: 10}
	low.ApplySpread()
	assert.Equal(t, 0.01, low.Spread)
	assert.True(t, low.IsPositive)
}
