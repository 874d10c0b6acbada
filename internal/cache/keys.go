package cache

import (
	"sort"
	"strings"

	"github.com/bobmcallan/stockpulse/internal/models"
)

// QuoteKey is the cache key for a single quote
func QuoteKey(symbol string) string {
	return "quote:" + symbol
}

// CompanyKey is the cache key for a company profile
func CompanyKey(symbol string) string {
	return "company:" + symbol
}

// SearchKey is the cache key for a search query; queries are case-insensitive
func SearchKey(query string) string {
	return "search:" + strings.ToLower(query)
}

// HistoryKey is the cache key for a symbol's series over period
func HistoryKey(symbol string, period models.Period) string {
	return "history:" + symbol + ":" + string(period)
}

// TrendingKey is the cache key for the trending list
const TrendingKey = "trending"

// CompareKey is the cache key for a comparison; symbol order does not matter.
func CompareKey(symbols []string, period models.Period) string {
	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	return "compare:" + strings.Join(sorted, ",") + ":" + string(period)
}
