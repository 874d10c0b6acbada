// Package analytics computes performance metrics over historical series.
package analytics

import (
	"math"

	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/models"
)

// TradingDaysPerYear annualises daily statistics.
const TradingDaysPerYear = 252

// ComputeMetrics derives return, volatility, price band and Sharpe ratio
// from points, which must be ascending by date. Fewer than two points yield
// all-zero metrics.
//
// The Sharpe ratio divides the mean daily return by the already annualised
// volatility and multiplies by sqrt(252) again. That scaling is kept so
// figures match earlier releases.
func ComputeMetrics(points []models.HistoricalPoint) models.PerformanceMetrics {
	if len(points) < 2 {
		return models.PerformanceMetrics{}
	}

	first := points[0].Close
	last := points[len(points)-1].Close

	var totalReturn float64
	if first != 0 {
		totalReturn = (last - first) / first * 100
	}

	returns := DailyReturns(points)
	mean := Mean(returns)
	volatility := StdDev(returns, mean) * math.Sqrt(TradingDaysPerYear)

	var sharpe float64
	if volatility > 0 {
		sharpe = mean / volatility * math.Sqrt(TradingDaysPerYear)
	}

	maxPrice := math.Inf(-1)
	minPrice := math.Inf(1)
	for _, p := range points {
		maxPrice = math.Max(maxPrice, p.High)
		minPrice = math.Min(minPrice, p.Low)
	}

	var priceRange float64
	if minPrice > 0 {
		priceRange = (maxPrice - minPrice) / minPrice * 100
	}

	return models.PerformanceMetrics{
		TotalReturn: common.Round2(totalReturn),
		Volatility:  common.Round2(volatility),
		MaxPrice:    common.Round2(maxPrice),
		MinPrice:    common.Round2(minPrice),
		PriceRange:  common.Round2(priceRange),
		SharpeRatio: common.Round2(sharpe),
	}
}

// DailyReturns returns the simple percentage change between consecutive
// closes. Steps from a zero close are skipped.
func DailyReturns(points []models.HistoricalPoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	out := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev := points[i-1].Close
		if prev == 0 {
			continue
		}
		out = append(out, (points[i].Close-prev)/prev*100)
	}
	return out
}

// Mean is the arithmetic mean; zero for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the population standard deviation around mean.
func StdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
