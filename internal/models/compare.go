package models

// ComparisonRecord is the per-symbol slice of a comparison.
type ComparisonRecord struct {
	Symbol        string             `json:"symbol"`
	Name          string             `json:"name"`
	Sector        string             `json:"sector"`
	CurrentPrice  float64            `json:"currentPrice"`
	Change        float64            `json:"change"`
	ChangePercent Percent            `json:"changePercent"`
	IsPositive    bool               `json:"isPositive"`
	MarketCap     int64              `json:"marketCap"`
	History       []HistoricalPoint  `json:"history"`
	Performance   PerformanceMetrics `json:"performance"`
	Synthetic     bool               `json:"synthetic"` // substituted after a per-symbol failure
}

// ComparisonSummary aggregates the records of a comparison.
type ComparisonSummary struct {
	BestPerformer     string                        `json:"bestPerformer"`
	WorstPerformer    string                        `json:"worstPerformer"`
	AverageReturn     float64                       `json:"averageReturn"`
	CorrelationMatrix map[string]map[string]float64 `json:"correlationMatrix"`
}

// ComparisonResult is the output of a multi-symbol comparison.
type ComparisonResult struct {
	Period      Period             `json:"period"`
	Symbols     []string           `json:"symbols"`
	Stocks      []ComparisonRecord `json:"stocks"`
	Summary     ComparisonSummary  `json:"summary"`
	LastUpdated string             `json:"lastUpdated"`
}

// Result wraps a payload with the cache flag returned to collaborators.
type Result[T any] struct {
	Data   T    `json:"data"`
	Cached bool `json:"cached"`
}
