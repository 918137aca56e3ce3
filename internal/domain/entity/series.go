package entity

// ComparisonSeriesPoint is one time-indexed sample of per-symbol values.
type ComparisonSeriesPoint struct {
	Timestamp      string             `json:"timestamp"`
	ValuesBySymbol map[string]float64 `json:"valuesBySymbol"`
}

// Comparison is a price comparison of several tokens over a timeframe.
type Comparison struct {
	Timeframe string                  `json:"timeframe"`
	Days      int                     `json:"days"`
	Tokens    []Token                 `json:"tokens"`
	Series    []ComparisonSeriesPoint `json:"series"`
	// Missing lists requested symbols without a usable market price.
	Missing []string `json:"missing,omitempty"`
}
