package entity

// AlternativeMetadata is attached to every Alternative.me response.
type AlternativeMetadata struct {
	Timestamp int64   `json:"timestamp"`
	Error     *string `json:"error"`
}

// AlternativeGlobalResponse is the body of GET /v2/global/.
type AlternativeGlobalResponse struct {
	Data     AlternativeGlobalData `json:"data"`
	Metadata AlternativeMetadata   `json:"metadata"`
}

// AlternativeGlobalData holds global market statistics.
// BitcoinPercentageOfMarketCap is a fraction (0.52), not a percentage.
type AlternativeGlobalData struct {
	ActiveCryptocurrencies       int                               `json:"active_cryptocurrencies"`
	ActiveMarkets                int                               `json:"active_markets"`
	BitcoinPercentageOfMarketCap float64                           `json:"bitcoin_percentage_of_market_cap"`
	Quotes                       map[string]AlternativeGlobalQuote `json:"quotes"`
	LastUpdated                  int64                             `json:"last_updated"`
}

// AlternativeGlobalQuote is the per-currency market total.
type AlternativeGlobalQuote struct {
	TotalMarketCap float64 `json:"total_market_cap"`
	TotalVolume24h float64 `json:"total_volume_24h"`
}

// FearAndGreedResponse is the body of GET /fng/.
type FearAndGreedResponse struct {
	Name     string              `json:"name"`
	Data     []FearAndGreedEntry `json:"data"`
	Metadata AlternativeMetadata `json:"metadata"`
}

// FearAndGreedEntry is one index reading. All fields arrive as strings.
type FearAndGreedEntry struct {
	Value               string `json:"value"`
	ValueClassification string `json:"value_classification"`
	Timestamp           string `json:"timestamp"`
	TimeUntilUpdate     string `json:"time_until_update,omitempty"`
}
