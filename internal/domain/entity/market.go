package entity

import "time"

// GlobalMarketData is the provider-independent view of global market statistics.
type GlobalMarketData struct {
	ActiveCryptocurrencies int       `json:"activeCryptocurrencies"`
	Markets                int       `json:"markets"`
	TotalMarketCapUSD      float64   `json:"totalMarketCapUsd"`
	TotalVolume24hUSD      float64   `json:"totalVolume24hUsd"`
	BTCDominancePercent    float64   `json:"btcDominancePercent"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// FearAndGreedIndex is the latest sentiment reading.
type FearAndGreedIndex struct {
	Value               int       `json:"value"`
	Classification      string    `json:"classification"`
	Timestamp           time.Time `json:"timestamp"`
	TimeUntilUpdateSecs int64     `json:"timeUntilUpdateSecs,omitempty"`
}

// MarketOverview combines global data and sentiment. Both parts are fetched together.
type MarketOverview struct {
	Global      GlobalMarketData  `json:"global"`
	FearGreed   FearAndGreedIndex `json:"fearGreed"`
	RetrievedAt time.Time         `json:"retrievedAt"`
}

// DexPair is a trading pair as shown on the DEX analytics page.
type DexPair struct {
	Network        string  `json:"network"`
	DexID          string  `json:"dexId"`
	PairAddress    string  `json:"pairAddress"`
	BaseSymbol     string  `json:"baseSymbol"`
	BaseAddress    string  `json:"baseAddress"`
	QuoteSymbol    string  `json:"quoteSymbol"`
	PriceUSD       float64 `json:"priceUsd"`
	Volume24hUSD   float64 `json:"volume24hUsd"`
	LiquidityUSD   float64 `json:"liquidityUsd"`
	Change24h      float64 `json:"change24h"`
	Buys24h        int     `json:"buys24h"`
	Sells24h       int     `json:"sells24h"`
	URL            string  `json:"url,omitempty"`
	MarketSharePct float64 `json:"marketSharePct"`
}
