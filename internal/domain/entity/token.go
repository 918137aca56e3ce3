package entity

// TokenInfo holds the on-chain details of a tracked token.
type TokenInfo struct {
	ChainID  uint64 `json:"chainId"`
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Token is a market-data record. All mutable fields are replaced on every fetch.
type Token struct {
	ID        string   `json:"id"`
	Rank      int      `json:"rank"`
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Change24h float64  `json:"change24h"`
	MarketCap float64  `json:"marketCap"`
	Volume24h float64  `json:"volume24h"`
	Supply    float64  `json:"supply"`
	MaxSupply *float64 `json:"maxSupply,omitempty"`
	IconURL   string   `json:"iconUrl,omitempty"`
}

// Movers holds the best and worst 24h performers.
type Movers struct {
	Gainers []Token `json:"gainers"`
	Losers  []Token `json:"losers"`
}
