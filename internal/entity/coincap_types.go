package entity

// CoinCapAssetsResponse is the body of GET /v2/assets.
type CoinCapAssetsResponse struct {
	Data      []CoinCapAsset `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

// CoinCapAsset is a single asset. CoinCap encodes every numeric field as a string,
// and any of them may be null.
type CoinCapAsset struct {
	ID                string  `json:"id"`
	Rank              string  `json:"rank"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Supply            string  `json:"supply"`
	MaxSupply         *string `json:"maxSupply"`
	MarketCapUsd      string  `json:"marketCapUsd"`
	VolumeUsd24Hr     string  `json:"volumeUsd24Hr"`
	PriceUsd          string  `json:"priceUsd"`
	ChangePercent24Hr string  `json:"changePercent24Hr"`
	Vwap24Hr          *string `json:"vwap24Hr"`
	Explorer          string  `json:"explorer"`
}
