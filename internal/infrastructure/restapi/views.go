package restapi

import (
	"math"
	"time"

	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/pkg/format"
)

// Provider data may carry NaN for unparseable numbers. encoding/json rejects NaN, so
// views expose such values as null next to their formatted form.

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// TokenView is a market token ready for display.
type TokenView struct {
	ID            string   `json:"id"`
	Rank          int      `json:"rank"`
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	Change24h     *float64 `json:"change24h"`
	MarketCap     *float64 `json:"marketCap"`
	Volume24h     *float64 `json:"volume24h"`
	Supply        *float64 `json:"supply"`
	MaxSupply     *float64 `json:"maxSupply,omitempty"`
	IconURL       string   `json:"iconUrl,omitempty"`
	PriceDisplay  string   `json:"priceDisplay"`
	ChangeDisplay string   `json:"changeDisplay"`
	CapDisplay    string   `json:"marketCapDisplay"`
	VolumeDisplay string   `json:"volumeDisplay"`
}

func newTokenView(t entity.Token) TokenView {
	return TokenView{
		ID:            t.ID,
		Rank:          t.Rank,
		Symbol:        t.Symbol,
		Name:          t.Name,
		Price:         finite(t.Price),
		Change24h:     finite(t.Change24h),
		MarketCap:     finite(t.MarketCap),
		Volume24h:     finite(t.Volume24h),
		Supply:        finite(t.Supply),
		MaxSupply:     t.MaxSupply,
		IconURL:       t.IconURL,
		PriceDisplay:  format.Currency(t.Price),
		ChangeDisplay: format.Percentage(t.Change24h, true),
		CapDisplay:    format.Currency(t.MarketCap),
		VolumeDisplay: format.Currency(t.Volume24h),
	}
}

func newTokenViews(tokens []entity.Token) []TokenView {
	out := make([]TokenView, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, newTokenView(t))
	}
	return out
}

// MoversView holds the gainers and losers lists.
type MoversView struct {
	Gainers []TokenView `json:"gainers"`
	Losers  []TokenView `json:"losers"`
}

// OverviewView is the market overview card data.
type OverviewView struct {
	ActiveCryptocurrencies int       `json:"activeCryptocurrencies"`
	Markets                int       `json:"markets"`
	TotalMarketCapUSD      *float64  `json:"totalMarketCapUsd"`
	TotalVolume24hUSD      *float64  `json:"totalVolume24hUsd"`
	BTCDominancePercent    *float64  `json:"btcDominancePercent"`
	FearGreedValue         int       `json:"fearGreedValue"`
	FearGreedLabel         string    `json:"fearGreedLabel"`
	RetrievedAt            time.Time `json:"retrievedAt"`
	MarketCapDisplay       string    `json:"marketCapDisplay"`
	VolumeDisplay          string    `json:"volumeDisplay"`
	DominanceDisplay       string    `json:"dominanceDisplay"`
}

func newOverviewView(o entity.MarketOverview) OverviewView {
	return OverviewView{
		ActiveCryptocurrencies: o.Global.ActiveCryptocurrencies,
		Markets:                o.Global.Markets,
		TotalMarketCapUSD:      finite(o.Global.TotalMarketCapUSD),
		TotalVolume24hUSD:      finite(o.Global.TotalVolume24hUSD),
		BTCDominancePercent:    finite(o.Global.BTCDominancePercent),
		FearGreedValue:         o.FearGreed.Value,
		FearGreedLabel:         o.FearGreed.Classification,
		RetrievedAt:            o.RetrievedAt,
		MarketCapDisplay:       format.Currency(o.Global.TotalMarketCapUSD),
		VolumeDisplay:          format.Currency(o.Global.TotalVolume24hUSD),
		DominanceDisplay:       format.Percentage(o.Global.BTCDominancePercent, false),
	}
}

// DexPairView is a DEX pair row.
type DexPairView struct {
	DexID          string   `json:"dexId"`
	PairAddress    string   `json:"pairAddress"`
	Pair           string   `json:"pair"`
	PriceUSD       *float64 `json:"priceUsd"`
	Volume24hUSD   *float64 `json:"volume24hUsd"`
	LiquidityUSD   *float64 `json:"liquidityUsd"`
	Change24h      *float64 `json:"change24h"`
	Buys24h        int      `json:"buys24h"`
	Sells24h       int      `json:"sells24h"`
	MarketSharePct float64  `json:"marketSharePct"`
	URL            string   `json:"url,omitempty"`
	PriceDisplay   string   `json:"priceDisplay"`
	VolumeDisplay  string   `json:"volumeDisplay"`
}

func newDexPairViews(pairs []entity.DexPair) []DexPairView {
	out := make([]DexPairView, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, DexPairView{
			DexID:          p.DexID,
			PairAddress:    p.PairAddress,
			Pair:           p.BaseSymbol + "/" + p.QuoteSymbol,
			PriceUSD:       finite(p.PriceUSD),
			Volume24hUSD:   finite(p.Volume24hUSD),
			LiquidityUSD:   finite(p.LiquidityUSD),
			Change24h:      finite(p.Change24h),
			Buys24h:        p.Buys24h,
			Sells24h:       p.Sells24h,
			MarketSharePct: p.MarketSharePct,
			URL:            p.URL,
			PriceDisplay:   format.Currency(p.PriceUSD),
			VolumeDisplay:  format.Currency(p.Volume24hUSD),
		})
	}
	return out
}

// ComparisonView is a price comparison with display-safe tokens.
type ComparisonView struct {
	Timeframe string                         `json:"timeframe"`
	Days      int                            `json:"days"`
	Tokens    []TokenView                    `json:"tokens"`
	Series    []entity.ComparisonSeriesPoint `json:"series"`
	Missing   []string                       `json:"missing,omitempty"`
}

func newComparisonView(c entity.Comparison) ComparisonView {
	return ComparisonView{
		Timeframe: c.Timeframe,
		Days:      c.Days,
		Tokens:    newTokenViews(c.Tokens),
		Series:    c.Series,
		Missing:   c.Missing,
	}
}
