package client

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"crypto_dashboard/internal/domain/entity"
	providers "crypto_dashboard/internal/entity"
)

const coinCapIconURL = "https://assets.coincap.io/assets/icons/%s@2x.png"

// parseNumber parses a provider numeric string. Empty or malformed input yields NaN
// so the formatter renders a sentinel instead of a misleading zero.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// MapCoinCapAssets converts CoinCap assets into market tokens.
func MapCoinCapAssets(assets []providers.CoinCapAsset) []entity.Token {
	tokens := make([]entity.Token, 0, len(assets))
	for _, a := range assets {
		rank, err := strconv.Atoi(strings.TrimSpace(a.Rank))
		if err != nil {
			rank = 0
		}
		t := entity.Token{
			ID:        a.ID,
			Rank:      rank,
			Symbol:    a.Symbol,
			Name:      a.Name,
			Price:     parseNumber(a.PriceUsd),
			Change24h: parseNumber(a.ChangePercent24Hr),
			MarketCap: parseNumber(a.MarketCapUsd),
			Volume24h: parseNumber(a.VolumeUsd24Hr),
			Supply:    parseNumber(a.Supply),
			IconURL:   fmt.Sprintf(coinCapIconURL, strings.ToLower(a.Symbol)),
		}
		if a.MaxSupply != nil {
			if v := parseNumber(*a.MaxSupply); !math.IsNaN(v) {
				t.MaxSupply = &v
			}
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// MapAlternativeGlobal converts the alternative.me global payload. Dominance arrives as a
// fraction and is returned as a percentage.
func MapAlternativeGlobal(resp providers.AlternativeGlobalResponse) entity.GlobalMarketData {
	g := entity.GlobalMarketData{
		ActiveCryptocurrencies: resp.Data.ActiveCryptocurrencies,
		Markets:                resp.Data.ActiveMarkets,
		TotalMarketCapUSD:      math.NaN(),
		TotalVolume24hUSD:      math.NaN(),
		BTCDominancePercent:    resp.Data.BitcoinPercentageOfMarketCap * 100,
	}
	if q, ok := resp.Data.Quotes["USD"]; ok {
		g.TotalMarketCapUSD = q.TotalMarketCap
		g.TotalVolume24hUSD = q.TotalVolume24h
	}
	if resp.Data.LastUpdated > 0 {
		g.UpdatedAt = time.Unix(resp.Data.LastUpdated, 0).UTC()
	}
	return g
}

// MapFearAndGreed converts the latest Fear & Greed reading. ok is false when the
// payload has no entries.
func MapFearAndGreed(resp providers.FearAndGreedResponse) (entity.FearAndGreedIndex, bool) {
	if len(resp.Data) == 0 {
		return entity.FearAndGreedIndex{}, false
	}
	e := resp.Data[0]
	idx := entity.FearAndGreedIndex{Classification: e.ValueClassification}
	if v, err := strconv.Atoi(strings.TrimSpace(e.Value)); err == nil {
		idx.Value = v
	}
	if ts, err := strconv.ParseInt(strings.TrimSpace(e.Timestamp), 10, 64); err == nil {
		idx.Timestamp = time.Unix(ts, 0).UTC()
	}
	if secs, err := strconv.ParseInt(strings.TrimSpace(e.TimeUntilUpdate), 10, 64); err == nil {
		idx.TimeUntilUpdateSecs = secs
	}
	return idx, true
}

// MapDexPairs converts DEXScreener pairs for one network and computes each pair's share
// of the combined 24h volume.
func MapDexPairs(network string, pairs []providers.PairData) []entity.DexPair {
	out := make([]entity.DexPair, 0, len(pairs))
	var totalVolume float64
	for _, p := range pairs {
		dp := entity.DexPair{
			Network:      network,
			DexID:        p.DexID,
			PairAddress:  p.PairAddress,
			BaseSymbol:   p.BaseToken.Symbol,
			BaseAddress:  p.BaseToken.Address,
			QuoteSymbol:  p.QuoteToken.Symbol,
			PriceUSD:     parseNumber(p.PriceUsd),
			Volume24hUSD: p.Volume.H24,
			Change24h:    p.PriceChange.H24,
			Buys24h:      p.Txns.H24.Buys,
			Sells24h:     p.Txns.H24.Sells,
			URL:          p.URL,
		}
		if p.Liquidity != nil {
			dp.LiquidityUSD = p.Liquidity.Usd
		}
		if dp.Volume24hUSD > 0 {
			totalVolume += dp.Volume24hUSD
		}
		out = append(out, dp)
	}
	if totalVolume > 0 {
		for i := range out {
			if out[i].Volume24hUSD > 0 {
				out[i].MarketSharePct = out[i].Volume24hUSD / totalVolume * 100
			}
		}
	}
	return out
}
