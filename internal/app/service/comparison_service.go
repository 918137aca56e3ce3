package service

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/domain/series"
)

// MaxComparisonSymbols bounds a single comparison request.
const MaxComparisonSymbols = 10

var timeframeDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
	"1y":  365,
}

// TimeframeDays maps a timeframe label to its length in days.
func TimeframeDays(timeframe string) (int, bool) {
	days, ok := timeframeDays[strings.ToLower(strings.TrimSpace(timeframe))]
	return days, ok
}

type comparisonServiceImpl struct {
	market     port.MarketService
	logger     port.Logger
	dailyNoise float64
}

// NewComparisonService builds comparisons on top of the market token listing.
func NewComparisonService(market port.MarketService, l port.Logger, dailyNoise float64) port.ComparisonService {
	return &comparisonServiceImpl{market: market, logger: l, dailyNoise: dailyNoise}
}

// Compare uses each token's current price as the series base and its 24h change as the
// trend across the whole timeframe. Symbols without a usable price are reported in Missing.
func (s *comparisonServiceImpl) Compare(ctx context.Context, symbols []string, timeframe string, rng *rand.Rand) (entity.Comparison, error) {
	days, ok := TimeframeDays(timeframe)
	if !ok {
		return entity.Comparison{}, &entity.InvalidInputError{Field: "timeframe", Reason: "must be one of 7d, 30d, 90d, 1y"}
	}
	wanted := normalizeSymbols(symbols)
	if len(wanted) == 0 {
		return entity.Comparison{}, &entity.InvalidInputError{Field: "symbols", Reason: "at least one symbol is required"}
	}
	if len(wanted) > MaxComparisonSymbols {
		return entity.Comparison{}, &entity.InvalidInputError{Field: "symbols", Reason: "too many symbols"}
	}

	tokens, err := s.market.Tokens(ctx)
	if err != nil {
		return entity.Comparison{}, err
	}
	bySymbol := make(map[string]entity.Token, len(tokens))
	for _, t := range tokens {
		key := strings.ToUpper(t.Symbol)
		if _, dup := bySymbol[key]; !dup {
			bySymbol[key] = t
		}
	}

	cmp := entity.Comparison{
		Timeframe: strings.ToLower(strings.TrimSpace(timeframe)),
		Days:      days,
		Tokens:    make([]entity.Token, 0, len(wanted)),
		Series:    []entity.ComparisonSeriesPoint{},
	}
	base := make(map[string]float64, len(wanted))
	trend := make(map[string]float64, len(wanted))
	for _, sym := range wanted {
		t, found := bySymbol[sym]
		if !found || math.IsNaN(t.Price) || math.IsInf(t.Price, 0) || t.Price < 0 {
			cmp.Missing = append(cmp.Missing, sym)
			continue
		}
		cmp.Tokens = append(cmp.Tokens, t)
		base[sym] = t.Price
		trend[sym] = t.Change24h
	}
	if len(base) == 0 {
		s.logger.Warn("No comparable symbols in market listing", "symbols", wanted)
		return cmp, nil
	}

	points, err := series.Generate(base, days, trend, series.Options{Rand: rng, NoiseAmplitude: s.dailyNoise})
	if err != nil {
		return entity.Comparison{}, err
	}
	cmp.Series = points
	return cmp, nil
}

// normalizeSymbols upper-cases, trims and dedupes symbols keeping request order.
func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, raw := range symbols {
		sym := strings.ToUpper(strings.TrimSpace(raw))
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}
