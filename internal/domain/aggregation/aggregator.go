// Package aggregation groups holdings into value distributions and derives
// concentration metrics from them.
package aggregation

import (
	"math"
	"sort"

	"crypto_dashboard/internal/domain/entity"
)

// KeyFunc extracts the grouping key of a holding.
type KeyFunc func(entity.Holding) string

// ByChain groups holdings by their network.
func ByChain(h entity.Holding) string { return string(h.Chain) }

// BySymbol groups holdings by token symbol.
func BySymbol(h entity.Holding) string { return h.Symbol }

type groupOptions struct {
	sortByValue bool
}

// GroupOption tunes GroupByKey.
type GroupOption func(*groupOptions)

// SortByValueDesc orders the distribution by value, largest first. Ties keep
// first-occurrence order.
func SortByValueDesc() GroupOption {
	return func(o *groupOptions) { o.sortByValue = true }
}

// holdingValue recomputes balance*price and treats unusable values as zero.
func holdingValue(h entity.Holding) float64 {
	v := h.MarketValue()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// TotalValue sums the recomputed value of all holdings.
func TotalValue(holdings []entity.Holding) float64 {
	var total float64
	for _, h := range holdings {
		total += holdingValue(h)
	}
	return total
}

// GroupByKey sums holding values per key and computes each group's share of the
// total. Groups appear in order of first occurrence unless SortByValueDesc is given.
// A zero total yields zero percentages.
func GroupByKey(holdings []entity.Holding, key KeyFunc, opts ...GroupOption) []entity.DistributionEntry {
	var o groupOptions
	for _, opt := range opts {
		opt(&o)
	}

	entries := make([]entity.DistributionEntry, 0)
	index := make(map[string]int)
	var total float64
	for _, h := range holdings {
		k := key(h)
		v := holdingValue(h)
		total += v
		i, ok := index[k]
		if !ok {
			i = len(entries)
			index[k] = i
			entries = append(entries, entity.DistributionEntry{Key: k})
		}
		entries[i].TotalValue += v
		entries[i].HoldingCount++
	}

	for i := range entries {
		if total > 0 {
			entries[i].Percentage = entries[i].TotalValue / total * 100
		}
	}

	if o.sortByValue {
		sort.SliceStable(entries, func(a, b int) bool {
			return entries[a].TotalValue > entries[b].TotalValue
		})
	}
	return entries
}

// ChainDistribution groups holdings by chain.
func ChainDistribution(holdings []entity.Holding, opts ...GroupOption) []entity.ChainDistribution {
	groups := GroupByKey(holdings, ByChain, opts...)
	out := make([]entity.ChainDistribution, len(groups))
	for i, g := range groups {
		out[i] = entity.ChainDistribution{
			Chain:                 entity.ChainID(g.Key),
			TotalValue:            g.TotalValue,
			PercentageOfPortfolio: g.Percentage,
		}
	}
	return out
}

// ComputeRiskLevel maps an allocation percentage to a risk tier:
// above 50 is High, above 30 is Medium, anything else is Low.
func ComputeRiskLevel(allocationPercentage float64) entity.RiskLevel {
	switch {
	case allocationPercentage > 50:
		return entity.RiskHigh
	case allocationPercentage > 30:
		return entity.RiskMedium
	default:
		return entity.RiskLow
	}
}

// AssessRisk attaches a risk level to every entry of a distribution.
func AssessRisk(distribution []entity.DistributionEntry) []entity.RiskAssessment {
	out := make([]entity.RiskAssessment, len(distribution))
	for i, d := range distribution {
		out[i] = entity.RiskAssessment{
			Key:        d.Key,
			Percentage: d.Percentage,
			Level:      ComputeRiskLevel(d.Percentage),
		}
	}
	return out
}

// ComputeDiversificationScore returns 100*(1-HHI) where HHI is the
// Herfindahl-Hirschman index of the percentage shares. A single position scores 0,
// n equal positions score 100*(1-1/n). Shifting value into the largest position
// never raises the score.
func ComputeDiversificationScore(distribution []entity.DistributionEntry) float64 {
	var sum float64
	for _, d := range distribution {
		if d.Percentage > 0 && !math.IsInf(d.Percentage, 0) {
			sum += d.Percentage
		}
	}
	if sum <= 0 {
		return 0
	}

	var hhi float64
	for _, d := range distribution {
		if d.Percentage <= 0 || math.IsInf(d.Percentage, 0) {
			continue
		}
		share := d.Percentage / sum
		hhi += share * share
	}
	score := 100 * (1 - hhi)
	return math.Max(0, math.Min(100, score))
}

// WeightedChange24h is the value-weighted 24h change of the holdings, in percent.
func WeightedChange24h(holdings []entity.Holding) float64 {
	total := TotalValue(holdings)
	if total == 0 {
		return 0
	}
	var weighted float64
	for _, h := range holdings {
		if math.IsNaN(h.Change24hPercent) || math.IsInf(h.Change24hPercent, 0) {
			continue
		}
		weighted += holdingValue(h) * h.Change24hPercent
	}
	return weighted / total
}

// TopMovers returns up to n tokens with the highest and the lowest 24h change.
// Gainers only include positive changes and losers only negative ones.
func TopMovers(tokens []entity.Token, n int) entity.Movers {
	movers := entity.Movers{Gainers: []entity.Token{}, Losers: []entity.Token{}}
	if n <= 0 {
		return movers
	}

	sorted := make([]entity.Token, 0, len(tokens))
	for _, t := range tokens {
		if !math.IsNaN(t.Change24h) {
			sorted = append(sorted, t)
		}
	}
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Change24h > sorted[b].Change24h })

	for _, t := range sorted {
		if len(movers.Gainers) == n || t.Change24h <= 0 {
			break
		}
		movers.Gainers = append(movers.Gainers, t)
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		t := sorted[i]
		if len(movers.Losers) == n || t.Change24h >= 0 {
			break
		}
		movers.Losers = append(movers.Losers, t)
	}
	return movers
}
