// Package series synthesizes illustrative time series from a base value per symbol.
// The output is placeholder data for charts, not historical prices.
package series

import (
	"fmt"
	"iter"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"crypto_dashboard/internal/domain/entity"
)

const (
	DefaultDailyNoise    = 0.05
	DefaultDailyFloor    = 1e-9
	DefaultIntradayNoise = 0.15
	DefaultIntradayFloor = 1.0

	dateLayout = "2006-01-02"
)

// Options controls randomness and clamping. Zero fields take the defaults of the
// generator they are passed to.
type Options struct {
	Rand *rand.Rand
	// NoiseAmplitude is the half-width of the uniform noise, as a fraction (0.05 = ±5%).
	NoiseAmplitude float64
	Floor          float64
	Now            func() time.Time
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (o Options) resolve(noise, floor float64) Options {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.NoiseAmplitude <= 0 || math.IsNaN(o.NoiseAmplitude) {
		o.NoiseAmplitude = noise
	}
	if o.Floor <= 0 || math.IsNaN(o.Floor) {
		o.Floor = floor
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (o Options) noise() float64 {
	return (o.Rand.Float64()*2 - 1) * o.NoiseAmplitude
}

// Daily yields exactly days points, one calendar day apart and ending today (UTC).
// Point i of symbol s is base[s] * (1 + trendPercent[s]/100 * i/days + noise), clamped
// at the floor. Symbols missing from trendPercent have no trend.
func Daily(base map[string]float64, days int, trendPercent map[string]float64, opts Options) (iter.Seq[entity.ComparisonSeriesPoint], error) {
	if days < 0 {
		return nil, &entity.InvalidInputError{Field: "days", Reason: "must not be negative"}
	}
	symbols, err := validateBase(base)
	if err != nil {
		return nil, err
	}
	o := opts.resolve(DefaultDailyNoise, DefaultDailyFloor)

	return func(yield func(entity.ComparisonSeriesPoint) bool) {
		if days == 0 {
			return
		}
		today := o.Now().UTC().Truncate(24 * time.Hour)
		for i := 0; i < days; i++ {
			date := today.AddDate(0, 0, i-(days-1))
			point := entity.ComparisonSeriesPoint{
				Timestamp:      date.Format(dateLayout),
				ValuesBySymbol: make(map[string]float64, len(symbols)),
			}
			for _, s := range symbols {
				trend := trendPercent[s]
				if math.IsNaN(trend) || math.IsInf(trend, 0) {
					trend = 0
				}
				factor := 1 + trend/100*float64(i)/float64(days) + o.noise()
				point.ValuesBySymbol[s] = math.Max(o.Floor, base[s]*factor)
			}
			if !yield(point) {
				return
			}
		}
	}, nil
}

// Generate collects Daily into a slice.
func Generate(base map[string]float64, days int, trendPercent map[string]float64, opts Options) ([]entity.ComparisonSeriesPoint, error) {
	seq, err := Daily(base, days, trendPercent, opts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.ComparisonSeriesPoint, 0, days)
	for p := range seq {
		out = append(out, p)
	}
	return out, nil
}

// Intraday returns points samples spaced by interval and ending now, each value being
// base[s] with uniform noise, clamped at the floor. Timestamps are RFC3339 in UTC.
func Intraday(base map[string]float64, points int, interval time.Duration, opts Options) ([]entity.ComparisonSeriesPoint, error) {
	if points < 0 {
		return nil, &entity.InvalidInputError{Field: "points", Reason: "must not be negative"}
	}
	if interval <= 0 {
		return nil, &entity.InvalidInputError{Field: "interval", Reason: "must be positive"}
	}
	symbols, err := validateBase(base)
	if err != nil {
		return nil, err
	}
	o := opts.resolve(DefaultIntradayNoise, DefaultIntradayFloor)

	now := o.Now().UTC().Truncate(time.Second)
	out := make([]entity.ComparisonSeriesPoint, 0, points)
	for i := points - 1; i >= 0; i-- {
		point := entity.ComparisonSeriesPoint{
			Timestamp:      now.Add(-time.Duration(i) * interval).Format(time.RFC3339),
			ValuesBySymbol: make(map[string]float64, len(symbols)),
		}
		for _, s := range symbols {
			point.ValuesBySymbol[s] = math.Max(o.Floor, base[s]*(1+o.noise()))
		}
		out = append(out, point)
	}
	return out, nil
}

// validateBase rejects negative or non-finite base values and returns the symbols in
// lexical order so a seeded generator draws noise in a stable sequence.
func validateBase(base map[string]float64) ([]string, error) {
	symbols := make([]string, 0, len(base))
	for s, v := range base {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, &entity.InvalidInputError{
				Field:  fmt.Sprintf("base[%s]", s),
				Reason: "must be a finite non-negative number",
			}
		}
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, nil
}
