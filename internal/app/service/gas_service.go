package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/domain/gasfee"
	"crypto_dashboard/internal/domain/series"
	"crypto_dashboard/internal/pkg/format"
)

type gasServiceImpl struct {
	profiles      []entity.GasProfile
	market        port.MarketService // может быть nil
	logger        port.Logger
	intradayNoise float64
}

// NewGasService validates every profile up front. market is optional and, when set,
// replaces the configured native/USD rates with live prices.
func NewGasService(profiles []entity.GasProfile, market port.MarketService, l port.Logger, intradayNoise float64) (port.GasService, error) {
	seen := make(map[entity.ChainID]struct{}, len(profiles))
	for _, p := range profiles {
		if err := gasfee.ValidateProfile(p); err != nil {
			return nil, fmt.Errorf("gas profile %s: %w", p.Network, err)
		}
		if _, dup := seen[p.Network]; dup {
			return nil, fmt.Errorf("gas profile %s: duplicate network", p.Network)
		}
		seen[p.Network] = struct{}{}
	}
	out := make([]entity.GasProfile, len(profiles))
	copy(out, profiles)
	l.Info("GasService initialized", "profiles", len(out))
	return &gasServiceImpl{profiles: out, market: market, logger: l, intradayNoise: intradayNoise}, nil
}

// withLiveRate returns a copy of p whose NativeToUSD comes from the market feed when
// one is available.
func (s *gasServiceImpl) withLiveRate(ctx context.Context, p entity.GasProfile) entity.GasProfile {
	if s.market == nil || p.NativeSymbol == "" {
		return p
	}
	if price, ok := s.market.NativePriceUSD(ctx, p.NativeSymbol); ok {
		p.NativeToUSD = &price
	}
	return p
}

func (s *gasServiceImpl) Profiles(ctx context.Context) []entity.GasOverview {
	out := make([]entity.GasOverview, 0, len(s.profiles))
	for _, p := range s.profiles {
		p = s.withLiveRate(ctx, p)
		ov := entity.GasOverview{
			Profile:      p,
			TierCostsUSD: make(map[entity.SpeedTier]float64, 4),
			TierPrices:   make(map[entity.SpeedTier]string, 4),
		}
		for _, speed := range entity.AllSpeedTiers() {
			price, _ := p.PricesBySpeed.Price(speed)
			ov.TierPrices[speed] = format.GasPrice(price, p.NativeUnit)
			cost, err := gasfee.TierCost(p, speed)
			if err != nil {
				// профиль без transfer: стоимость по уровню не показываем
				continue
			}
			ov.TierCostsUSD[speed] = cost
		}
		out = append(out, ov)
	}
	return out
}

func (s *gasServiceImpl) profile(network string) (entity.GasProfile, bool) {
	for _, p := range s.profiles {
		if strings.EqualFold(string(p.Network), network) {
			return p, true
		}
	}
	return entity.GasProfile{}, false
}

func (s *gasServiceImpl) Estimates(ctx context.Context, network string) (entity.GasEstimates, error) {
	p, ok := s.profile(network)
	if !ok {
		return entity.GasEstimates{}, fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, network)
	}
	p = s.withLiveRate(ctx, p)
	rows, err := gasfee.EstimateMatrix(p)
	if err != nil {
		return entity.GasEstimates{}, err
	}
	return entity.GasEstimates{Network: p.Network, Profile: p, Rows: rows}, nil
}

// History synthesizes an hourly standard-tier price series per network. The floor is
// capped at a tenth of the cheapest standard price so sub-gwei networks keep their scale.
func (s *gasServiceImpl) History(hours int, rng *rand.Rand) ([]entity.ComparisonSeriesPoint, error) {
	base := make(map[string]float64, len(s.profiles))
	floor := series.DefaultIntradayFloor
	for _, p := range s.profiles {
		standard := p.PricesBySpeed.Standard
		base[string(p.Network)] = standard
		if standard > 0 && standard/10 < floor {
			floor = standard / 10
		}
	}
	return series.Intraday(base, hours, time.Hour, series.Options{
		Rand:           rng,
		NoiseAmplitude: s.intradayNoise,
		Floor:          floor,
	})
}
