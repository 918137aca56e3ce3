package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/aggregation"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/domain/series"
	"crypto_dashboard/internal/infrastructure/configloader"
	"crypto_dashboard/internal/pkg/format"
)

// PortfolioHistoryKey is the series key of the total portfolio value.
const PortfolioHistoryKey = "total"

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	holdingProvider port.HoldingProvider
	logger          port.Logger
	dailyNoise      float64
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(hp port.HoldingProvider, l port.Logger, cfg *configloader.Config) port.PortfolioService {
	s := &PortfolioServiceImpl{holdingProvider: hp, logger: l}
	if cfg != nil {
		s.dailyNoise = cfg.Series.DailyNoise
	}
	return s
}

func validateWallet(walletAddress string) error {
	if !common.IsHexAddress(strings.TrimSpace(walletAddress)) {
		return &entity.InvalidInputError{Field: "walletAddress", Reason: "must be a 0x-prefixed 20-byte hex address"}
	}
	return nil
}

// Summary implements port.PortfolioService.
func (s *PortfolioServiceImpl) Summary(ctx context.Context, walletAddress string, opts port.SummaryOptions) (entity.PortfolioSummary, []entity.ServiceError, error) {
	if err := validateWallet(walletAddress); err != nil {
		return entity.PortfolioSummary{}, nil, err
	}
	s.logger.Debug("Building portfolio summary", "wallet", walletAddress, "sort_by_value", opts.SortByValue)

	holdings, svcErrs, err := s.holdingProvider.Holdings(ctx, walletAddress)
	if err != nil {
		s.logger.Warn("Failed to resolve holdings", "wallet", walletAddress, "error", err)
		return entity.PortfolioSummary{}, svcErrs, fmt.Errorf("failed to resolve holdings for %s: %w", walletAddress, err)
	}
	if holdings == nil {
		holdings = []entity.Holding{}
	}
	for i := range holdings {
		holdings[i] = holdings[i].WithRecomputedValue()
	}
	if opts.SortByValue {
		sort.SliceStable(holdings, func(i, j int) bool { return holdings[i].Value > holdings[j].Value })
	}

	tokenDistribution := aggregation.GroupByKey(holdings, aggregation.BySymbol, aggregation.SortByValueDesc())
	summary := entity.PortfolioSummary{
		WalletAddress:        walletAddress,
		Holdings:             holdings,
		TotalValueUSD:        aggregation.TotalValue(holdings),
		Change24hPercent:     aggregation.WeightedChange24h(holdings),
		ChainDistribution:    aggregation.ChainDistribution(holdings, aggregation.SortByValueDesc()),
		TokenDistribution:    tokenDistribution,
		RiskAssessments:      aggregation.AssessRisk(tokenDistribution),
		DiversificationScore: aggregation.ComputeDiversificationScore(tokenDistribution),
	}
	// адрес уже проверен, ошибки быть не может
	summary.ShortAddress, _ = format.ShortenAddress(walletAddress)

	summary.Display = entity.PortfolioDisplay{
		TotalValue:           format.Currency(summary.TotalValueUSD),
		Change24h:            format.Percentage(summary.Change24hPercent, true),
		DiversificationScore: format.CompactNumber(summary.DiversificationScore),
		HoldingValues:        make(map[string]string, len(holdings)),
	}
	for _, h := range holdings {
		summary.Display.HoldingValues[holdingKey(h)] = format.Currency(h.Value)
	}

	s.logger.Info("Portfolio summary built",
		"wallet", walletAddress,
		"holdings", len(holdings),
		"total_value", summary.TotalValueUSD,
		"service_errors", len(svcErrs))
	return summary, svcErrs, nil
}

// holdingKey identifies a holding inside PortfolioDisplay.HoldingValues.
func holdingKey(h entity.Holding) string {
	return string(h.Chain) + ":" + h.Symbol
}

// History implements port.PortfolioService. The series starts from the current total
// value and trends by the weighted 24h change.
func (s *PortfolioServiceImpl) History(ctx context.Context, walletAddress string, days int, rng *rand.Rand) ([]entity.ComparisonSeriesPoint, error) {
	if days < 0 {
		return nil, &entity.InvalidInputError{Field: "days", Reason: "must not be negative"}
	}
	if err := validateWallet(walletAddress); err != nil {
		return nil, err
	}
	holdings, _, err := s.holdingProvider.Holdings(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holdings for %s: %w", walletAddress, err)
	}

	base := map[string]float64{PortfolioHistoryKey: aggregation.TotalValue(holdings)}
	trend := map[string]float64{PortfolioHistoryKey: aggregation.WeightedChange24h(holdings)}
	return series.Generate(base, days, trend, series.Options{Rand: rng, NoiseAmplitude: s.dailyNoise})
}
