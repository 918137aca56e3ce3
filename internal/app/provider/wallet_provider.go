package provider

import (
	"context"
	"fmt"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/infrastructure/walletloader"
)

type fixtureHoldingProvider struct {
	holdings map[string][]entity.Holding
	logger   port.Logger
}

// NewFixtureHoldingProvider serves holdings from the YAML fixture file.
func NewFixtureHoldingProvider(path string, logger port.Logger) (port.HoldingProvider, error) {
	holdings, err := walletloader.LoadHoldings(path)
	if err != nil {
		return nil, err
	}
	logger.Info("Fixture holdings loaded", "wallets", len(holdings), "path", path)
	return &fixtureHoldingProvider{holdings: holdings, logger: logger}, nil
}

func (p *fixtureHoldingProvider) Holdings(_ context.Context, walletAddress string) ([]entity.Holding, []entity.ServiceError, error) {
	holdings, ok := p.holdings[walletloader.NormalizeAddress(walletAddress)]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", entity.ErrWalletNotFound, walletAddress)
	}
	// копия, чтобы вызывающий не мог изменить фикстуру
	out := make([]entity.Holding, len(holdings))
	copy(out, holdings)
	return out, nil, nil
}
