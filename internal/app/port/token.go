package port

import (
	"context"

	"crypto_dashboard/internal/domain/entity"
)

// TokenProvider defines the interface for fetching token definitions.
type TokenProvider interface {
	// GetTokensByNetwork returns a map of network ChainID (as string) to the tracked tokens.
	GetTokensByNetwork(activeNetworkDefs []entity.NetworkDefinition) (map[string][]entity.TokenInfo, error)
}

// TokenPriceService определяет интерфейс для службы получения цен токенов.
type TokenPriceService interface {
	LoadAndCacheTokenPrices(ctx context.Context) error
	GetPriceUSD(dexScreenerChainID string, tokenAddress string) (float64, bool)
	// Pairs returns the pairs seen during the last load for a network identifier.
	Pairs(network string) ([]entity.DexPair, bool)
}
