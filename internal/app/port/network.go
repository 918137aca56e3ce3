package port

import (
	"context"

	"crypto_dashboard/internal/domain/entity"
)

// BlockchainClient defines the interface for interacting with a blockchain network.
type BlockchainClient interface {
	// GetBalances resolves a batch of native/token balance requests in one round trip.
	// Per-item failures are reported in BalanceResultItem.Error.
	GetBalances(ctx context.Context, requests []entity.BalanceRequestItem) ([]entity.BalanceResultItem, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all active network definitions.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns an active network definition by its identifier.
	// Возвращает определение и true, если найдено, иначе false.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)
}

// BlockchainClientProvider defines the interface for providing blockchain clients.
type BlockchainClientProvider interface {
	GetClient(networkDefinition entity.NetworkDefinition) (BlockchainClient, error)
}
