package client

import (
	"fmt"
	"sync"
	"time"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
)

const defaultProviderConnectionTimeout = 10 * time.Second

// DialFunc opens a client for a network. Replaced in tests.
type DialFunc func(netDef entity.NetworkDefinition) (port.BlockchainClient, error)

// evmClientProvider implements port.BlockchainClientProvider and caches one client per network.
type evmClientProvider struct {
	clients map[entity.ChainID]port.BlockchainClient
	mu      sync.Mutex
	logger  port.Logger
	dial    DialFunc
}

// NewEVMClientProvider creates a provider that dials real RPC endpoints.
func NewEVMClientProvider(rpcCallTimeout time.Duration, logger port.Logger) port.BlockchainClientProvider {
	return NewEVMClientProviderWithDialer(func(netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
		c, err := DialEVMClient(netDef, defaultProviderConnectionTimeout, rpcCallTimeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	}, logger)
}

// NewEVMClientProviderWithDialer creates a provider around a custom dialer.
func NewEVMClientProviderWithDialer(dial DialFunc, logger port.Logger) port.BlockchainClientProvider {
	return &evmClientProvider{
		clients: make(map[entity.ChainID]port.BlockchainClient),
		logger:  logger,
		dial:    dial,
	}
}

// GetClient returns the cached client for the network, dialing it on first use.
func (p *evmClientProvider) GetClient(netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[netDef.Identifier]; exists {
		return client, nil
	}

	p.logger.Info("Creating new EVM client", "network", netDef.Name, "rpc_primary", netDef.PrimaryRPCURL)
	newClient, err := p.dial(netDef)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.clients[netDef.Identifier] = newClient
	return newClient, nil
}
