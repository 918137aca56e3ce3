package networkdefinition

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
)

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	logger            port.Logger
	allNetworkDefs    map[entity.ChainID]entity.NetworkDefinition
	activeNetworkDefs []entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:                   1,
		Name:                      "Ethereum",
		Identifier:                "ethereum",
		NativeSymbol:              "ETH",
		NativeName:                "Ether",
		Decimals:                  18,
		PrimaryRPCURL:             "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:           []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		BlockExplorerURL:          "https://etherscan.io",
		DEXScreenerChainID:        "ethereum",
		WrappedNativeTokenAddress: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
	}
	BSC = entity.NetworkDefinition{
		ChainID:                   56,
		Name:                      "BNB Smart Chain",
		Identifier:                "bsc",
		NativeSymbol:              "BNB",
		NativeName:                "BNB",
		Decimals:                  18,
		PrimaryRPCURL:             "https://1rpc.io/bnb",
		FallbackRPCURLs:           []string{"https://bsc-dataseed2.binance.org/", "https://bsc.publicnode.com"},
		BlockExplorerURL:          "https://bscscan.com",
		DEXScreenerChainID:        "bsc",
		WrappedNativeTokenAddress: "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c", // WBNB
	}
	Polygon = entity.NetworkDefinition{
		ChainID:                   137,
		Name:                      "Polygon",
		Identifier:                "polygon",
		NativeSymbol:              "MATIC",
		NativeName:                "Polygon",
		Decimals:                  18,
		PrimaryRPCURL:             "https://polygon-rpc.com/",
		FallbackRPCURLs:           []string{"https://rpc.ankr.com/polygon", "https://polygon.publicnode.com"},
		BlockExplorerURL:          "https://polygonscan.com",
		DEXScreenerChainID:        "polygon",
		WrappedNativeTokenAddress: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", // WMATIC
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:                   42161,
		Name:                      "Arbitrum",
		Identifier:                "arbitrum",
		NativeSymbol:              "ETH",
		NativeName:                "Ether",
		Decimals:                  18,
		PrimaryRPCURL:             "https://arb1.arbitrum.io/rpc",
		FallbackRPCURLs:           []string{"https://arbitrum.llamarpc.com", "https://arbitrum.publicnode.com"},
		BlockExplorerURL:          "https://arbiscan.io",
		DEXScreenerChainID:        "arbitrum",
		WrappedNativeTokenAddress: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", // WETH on Arbitrum
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:                   43114,
		Name:                      "Avalanche",
		Identifier:                "avalanche",
		NativeSymbol:              "AVAX",
		NativeName:                "Avalanche",
		Decimals:                  18,
		PrimaryRPCURL:             "https://api.avax.network/ext/bc/C/rpc",
		FallbackRPCURLs:           []string{"https://avalanche.public-rpc.com", "https://rpc.ankr.com/avalanche"},
		BlockExplorerURL:          "https://snowtrace.io",
		DEXScreenerChainID:        "avalanche",
		WrappedNativeTokenAddress: "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7", // WAVAX
	}
	Base = entity.NetworkDefinition{
		ChainID:                   8453,
		Name:                      "Base",
		Identifier:                "base",
		NativeSymbol:              "ETH",
		NativeName:                "Ether",
		Decimals:                  18,
		PrimaryRPCURL:             "https://1rpc.io/base",
		FallbackRPCURLs:           []string{"https://base.publicnode.com", "https://base.llamarpc.com"},
		BlockExplorerURL:          "https://basescan.org",
		DEXScreenerChainID:        "base",
		WrappedNativeTokenAddress: "0x4200000000000000000000000000000000000006", // WETH on Base
	}
	Optimism = entity.NetworkDefinition{
		ChainID:                   10,
		Name:                      "Optimism",
		Identifier:                "optimism",
		NativeSymbol:              "ETH",
		NativeName:                "Ether",
		Decimals:                  18,
		PrimaryRPCURL:             "https://op-pokt.nodies.app",
		FallbackRPCURLs:           []string{"https://optimism.publicnode.com", "https://rpc.ankr.com/optimism"},
		BlockExplorerURL:          "https://optimistic.etherscan.io",
		DEXScreenerChainID:        "optimism",
		WrappedNativeTokenAddress: "0x4200000000000000000000000000000000000006", // WETH on Optimism
	}
	Fantom = entity.NetworkDefinition{
		ChainID:                   250,
		Name:                      "Fantom Opera",
		Identifier:                "fantom",
		NativeSymbol:              "FTM",
		NativeName:                "Fantom",
		Decimals:                  18,
		PrimaryRPCURL:             "https://1rpc.io/ftm",
		FallbackRPCURLs:           []string{"https://fantom.publicnode.com", "https://rpc.ankr.com/fantom"},
		BlockExplorerURL:          "https://ftmscan.com",
		DEXScreenerChainID:        "fantom",
		WrappedNativeTokenAddress: "0x21be370D5312f44cB42ce377BC9b8a0cEF1A4C83", // WFTM
	}
)

// KnownDefinitions returns every network the dashboard can work with, keyed by identifier.
func KnownDefinitions() map[entity.ChainID]entity.NetworkDefinition {
	return map[entity.ChainID]entity.NetworkDefinition{
		Ethereum.Identifier:  Ethereum,
		BSC.Identifier:       BSC,
		Polygon.Identifier:   Polygon,
		Arbitrum.Identifier:  Arbitrum,
		Avalanche.Identifier: Avalanche,
		Base.Identifier:      Base,
		Optimism.Identifier:  Optimism,
		Fantom.Identifier:    Fantom,
	}
}

// NewNetworkDefinitionProvider activates the networks that have a token list in
// tokenDataDir. When tracked is non-empty, only those identifiers are activated.
func NewNetworkDefinitionProvider(log port.Logger, tokenDataDir string, tracked []string) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:            log,
		allNetworkDefs:    KnownDefinitions(),
		activeNetworkDefs: make([]entity.NetworkDefinition, 0),
	}

	trackedSet := make(map[string]struct{}, len(tracked))
	for _, t := range tracked {
		trackedSet[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	files, err := os.ReadDir(tokenDataDir)
	if err != nil {
		p.logger.Error(fmt.Sprintf("Failed to read token data directory: %s", tokenDataDir), "error", err)
		return p
	}

	activeIdentifiers := make(map[string]struct{})
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".json") {
			continue
		}

		identifier := strings.TrimSuffix(strings.ToLower(file.Name()), ".json")
		if _, alreadyActive := activeIdentifiers[identifier]; alreadyActive {
			continue
		}
		if len(trackedSet) > 0 {
			if _, ok := trackedSet[identifier]; !ok {
				p.logger.Debug("Token file found for untracked network, skipping", "network", identifier)
				continue
			}
		}

		def, ok := p.allNetworkDefs[entity.ChainID(identifier)]
		if !ok {
			p.logger.Warn(fmt.Sprintf("Token file found for network '%s' but no corresponding network definition exists. Skipping.", identifier))
			continue
		}

		p.activeNetworkDefs = append(p.activeNetworkDefs, def)
		activeIdentifiers[identifier] = struct{}{}
	}

	// порядок ReadDir не гарантирован на всех ФС
	sort.Slice(p.activeNetworkDefs, func(i, j int) bool {
		return p.activeNetworkDefs[i].ChainID < p.activeNetworkDefs[j].ChainID
	})

	if len(p.activeNetworkDefs) == 0 {
		p.logger.Warn("No active networks determined from token files", "directory", tokenDataDir)
	} else {
		p.logger.Info("NetworkDefinitionProvider initialized", "active_networks", len(p.activeNetworkDefs))
	}
	return p
}

// GetAllNetworkDefinitions returns the list of active (tracked) network definitions.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.activeNetworkDefs))
	copy(defsCopy, p.activeNetworkDefs)
	return defsCopy
}

// GetNetworkDefinitionByName returns a specific network definition by its identifier if it's active.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.activeNetworkDefs {
		if strings.EqualFold(string(def.Identifier), identifier) {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}
