package walletloader

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"crypto_dashboard/internal/domain/entity"
)

// HoldingsFile is the on-disk layout of the fixture holdings file.
type HoldingsFile struct {
	Wallets []WalletHoldings `yaml:"wallets"`
}

// WalletHoldings lists the positions of one wallet.
type WalletHoldings struct {
	Address  string           `yaml:"address"`
	Label    string           `yaml:"label,omitempty"`
	Holdings []entity.Holding `yaml:"holdings"`
}

// LoadHoldings reads the fixture file and indexes holdings by lower-cased wallet address.
// Values are always recomputed from balance and price.
func LoadHoldings(path string) (map[string][]entity.Holding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings file %s: %w", path, err)
	}

	var file HoldingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holdings file %s: %w", path, err)
	}

	byWallet := make(map[string][]entity.Holding, len(file.Wallets))
	for i, w := range file.Wallets {
		if !common.IsHexAddress(w.Address) {
			return nil, fmt.Errorf("holdings file %s: wallet #%d has invalid address %q", path, i+1, w.Address)
		}
		key := NormalizeAddress(w.Address)
		if _, dup := byWallet[key]; dup {
			return nil, fmt.Errorf("holdings file %s: duplicate wallet %s", path, w.Address)
		}

		holdings := make([]entity.Holding, 0, len(w.Holdings))
		for _, h := range w.Holdings {
			if h.Symbol == "" || h.Chain == "" {
				return nil, fmt.Errorf("holdings file %s: wallet %s has a holding without symbol or chain", path, w.Address)
			}
			if !finite(h.Balance) || !finite(h.Price) || !finite(h.Change24hPercent) {
				return nil, fmt.Errorf("holdings file %s: wallet %s has a non-finite number for %s", path, w.Address, h.Symbol)
			}
			holdings = append(holdings, h.WithRecomputedValue())
		}
		byWallet[key] = holdings
	}
	return byWallet, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NormalizeAddress lower-cases a hex address for map lookups.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
