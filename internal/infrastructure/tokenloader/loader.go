package tokenloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/pkg/utils"
)

// TokenFileLoader implements port.TokenProvider over a directory of <network>.json files.
type TokenFileLoader struct {
	tokenDirPath string
	logger       port.Logger
}

// NewTokenLoader creates a new TokenFileLoader.
func NewTokenLoader(tokenDirPath string, logger port.Logger) *TokenFileLoader {
	return &TokenFileLoader{
		tokenDirPath: tokenDirPath,
		logger:       logger,
	}
}

// GetTokensByNetwork reads the token list of every active network and drops entries with a
// mismatched chain ID or a malformed address. Addresses are returned in checksum form.
// Ключ результата - ChainID сети в виде строки.
func (l *TokenFileLoader) GetTokensByNetwork(activeNetworkDefs []entity.NetworkDefinition) (map[string][]entity.TokenInfo, error) {
	tokensByChainID := make(map[string][]entity.TokenInfo)

	files, err := os.ReadDir(l.tokenDirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token directory %s: %w", l.tokenDirPath, err)
	}

	activeNetworksMap := make(map[string]entity.NetworkDefinition, len(activeNetworkDefs))
	for _, netDef := range activeNetworkDefs {
		activeNetworksMap[string(netDef.Identifier)] = netDef
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".json") {
			continue
		}

		identifier := strings.ToLower(strings.TrimSuffix(file.Name(), filepath.Ext(file.Name())))
		networkDef, isActive := activeNetworksMap[identifier]
		if !isActive {
			continue
		}

		filePath := filepath.Join(l.tokenDirPath, file.Name())
		tokensInFile, err := utils.LoadTokensFromJSON(filePath)
		if err != nil {
			// битый файл не должен ронять загрузку остальных сетей
			l.logger.Warn("Failed to load token file, skipping", "path", filePath, "error", err)
			continue
		}

		valid := make([]entity.TokenInfo, 0, len(tokensInFile))
		for _, token := range tokensInFile {
			if token.ChainID != networkDef.ChainID {
				l.logger.Warn("Token has mismatched ChainID, skipping",
					"file", filePath, "token_symbol", token.Symbol,
					"token_chain_id", token.ChainID, "expected_chain_id", networkDef.ChainID)
				continue
			}
			if !common.IsHexAddress(token.Address) {
				l.logger.Warn("Token has malformed address, skipping", "file", filePath, "token_symbol", token.Symbol, "address", token.Address)
				continue
			}
			token.Address = common.HexToAddress(token.Address).Hex()
			valid = append(valid, token)
		}

		if len(valid) > 0 {
			key := strconv.FormatUint(networkDef.ChainID, 10)
			tokensByChainID[key] = append(tokensByChainID[key], valid...)
			l.logger.Debug("Loaded tokens for network", "network", networkDef.Identifier, "count", len(valid))
		}
	}

	return tokensByChainID, nil
}
