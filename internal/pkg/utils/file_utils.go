package utils

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"crypto_dashboard/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadTokensFromJSON читает JSON-файл со списком токенов.
func LoadTokensFromJSON(filePath string) ([]entity.TokenInfo, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read token file %s: %w", filePath, err)
	}

	var tokens []entity.TokenInfo
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", filePath, err)
	}
	return tokens, nil
}
