package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"crypto_dashboard/internal/entity"
	"crypto_dashboard/internal/infrastructure/httpclient"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DEXScreenerClient defines the interface for interacting with the DEX Screener API.
type DEXScreenerClient interface {
	GetTokenPairsByAddresses(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) ([]entity.PairData, error)
}

type dexScreenerClientImpl struct {
	http                *httpclient.JSONClient
	baseURL             string
	logger              *zap.Logger
	maxTokensPerRequest int
}

// NewDEXScreenerClient creates a DEXScreener client limited to rps requests per second.
func NewDEXScreenerClient(baseURL string, timeout time.Duration, rps float64, logger *zap.Logger, maxTokensPerRequest int) DEXScreenerClient {
	logger = logger.Named("DEXScreenerClient")
	return &dexScreenerClientImpl{
		http: httpclient.NewJSONClient(httpclient.Options{
			Source:            "dexscreener",
			Timeout:           timeout,
			RequestsPerSecond: rps,
		}, logger),
		baseURL:             strings.TrimRight(baseURL, "/"),
		logger:              logger,
		maxTokensPerRequest: maxTokensPerRequest,
	}
}

// GetTokenPairsByAddresses returns all pairs whose base or quote is one of tokenAddresses.
func (c *dexScreenerClientImpl) GetTokenPairsByAddresses(ctx context.Context, dexscreenerChainID string, tokenAddresses []string) ([]entity.PairData, error) {
	if len(tokenAddresses) == 0 {
		return nil, fmt.Errorf("tokenAddresses cannot be empty")
	}
	if c.maxTokensPerRequest > 0 && len(tokenAddresses) > c.maxTokensPerRequest {
		return nil, fmt.Errorf("number of token addresses (%d) exceeds max tokens per request (%d)", len(tokenAddresses), c.maxTokensPerRequest)
	}

	requestURL := fmt.Sprintf("%s/tokens/v1/%s/%s", c.baseURL, dexscreenerChainID, strings.Join(tokenAddresses, ","))
	rawBody, err := c.http.Get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	// Эндпоинт отдает массив, но старые версии API возвращали объект {"pairs": [...]}.
	var wrapped entity.DEXTokenPairsResponse
	if err := json.Unmarshal(rawBody, &wrapped); err == nil && wrapped.Pairs != nil {
		return wrapped.Pairs, nil
	}

	var pairs []entity.PairData
	if err := json.Unmarshal(rawBody, &pairs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DEX Screener response from %s: %w", requestURL, err)
	}
	if len(pairs) == 0 {
		c.logger.Warn("DEXScreener returned 200 OK with an empty array of pairs",
			zap.String("dexscreenerChainID", dexscreenerChainID),
			zap.Int("requestedTokens", len(tokenAddresses)))
	}
	return pairs, nil
}
