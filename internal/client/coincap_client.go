package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/entity"
	"crypto_dashboard/internal/infrastructure/httpclient"
)

// CoinCapClient fetches the top assets by market cap.
type CoinCapClient interface {
	GetAssets(ctx context.Context, limit int) ([]entity.CoinCapAsset, error)
}

type coinCapClientImpl struct {
	http    *httpclient.JSONClient
	baseURL string
}

// NewCoinCapClient creates a CoinCap client. apiKey may be empty.
func NewCoinCapClient(baseURL, apiKey string, timeout time.Duration, rps float64, logger *zap.Logger) CoinCapClient {
	headers := map[string]string{}
	if apiKey != "" {
		headers["Authorization"] = "Bearer " + apiKey
	}
	return &coinCapClientImpl{
		http: httpclient.NewJSONClient(httpclient.Options{
			Source:            "coincap",
			Timeout:           timeout,
			RequestsPerSecond: rps,
			Headers:           headers,
		}, logger.Named("CoinCapClient")),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *coinCapClientImpl) GetAssets(ctx context.Context, limit int) ([]entity.CoinCapAsset, error) {
	var resp entity.CoinCapAssetsResponse
	if err := c.http.GetJSON(ctx, fmt.Sprintf("%s/assets?limit=%d", c.baseURL, limit), &resp); err != nil {
		return nil, fmt.Errorf("coincap assets: %w", err)
	}
	return resp.Data, nil
}
