package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/entity"
	"crypto_dashboard/internal/infrastructure/httpclient"
)

// AlternativeClient reads global market data and the Fear & Greed index from alternative.me.
type AlternativeClient interface {
	GetGlobal(ctx context.Context) (*entity.AlternativeGlobalResponse, error)
	GetFearAndGreed(ctx context.Context) (*entity.FearAndGreedResponse, error)
}

type alternativeClientImpl struct {
	http    *httpclient.JSONClient
	baseURL string
}

// NewAlternativeClient creates an alternative.me client.
func NewAlternativeClient(baseURL string, timeout time.Duration, rps float64, logger *zap.Logger) AlternativeClient {
	return &alternativeClientImpl{
		http: httpclient.NewJSONClient(httpclient.Options{
			Source:            "alternative",
			Timeout:           timeout,
			RequestsPerSecond: rps,
		}, logger.Named("AlternativeClient")),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *alternativeClientImpl) GetGlobal(ctx context.Context) (*entity.AlternativeGlobalResponse, error) {
	var resp entity.AlternativeGlobalResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/v2/global/", &resp); err != nil {
		return nil, fmt.Errorf("alternative.me global: %w", err)
	}
	if err := metadataError(resp.Metadata); err != nil {
		return nil, fmt.Errorf("alternative.me global: %w", err)
	}
	return &resp, nil
}

func (c *alternativeClientImpl) GetFearAndGreed(ctx context.Context) (*entity.FearAndGreedResponse, error) {
	var resp entity.FearAndGreedResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/fng/?limit=1", &resp); err != nil {
		return nil, fmt.Errorf("alternative.me fear and greed: %w", err)
	}
	if err := metadataError(resp.Metadata); err != nil {
		return nil, fmt.Errorf("alternative.me fear and greed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("alternative.me fear and greed: empty data")
	}
	return &resp, nil
}

// metadataError surfaces errors reported inside a 200 response.
func metadataError(md entity.AlternativeMetadata) error {
	if md.Error != nil && *md.Error != "" {
		return errors.New(*md.Error)
	}
	return nil
}
