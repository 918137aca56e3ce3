package port

import (
	"context"
	"math/rand/v2"

	"crypto_dashboard/internal/domain/entity"
)

// MarketService serves token listings and global market statistics.
type MarketService interface {
	Tokens(ctx context.Context) ([]entity.Token, error)
	// Overview fails as a whole if either global data or the sentiment index is unavailable.
	Overview(ctx context.Context) (entity.MarketOverview, error)
	Movers(ctx context.Context, n int) (entity.Movers, error)
	NativePriceUSD(ctx context.Context, symbol string) (float64, bool)
	Refresh(ctx context.Context) error
}

// ComparisonService builds multi-token price comparison series.
type ComparisonService interface {
	Compare(ctx context.Context, symbols []string, timeframe string, rng *rand.Rand) (entity.Comparison, error)
}
