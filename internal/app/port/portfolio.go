package port

import (
	"context"
	"math/rand/v2"

	"crypto_dashboard/internal/domain/entity"
)

// SummaryOptions tunes PortfolioService.Summary.
type SummaryOptions struct {
	SortByValue bool
}

// PortfolioService derives display-ready portfolio views for a wallet.
type PortfolioService interface {
	// Summary returns the derived portfolio together with non-fatal service errors.
	Summary(ctx context.Context, walletAddress string, opts SummaryOptions) (entity.PortfolioSummary, []entity.ServiceError, error)
	// History synthesizes a value series for the wallet over the last days.
	History(ctx context.Context, walletAddress string, days int, rng *rand.Rand) ([]entity.ComparisonSeriesPoint, error)
}
