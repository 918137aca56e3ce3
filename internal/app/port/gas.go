package port

import (
	"context"
	"math/rand/v2"

	"crypto_dashboard/internal/domain/entity"
)

// GasService exposes gas profiles and cost estimates per network.
type GasService interface {
	Profiles(ctx context.Context) []entity.GasOverview
	Estimates(ctx context.Context, network string) (entity.GasEstimates, error)
	History(hours int, rng *rand.Rand) ([]entity.ComparisonSeriesPoint, error)
}
