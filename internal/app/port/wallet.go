package port

import (
	"context"

	"crypto_dashboard/internal/domain/entity"
)

// HoldingProvider resolves the holdings of a wallet. Implementations return
// entity.ErrWalletNotFound for wallets they do not know.
type HoldingProvider interface {
	Holdings(ctx context.Context, walletAddress string) ([]entity.Holding, []entity.ServiceError, error)
}
