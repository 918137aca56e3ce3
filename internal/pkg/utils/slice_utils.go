package utils

import (
	dexscreener_entity "crypto_dashboard/internal/entity"
)

// Batch разбивает срез на батчи размером не больше batchSize.
func Batch[T any](items []T, batchSize int) [][]T {
	if len(items) == 0 {
		return [][]T{}
	}
	if batchSize <= 0 {
		batchSize = len(items)
	}

	batches := make([][]T, 0, (len(items)+batchSize-1)/batchSize)
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}

// LiquidityUSD безопасно разыменовывает ликвидность пары.
func LiquidityUSD(liquidity *dexscreener_entity.DEXLiquidity) float64 {
	if liquidity == nil {
		return 0.0
	}
	return liquidity.Usd
}
