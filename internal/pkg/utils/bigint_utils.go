package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatBigInt converts a raw on-chain amount into a decimal string with trailing zeros
// trimmed. Example: amount=1234500000000000000, decimals=18 => "1.2345".
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// BigIntToFloat converts a raw on-chain amount into token units.
func BigIntToFloat(amount *big.Int, decimals uint8) float64 {
	if amount == nil {
		return 0
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).InexactFloat64()
}
