// Package gasfee prices transactions against a network gas profile.
package gasfee

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"crypto_dashboard/internal/domain/entity"
)

var gweiPerNative = decimal.NewFromInt(1_000_000_000)

// EstimateCost computes the native and USD cost of a transaction type at a speed tier.
// native = gasLimit * price / 1e9; usd = native * NativeToUSD, or 0 if the profile
// has no conversion rate.
func EstimateCost(profile entity.GasProfile, txType entity.TxType, speed entity.SpeedTier) (entity.CostEstimate, error) {
	limit, ok := profile.GasLimitByTxType[txType]
	if !ok {
		return entity.CostEstimate{}, &entity.UnknownTransactionTypeError{TxType: txType, Network: profile.Network}
	}
	price, err := profile.PricesBySpeed.Price(speed)
	if err != nil {
		return entity.CostEstimate{}, err
	}
	if !isFinite(price) {
		return entity.CostEstimate{}, &entity.InvalidInputError{
			Field:  string(profile.Network) + ".pricesBySpeed." + string(speed),
			Reason: "must be a finite number",
		}
	}

	native := decimal.NewFromInt(int64(limit)).
		Mul(decimal.NewFromFloat(price)).
		Div(gweiPerNative)

	estimate := entity.CostEstimate{
		TxType:       txType,
		Speed:        speed,
		GasLimit:     limit,
		GasPrice:     price,
		NativeAmount: native.InexactFloat64(),
	}
	if rate := profile.NativeToUSD; rate != nil && isFinite(*rate) {
		estimate.USDAmount = native.Mul(decimal.NewFromFloat(*rate)).InexactFloat64()
	}
	return estimate, nil
}

// TierCost is the USD cost of a plain transfer at the given tier, shown beside each
// speed option.
func TierCost(profile entity.GasProfile, speed entity.SpeedTier) (float64, error) {
	est, err := EstimateCost(profile, entity.TxTransfer, speed)
	if err != nil {
		return 0, err
	}
	return est.USDAmount, nil
}

// ValidateProfile checks that tier prices are finite, non-negative and
// non-decreasing from slow to instant.
func ValidateProfile(profile entity.GasProfile) error {
	prev := 0.0
	for _, speed := range entity.AllSpeedTiers() {
		price, _ := profile.PricesBySpeed.Price(speed)
		if !isFinite(price) || price < 0 {
			return &entity.InvalidInputError{
				Field:  string(profile.Network) + ".pricesBySpeed." + string(speed),
				Reason: "must be a finite non-negative number",
			}
		}
		if price < prev {
			return &entity.InvalidInputError{
				Field:  string(profile.Network) + ".pricesBySpeed." + string(speed),
				Reason: "must not be lower than the previous tier",
			}
		}
		prev = price
	}
	if len(profile.GasLimitByTxType) == 0 {
		return &entity.InvalidInputError{
			Field:  string(profile.Network) + ".gasLimitByTxType",
			Reason: "must not be empty",
		}
	}
	return nil
}

// EstimateMatrix prices every transaction type of the profile at every tier.
// Canonical types come first, remaining types follow in lexical order.
func EstimateMatrix(profile entity.GasProfile) ([]entity.CostRow, error) {
	rows := make([]entity.CostRow, 0, len(profile.GasLimitByTxType))
	for _, txType := range orderedTxTypes(profile.GasLimitByTxType) {
		row := entity.CostRow{
			TxType:    txType,
			GasLimit:  profile.GasLimitByTxType[txType],
			Estimates: make([]entity.CostEstimate, 0, 4),
		}
		for _, speed := range entity.AllSpeedTiers() {
			est, err := EstimateCost(profile, txType, speed)
			if err != nil {
				return nil, err
			}
			row.Estimates = append(row.Estimates, est)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func orderedTxTypes(limits map[entity.TxType]uint64) []entity.TxType {
	out := make([]entity.TxType, 0, len(limits))
	seen := make(map[entity.TxType]struct{}, len(limits))
	for _, t := range entity.CanonicalTxTypes() {
		if _, ok := limits[t]; ok {
			out = append(out, t)
			seen[t] = struct{}{}
		}
	}

	var extra []entity.TxType
	for t := range limits {
		if _, ok := seen[t]; !ok {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
