package entity

// SpeedTier is one of the four transaction speed/price levels.
type SpeedTier string

const (
	SpeedSlow     SpeedTier = "slow"
	SpeedStandard SpeedTier = "standard"
	SpeedFast     SpeedTier = "fast"
	SpeedInstant  SpeedTier = "instant"
)

// AllSpeedTiers returns the tiers ordered from cheapest to most expensive.
func AllSpeedTiers() []SpeedTier {
	return []SpeedTier{SpeedSlow, SpeedStandard, SpeedFast, SpeedInstant}
}

// TxType names a transaction kind with a known gas limit.
type TxType string

const (
	TxTransfer      TxType = "transfer"
	TxERC20Transfer TxType = "erc20Transfer"
	TxDexSwap       TxType = "dexSwap"
	TxNFTMint       TxType = "nftMint"
)

// CanonicalTxTypes is the display order used by the gas tracker.
func CanonicalTxTypes() []TxType {
	return []TxType{TxTransfer, TxERC20Transfer, TxDexSwap, TxNFTMint}
}

// GasPrices holds a price per speed tier, in gwei-equivalent units.
type GasPrices struct {
	Slow     float64 `json:"slow" yaml:"slow"`
	Standard float64 `json:"standard" yaml:"standard"`
	Fast     float64 `json:"fast" yaml:"fast"`
	Instant  float64 `json:"instant" yaml:"instant"`
}

// Price returns the price for the given tier.
func (p GasPrices) Price(speed SpeedTier) (float64, error) {
	switch speed {
	case SpeedSlow:
		return p.Slow, nil
	case SpeedStandard:
		return p.Standard, nil
	case SpeedFast:
		return p.Fast, nil
	case SpeedInstant:
		return p.Instant, nil
	default:
		return 0, &UnknownSpeedTierError{Speed: speed}
	}
}

// CongestionLevel is a coarse network load indicator.
type CongestionLevel string

const (
	CongestionLow    CongestionLevel = "low"
	CongestionMedium CongestionLevel = "medium"
	CongestionHigh   CongestionLevel = "high"
)

// GasProfile describes gas pricing for one network.
type GasProfile struct {
	Network          ChainID           `json:"network" yaml:"network"`
	Name             string            `json:"name" yaml:"name"`
	PricesBySpeed    GasPrices         `json:"pricesBySpeed" yaml:"pricesBySpeed"`
	GasLimitByTxType map[TxType]uint64 `json:"gasLimitByTxType" yaml:"gasLimitByTxType"`
	NativeUnit       string            `json:"nativeUnit" yaml:"nativeUnit"`
	NativeSymbol     string            `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeToUSD      *float64          `json:"nativeToUsd,omitempty" yaml:"nativeToUsd,omitempty"`
	BaseFee          *float64          `json:"baseFee,omitempty" yaml:"baseFee,omitempty"`
	PriorityFee      *float64          `json:"priorityFee,omitempty" yaml:"priorityFee,omitempty"`
	BlockTimeSeconds float64           `json:"blockTimeSeconds" yaml:"blockTimeSeconds"`
	Congestion       CongestionLevel   `json:"congestion" yaml:"congestion"`
	Change24hPercent float64           `json:"change24hPercent" yaml:"change24hPercent"`
}

// CostEstimate is the cost of one transaction type at one speed tier.
type CostEstimate struct {
	TxType       TxType    `json:"txType"`
	Speed        SpeedTier `json:"speed"`
	GasLimit     uint64    `json:"gasLimit"`
	GasPrice     float64   `json:"gasPrice"`
	NativeAmount float64   `json:"nativeAmount"`
	USDAmount    float64   `json:"usdAmount"`
}

// CostRow groups the estimates of a transaction type across all tiers.
type CostRow struct {
	TxType    TxType         `json:"txType"`
	GasLimit  uint64         `json:"gasLimit"`
	Estimates []CostEstimate `json:"estimates"`
}

// GasOverview is a gas profile as rendered on the tracker cards.
type GasOverview struct {
	Profile      GasProfile            `json:"profile"`
	TierCostsUSD map[SpeedTier]float64 `json:"tierCostsUsd"`
	TierPrices   map[SpeedTier]string  `json:"tierPrices"`
}

// GasEstimates is the full cost matrix of one network.
type GasEstimates struct {
	Network ChainID    `json:"network"`
	Profile GasProfile `json:"profile"`
	Rows    []CostRow  `json:"rows"`
}
