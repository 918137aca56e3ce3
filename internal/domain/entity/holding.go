package entity

// ChainID identifies a blockchain network (e.g. "ethereum", "polygon").
type ChainID string

// Holding is a single asset position in a portfolio.
type Holding struct {
	Symbol           string  `json:"symbol" yaml:"symbol"`
	Name             string  `json:"name" yaml:"name"`
	Balance          float64 `json:"balance" yaml:"balance"`
	Price            float64 `json:"price" yaml:"price"`
	Value            float64 `json:"value" yaml:"-"`
	Change24hPercent float64 `json:"change24hPercent" yaml:"change24hPercent"`
	Chain            ChainID `json:"chain" yaml:"chain"`
	TokenAddress     string  `json:"tokenAddress,omitempty" yaml:"tokenAddress,omitempty"`
}

// NewHolding builds a Holding with Value derived from balance and price.
func NewHolding(symbol, name string, balance, price, change24h float64, chain ChainID) Holding {
	h := Holding{
		Symbol:           symbol,
		Name:             name,
		Balance:          balance,
		Price:            price,
		Change24hPercent: change24h,
		Chain:            chain,
	}
	h.Value = h.MarketValue()
	return h
}

// MarketValue recomputes balance*price. The stored Value field is never trusted.
func (h Holding) MarketValue() float64 {
	return h.Balance * h.Price
}

// WithRecomputedValue returns a copy of h whose Value matches balance*price.
func (h Holding) WithRecomputedValue() Holding {
	h.Value = h.MarketValue()
	return h
}
