package entity

// DistributionEntry is one group of a holdings distribution.
type DistributionEntry struct {
	Key          string  `json:"key"`
	TotalValue   float64 `json:"totalValue"`
	Percentage   float64 `json:"percentage"`
	HoldingCount int     `json:"holdingCount"`
}

// ChainDistribution is the value share of a single chain within a portfolio.
type ChainDistribution struct {
	Chain                 ChainID `json:"chain"`
	TotalValue            float64 `json:"totalValue"`
	PercentageOfPortfolio float64 `json:"percentageOfPortfolio"`
}

// RiskLevel classifies how concentrated a single allocation is.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// RiskAssessment pairs a distribution entry with its concentration risk.
type RiskAssessment struct {
	Key        string    `json:"key"`
	Percentage float64   `json:"percentage"`
	Level      RiskLevel `json:"level"`
}
