package entity

// PortfolioSummary is the derived view of a wallet's holdings.
type PortfolioSummary struct {
	WalletAddress        string              `json:"walletAddress"`
	ShortAddress         string              `json:"shortAddress"`
	Holdings             []Holding           `json:"holdings"`
	TotalValueUSD        float64             `json:"totalValueUsd"`
	Change24hPercent     float64             `json:"change24hPercent"`
	ChainDistribution    []ChainDistribution `json:"chainDistribution"`
	TokenDistribution    []DistributionEntry `json:"tokenDistribution"`
	RiskAssessments      []RiskAssessment    `json:"riskAssessments"`
	DiversificationScore float64             `json:"diversificationScore"`
	Display              PortfolioDisplay    `json:"display"`
}

// PortfolioDisplay carries pre-formatted strings for the overview cards.
type PortfolioDisplay struct {
	TotalValue           string            `json:"totalValue"`
	Change24h            string            `json:"change24h"`
	DiversificationScore string            `json:"diversificationScore"`
	HoldingValues        map[string]string `json:"holdingValues"`
}
