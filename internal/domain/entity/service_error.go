package entity

// ServiceError describes a non-fatal failure reported next to partial results.
type ServiceError struct {
	Source        string `json:"source"`
	WalletAddress string `json:"walletAddress,omitempty"`
	NetworkName   string `json:"networkName,omitempty"`
	TokenSymbol   string `json:"tokenSymbol,omitempty"`
	TokenAddress  string `json:"tokenAddress,omitempty"`
	Message       string `json:"message"`
}
