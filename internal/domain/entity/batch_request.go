package entity

import "math/big"

// BalanceRequestType defines the type of balance request.
type BalanceRequestType int

const (
	// NativeBalanceRequest requests the native balance of a wallet.
	NativeBalanceRequest BalanceRequestType = iota
	// TokenBalanceRequest requests the balance of an ERC-20 token for a wallet.
	TokenBalanceRequest
)

// BalanceRequestItem is a single item of an on-chain balance batch.
type BalanceRequestItem struct {
	ID            string
	Type          BalanceRequestType
	WalletAddress string
	TokenAddress  string
	TokenSymbol   string
	TokenName     string
	TokenDecimals uint8
}

// BalanceResultItem is the answer to one BalanceRequestItem.
type BalanceResultItem struct {
	RequestID        string
	WalletAddress    string
	Network          ChainID
	TokenAddress     string
	TokenSymbol      string
	TokenName        string
	Decimals         uint8
	IsNative         bool
	Balance          *big.Int
	FormattedBalance string
	Error            error
}
