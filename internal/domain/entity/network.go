package entity

// ZeroAddress marks the native asset in token lists.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// NetworkDefinition holds the static description of a supported EVM network.
type NetworkDefinition struct {
	ChainID                   uint64   `json:"chainId" yaml:"chainId"`
	Name                      string   `json:"name" yaml:"name"`
	Identifier                ChainID  `json:"identifier" yaml:"identifier"`
	NativeSymbol              string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeName                string   `json:"nativeName" yaml:"nativeName"`
	Decimals                  uint8    `json:"decimals" yaml:"decimals"`
	PrimaryRPCURL             string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs           []string `json:"fallbackRpcUrls" yaml:"fallbackRpcUrls"`
	BlockExplorerURL          string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	DEXScreenerChainID        string   `json:"dexScreenerChainId" yaml:"dexScreenerChainId"`
	WrappedNativeTokenAddress string   `json:"wrappedNativeTokenAddress,omitempty" yaml:"wrappedNativeTokenAddress,omitempty"`
}
