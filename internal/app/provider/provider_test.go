package provider

import (
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/pkg/logger"
)

const testWallet = "0x0255c9D3850cacA1152AEB20425C264787661692"

func TestFixtureHoldingProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
wallets:
  - address: "0x0255c9D3850cacA1152AEB20425C264787661692"
    holdings:
      - {symbol: ETH, name: Ethereum, balance: 2, price: 1500, change24hPercent: 2.5, chain: ethereum}
`), 0o600))

	p, err := NewFixtureHoldingProvider(path, logger.Nop{})
	require.NoError(t, err)

	holdings, svcErrs, err := p.Holdings(context.Background(), "0x0255C9D3850CACA1152AEB20425C264787661692")
	require.NoError(t, err)
	assert.Empty(t, svcErrs)
	require.Len(t, holdings, 1)
	assert.Equal(t, 3000.0, holdings[0].Value)

	holdings[0].Balance = 0
	again, _, err := p.Holdings(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, 2.0, again[0].Balance)

	_, _, err = p.Holdings(context.Background(), "0x000000000000000000000000000000000000dEaD")
	assert.ErrorIs(t, err, entity.ErrWalletNotFound)
}

type countingTokenProvider struct {
	calls  int
	tokens map[string][]entity.TokenInfo
}

func (c *countingTokenProvider) GetTokensByNetwork([]entity.NetworkDefinition) (map[string][]entity.TokenInfo, error) {
	c.calls++
	return c.tokens, nil
}

func TestTokenProvider_Caches(t *testing.T) {
	inner := &countingTokenProvider{tokens: map[string][]entity.TokenInfo{"1": {{Symbol: "USDC"}}}}
	p := NewTokenProvider(inner, logger.Nop{})
	defs := []entity.NetworkDefinition{{Identifier: "polygon"}, {Identifier: "ethereum"}}

	_, err := p.GetTokensByNetwork(defs)
	require.NoError(t, err)
	_, err = p.GetTokensByNetwork([]entity.NetworkDefinition{defs[1], defs[0]})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

type staticNetworks []entity.NetworkDefinition

func (s staticNetworks) GetAllNetworkDefinitions() []entity.NetworkDefinition { return s }

func (s staticNetworks) GetNetworkDefinitionByName(id string) (entity.NetworkDefinition, bool) {
	for _, d := range s {
		if string(d.Identifier) == id {
			return d, true
		}
	}
	return entity.NetworkDefinition{}, false
}

type fakeClient struct {
	def     entity.NetworkDefinition
	results []entity.BalanceResultItem
	err     error
}

func (f *fakeClient) GetBalances(context.Context, []entity.BalanceRequestItem) ([]entity.BalanceResultItem, error) {
	return f.results, f.err
}

func (f *fakeClient) Definition() entity.NetworkDefinition { return f.def }

type fakeClients map[entity.ChainID]*fakeClient

func (f fakeClients) GetClient(nd entity.NetworkDefinition) (port.BlockchainClient, error) {
	c, ok := f[nd.Identifier]
	if !ok {
		return nil, errors.New("no rpc")
	}
	return c, nil
}

type fakePrices map[string]float64

func (f fakePrices) LoadAndCacheTokenPrices(context.Context) error { return nil }

func (f fakePrices) GetPriceUSD(_ string, addr string) (float64, bool) {
	p, ok := f[addr]
	return p, ok
}

func (f fakePrices) Pairs(string) ([]entity.DexPair, bool) { return nil, false }

type fakeMarket struct {
	tokens []entity.Token
	native map[string]float64
}

func (f *fakeMarket) Tokens(context.Context) ([]entity.Token, error) { return f.tokens, nil }

func (f *fakeMarket) Overview(context.Context) (entity.MarketOverview, error) {
	return entity.MarketOverview{}, nil
}

func (f *fakeMarket) Movers(context.Context, int) (entity.Movers, error) { return entity.Movers{}, nil }

func (f *fakeMarket) NativePriceUSD(_ context.Context, symbol string) (float64, bool) {
	p, ok := f.native[symbol]
	return p, ok
}

func (f *fakeMarket) Refresh(context.Context) error { return nil }

func TestOnchainHoldingProvider(t *testing.T) {
	eth := entity.NetworkDefinition{ChainID: 1, Name: "Ethereum", Identifier: "ethereum", NativeSymbol: "ETH", Decimals: 18, DEXScreenerChainID: "ethereum"}
	poly := entity.NetworkDefinition{ChainID: 137, Name: "Polygon", Identifier: "polygon", NativeSymbol: "POL", Decimals: 18,
		DEXScreenerChainID: "polygon", WrappedNativeTokenAddress: "0xWPOL"}
	base := entity.NetworkDefinition{ChainID: 8453, Name: "Base", Identifier: "base", NativeSymbol: "ETH", Decimals: 18}

	oneEther, _ := new(big.Int).SetString("1000000000000000000", 10)
	clients := fakeClients{
		"ethereum": {def: eth, results: []entity.BalanceResultItem{
			{TokenSymbol: "ETH", TokenName: "Ether", Decimals: 18, IsNative: true, Balance: oneEther},
			{TokenSymbol: "USDC", TokenAddress: "0xUSDC", Decimals: 6, Balance: big.NewInt(250_000_000)},
			{TokenSymbol: "UNI", TokenAddress: "0xUNI", Decimals: 18, Balance: big.NewInt(0)},
			{TokenSymbol: "AAVE", TokenAddress: "0xAAVE", Decimals: 18, Error: errors.New("execution reverted")},
		}},
		"polygon": {def: poly, results: []entity.BalanceResultItem{
			{TokenSymbol: "POL", Decimals: 18, IsNative: true, Balance: new(big.Int).Mul(oneEther, big.NewInt(10))},
		}},
	}
	market := &fakeMarket{
		tokens: []entity.Token{{Symbol: "ETH", Change24h: 3.5}, {Symbol: "USDC", Change24h: 0.01}},
		native: map[string]float64{"ETH": 2000},
	}
	prices := fakePrices{"0xUSDC": 1, "0xWPOL": 0.5}

	p := NewOnchainHoldingProvider(staticNetworks{eth, poly, base}, &countingTokenProvider{}, clients, prices, market, logger.Nop{}, 2)
	holdings, svcErrs, err := p.Holdings(context.Background(), testWallet)
	require.NoError(t, err)

	bySymbol := make(map[string]entity.Holding)
	for _, h := range holdings {
		bySymbol[h.Symbol] = h
	}
	require.Len(t, bySymbol, 3)
	assert.InDelta(t, 2000.0, bySymbol["ETH"].Value, 1e-9)
	assert.Equal(t, 3.5, bySymbol["ETH"].Change24hPercent)
	assert.Equal(t, "Ether", bySymbol["ETH"].Name)
	assert.InDelta(t, 250.0, bySymbol["USDC"].Value, 1e-9)
	assert.InDelta(t, 5.0, bySymbol["POL"].Value, 1e-9)
	assert.Equal(t, entity.ChainID("polygon"), bySymbol["POL"].Chain)

	// AAVE revert + base without client
	assert.Len(t, svcErrs, 2)
}

func TestOnchainHoldingProvider_InvalidAddress(t *testing.T) {
	p := NewOnchainHoldingProvider(staticNetworks{}, &countingTokenProvider{}, fakeClients{}, fakePrices{}, &fakeMarket{}, logger.Nop{}, 1)
	_, _, err := p.Holdings(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestOnchainHoldingProvider_AllNetworksFail(t *testing.T) {
	eth := entity.NetworkDefinition{ChainID: 1, Name: "Ethereum", Identifier: "ethereum", NativeSymbol: "ETH"}
	p := NewOnchainHoldingProvider(staticNetworks{eth}, &countingTokenProvider{}, fakeClients{}, fakePrices{}, &fakeMarket{}, logger.Nop{}, 1)
	_, svcErrs, err := p.Holdings(context.Background(), testWallet)
	assert.Error(t, err)
	assert.Len(t, svcErrs, 1)
}
