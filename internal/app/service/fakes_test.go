package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"crypto_dashboard/internal/domain/entity"
	providers "crypto_dashboard/internal/entity"
)

type fakeCoinCap struct {
	mu     sync.Mutex
	calls  int
	assets []providers.CoinCapAsset
	err    error
}

func (f *fakeCoinCap) GetAssets(context.Context, int) ([]providers.CoinCapAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.assets, f.err
}

type fakeAlternative struct {
	globalErr error
	fngErr    error
}

func (f *fakeAlternative) GetGlobal(context.Context) (*providers.AlternativeGlobalResponse, error) {
	if f.globalErr != nil {
		return nil, f.globalErr
	}
	return &providers.AlternativeGlobalResponse{Data: providers.AlternativeGlobalData{
		ActiveCryptocurrencies:       9000,
		ActiveMarkets:                700,
		BitcoinPercentageOfMarketCap: 0.52,
		Quotes: map[string]providers.AlternativeGlobalQuote{
			"USD": {TotalMarketCap: 2.4e12, TotalVolume24h: 9e10},
		},
	}}, nil
}

func (f *fakeAlternative) GetFearAndGreed(context.Context) (*providers.FearAndGreedResponse, error) {
	if f.fngErr != nil {
		return nil, f.fngErr
	}
	return &providers.FearAndGreedResponse{Data: []providers.FearAndGreedEntry{
		{Value: "71", ValueClassification: "Greed", Timestamp: "1710000000"},
	}}, nil
}

type staticMarket struct {
	tokens []entity.Token
	err    error
}

func (m *staticMarket) Tokens(context.Context) ([]entity.Token, error) { return m.tokens, m.err }

func (m *staticMarket) Overview(context.Context) (entity.MarketOverview, error) {
	return entity.MarketOverview{}, m.err
}

func (m *staticMarket) Movers(context.Context, int) (entity.Movers, error) {
	return entity.Movers{}, m.err
}

func (m *staticMarket) NativePriceUSD(_ context.Context, symbol string) (float64, bool) {
	for _, t := range m.tokens {
		if strings.EqualFold(t.Symbol, symbol) {
			return t.Price, true
		}
	}
	return 0, false
}

func (m *staticMarket) Refresh(context.Context) error { return m.err }

type fakeHoldings struct {
	holdings []entity.Holding
	svcErrs  []entity.ServiceError
	err      error
}

func (f *fakeHoldings) Holdings(context.Context, string) ([]entity.Holding, []entity.ServiceError, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	out := make([]entity.Holding, len(f.holdings))
	copy(out, f.holdings)
	return out, f.svcErrs, nil
}

type staticNetworks []entity.NetworkDefinition

func (s staticNetworks) GetAllNetworkDefinitions() []entity.NetworkDefinition { return s }

func (s staticNetworks) GetNetworkDefinitionByName(id string) (entity.NetworkDefinition, bool) {
	for _, d := range s {
		if strings.EqualFold(string(d.Identifier), id) {
			return d, true
		}
	}
	return entity.NetworkDefinition{}, false
}

type staticTokens map[string][]entity.TokenInfo

func (s staticTokens) GetTokensByNetwork([]entity.NetworkDefinition) (map[string][]entity.TokenInfo, error) {
	return s, nil
}

type fakeDEX struct {
	mu       sync.Mutex
	pairs    map[string][]providers.PairData // по dexscreener chain id
	failFor  string
	requests [][]string
}

func (f *fakeDEX) GetTokenPairsByAddresses(_ context.Context, chainID string, addrs []string) ([]providers.PairData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, addrs)
	if chainID == f.failFor {
		return nil, errors.New("upstream 503")
	}
	return f.pairs[chainID], nil
}

const testWallet = "0x0255c9D3850cacA1152AEB20425C264787661692"

func sampleHoldings() []entity.Holding {
	return []entity.Holding{
		entity.NewHolding("USDC", "USD Coin", 500, 1, 0, "ethereum"),
		entity.NewHolding("ETH", "Ethereum", 1.5, 2000, 4, "ethereum"),
		entity.NewHolding("MATIC", "Polygon", 500, 1, -2, "polygon"),
	}
}
