package provider

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/pkg/utils"
)

const sourceOnchain = "onchain"

type onchainHoldingProvider struct {
	networkProvider port.NetworkDefinitionProvider
	tokenProvider   port.TokenProvider
	clientProvider  port.BlockchainClientProvider
	tokenPriceSvc   port.TokenPriceService
	marketSvc       port.MarketService
	logger          port.Logger
	maxConcurrent   int
}

// NewOnchainHoldingProvider reads native and tracked token balances of a wallet on every
// active network and prices them with market and DEX data.
func NewOnchainHoldingProvider(
	np port.NetworkDefinitionProvider,
	tp port.TokenProvider,
	cp port.BlockchainClientProvider,
	tps port.TokenPriceService,
	ms port.MarketService,
	l port.Logger,
	maxConcurrent int,
) port.HoldingProvider {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &onchainHoldingProvider{
		networkProvider: np,
		tokenProvider:   tp,
		clientProvider:  cp,
		tokenPriceSvc:   tps,
		marketSvc:       ms,
		logger:          l,
		maxConcurrent:   maxConcurrent,
	}
}

func (p *onchainHoldingProvider) Holdings(ctx context.Context, walletAddress string) ([]entity.Holding, []entity.ServiceError, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, nil, &entity.InvalidInputError{Field: "walletAddress", Reason: "not a hex address"}
	}
	wallet := common.HexToAddress(walletAddress).Hex()

	networks := p.networkProvider.GetAllNetworkDefinitions()
	if len(networks) == 0 {
		return nil, nil, fmt.Errorf("no active networks to query for wallet %s", wallet)
	}
	tokensByChainID, err := p.tokenProvider.GetTokensByNetwork(networks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tokens for wallet %s: %w", wallet, err)
	}

	changes := p.marketChanges(ctx)

	var (
		mu       sync.Mutex
		holdings []entity.Holding
		svcErrs  []entity.ServiceError
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrent)

	for _, nd := range networks {
		g.Go(func() error {
			netHoldings, netErrs := p.networkHoldings(gctx, wallet, nd, tokensByChainID[strconv.FormatUint(nd.ChainID, 10)], changes)
			mu.Lock()
			holdings = append(holdings, netHoldings...)
			svcErrs = append(svcErrs, netErrs...)
			mu.Unlock()
			// ошибки сетей не фатальны, они уходят в svcErrs
			return nil
		})
	}
	_ = g.Wait()

	if len(holdings) == 0 && len(svcErrs) == len(networks) {
		return nil, svcErrs, fmt.Errorf("balance lookup failed on every network for wallet %s", wallet)
	}
	return holdings, svcErrs, nil
}

func (p *onchainHoldingProvider) networkHoldings(
	ctx context.Context,
	wallet string,
	nd entity.NetworkDefinition,
	tokens []entity.TokenInfo,
	changes map[string]float64,
) ([]entity.Holding, []entity.ServiceError) {
	client, err := p.clientProvider.GetClient(nd)
	if err != nil {
		return nil, []entity.ServiceError{{
			Source: sourceOnchain, WalletAddress: wallet, NetworkName: nd.Name,
			Message: "failed to get client: " + err.Error(),
		}}
	}

	decimals := nd.Decimals
	if decimals == 0 {
		decimals = 18
	}
	requests := []entity.BalanceRequestItem{{
		ID:            fmt.Sprintf("%s-%s-NATIVE", wallet, nd.Identifier),
		Type:          entity.NativeBalanceRequest,
		WalletAddress: wallet,
		TokenSymbol:   nd.NativeSymbol,
		TokenName:     nd.NativeName,
		TokenDecimals: decimals,
	}}
	for _, t := range tokens {
		requests = append(requests, entity.BalanceRequestItem{
			ID:            fmt.Sprintf("%s-%s-%s", wallet, nd.Identifier, t.Address),
			Type:          entity.TokenBalanceRequest,
			WalletAddress: wallet,
			TokenAddress:  t.Address,
			TokenSymbol:   t.Symbol,
			TokenName:     t.Name,
			TokenDecimals: t.Decimals,
		})
	}

	results, err := client.GetBalances(ctx, requests)
	if err != nil {
		p.logger.Error("Batch balance call failed", "wallet", wallet, "network", nd.Name, "error", err)
		return nil, []entity.ServiceError{{
			Source: sourceOnchain, WalletAddress: wallet, NetworkName: nd.Name,
			Message: "batch balance fetch failed: " + err.Error(),
		}}
	}

	var (
		holdings []entity.Holding
		svcErrs  []entity.ServiceError
	)
	for _, r := range results {
		if r.Error != nil {
			svcErrs = append(svcErrs, entity.ServiceError{
				Source: sourceOnchain, WalletAddress: wallet, NetworkName: nd.Name,
				TokenSymbol: r.TokenSymbol, TokenAddress: r.TokenAddress, Message: r.Error.Error(),
			})
			continue
		}
		if r.Balance == nil || r.Balance.Sign() == 0 {
			continue
		}

		price, ok := p.price(ctx, nd, r)
		if !ok {
			svcErrs = append(svcErrs, entity.ServiceError{
				Source: "prices", WalletAddress: wallet, NetworkName: nd.Name,
				TokenSymbol: r.TokenSymbol, TokenAddress: r.TokenAddress, Message: "price not found",
			})
		}

		name := r.TokenName
		if name == "" {
			name = r.TokenSymbol
		}
		h := entity.NewHolding(r.TokenSymbol, name, utils.BigIntToFloat(r.Balance, r.Decimals), price,
			changes[strings.ToUpper(r.TokenSymbol)], nd.Identifier)
		h.TokenAddress = r.TokenAddress
		holdings = append(holdings, h)
	}
	return holdings, svcErrs
}

// price resolves the USD price of a balance. Native assets use the market feed first
// and fall back to the wrapped token's DEX price.
func (p *onchainHoldingProvider) price(ctx context.Context, nd entity.NetworkDefinition, r entity.BalanceResultItem) (float64, bool) {
	if r.IsNative {
		if price, ok := p.marketSvc.NativePriceUSD(ctx, nd.NativeSymbol); ok {
			return price, true
		}
		if nd.WrappedNativeTokenAddress == "" {
			return 0, false
		}
		return p.tokenPriceSvc.GetPriceUSD(nd.DEXScreenerChainID, nd.WrappedNativeTokenAddress)
	}
	return p.tokenPriceSvc.GetPriceUSD(nd.DEXScreenerChainID, r.TokenAddress)
}

// marketChanges maps upper-cased symbols to their 24h change. Market failures only cost
// the change column, so they are logged and ignored.
func (p *onchainHoldingProvider) marketChanges(ctx context.Context) map[string]float64 {
	changes := make(map[string]float64)
	tokens, err := p.marketSvc.Tokens(ctx)
	if err != nil {
		p.logger.Warn("Market tokens unavailable, 24h changes default to zero", "error", err)
		return changes
	}
	for _, t := range tokens {
		if !math.IsNaN(t.Change24h) {
			changes[strings.ToUpper(t.Symbol)] = t.Change24h
		}
	}
	return changes
}
