package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/client"
	"crypto_dashboard/internal/domain/entity"
	dex_types "crypto_dashboard/internal/entity"
	"crypto_dashboard/internal/infrastructure/configloader"
	"crypto_dashboard/internal/pkg/metrics"
	"crypto_dashboard/internal/pkg/utils"
)

const (
	stablecoinUSDCSymbol = "USDC"
	stablecoinUSDTSymbol = "USDT"
	stablecoinDAISymbol  = "DAI"

	defaultPriceTTL        = 10 * time.Minute
	defaultPriceBatchSize  = 30
	defaultConcurrentLimit = 5
)

var stablecoinSymbols = map[string]struct{}{
	stablecoinUSDCSymbol: {},
	stablecoinUSDTSymbol: {},
	stablecoinDAISymbol:  {},
}

// tokenPriceServiceImpl implements port.TokenPriceService
type tokenPriceServiceImpl struct {
	tokenProvider     port.TokenProvider
	networkProvider   port.NetworkDefinitionProvider
	dexscreenerClient client.DEXScreenerClient
	logger            port.Logger
	cfg               *configloader.Config

	prices *cache.Cache // ключ "<dexChainID>:<address lower>"

	pairsMu sync.RWMutex
	pairs   map[string][]entity.DexPair // по идентификатору сети
}

// NewTokenPriceService creates a new instance of tokenPriceServiceImpl.
func NewTokenPriceService(
	tp port.TokenProvider,
	np port.NetworkDefinitionProvider,
	dsc client.DEXScreenerClient,
	l port.Logger,
	config *configloader.Config,
) port.TokenPriceService {
	ttl := defaultPriceTTL
	if config != nil && config.TokenPriceSvc.CacheTTLMinutes > 0 {
		ttl = time.Duration(config.TokenPriceSvc.CacheTTLMinutes) * time.Minute
	}
	s := &tokenPriceServiceImpl{
		tokenProvider:     tp,
		networkProvider:   np,
		dexscreenerClient: dsc,
		logger:            l,
		cfg:               config,
		prices:            cache.New(ttl, 10*time.Minute),
		pairs:             make(map[string][]entity.DexPair),
	}
	l.Info("TokenPriceService успешно инициализирован.", "price_ttl", ttl.String())
	return s
}

func priceKey(dexScreenerChainID, tokenAddress string) string {
	return dexScreenerChainID + ":" + strings.ToLower(tokenAddress)
}

// LoadAndCacheTokenPrices implements port.TokenPriceService.
func (s *tokenPriceServiceImpl) LoadAndCacheTokenPrices(ctx context.Context) error {
	s.logger.Info("Starting to load and cache token prices using DEXScreener...")

	activeNetworks := s.networkProvider.GetAllNetworkDefinitions()
	if len(activeNetworks) == 0 {
		s.logger.Warn("No active networks found by NetworkDefinitionProvider. Cannot fetch token prices.")
		return nil
	}

	allTokensByChainID, err := s.tokenProvider.GetTokensByNetwork(activeNetworks)
	if err != nil {
		s.logger.Error("Failed to get all tokens by network from tokenProvider", "error", err)
		return fmt.Errorf("failed to get tokens for price fetching: %w", err)
	}

	var (
		countersMu            sync.Mutex
		processedSuccessfully int
		failedOrMissing       int
		failedBatches         int
		totalBatches          int
	)
	pairsByNetwork := make(map[string][]dex_types.PairData)

	concurrencyLimit := defaultConcurrentLimit
	batchSize := defaultPriceBatchSize
	if s.cfg != nil {
		if s.cfg.Performance.MaxConcurrentRoutines > 0 {
			concurrencyLimit = s.cfg.Performance.MaxConcurrentRoutines
		}
		if s.cfg.TokenPriceSvc.MaxTokensPerBatchRequest > 0 {
			batchSize = s.cfg.TokenPriceSvc.MaxTokensPerBatchRequest
		}
	}
	sem := make(chan struct{}, concurrencyLimit)
	var wg sync.WaitGroup

	for _, netDef := range activeNetworks {
		dexID := netDef.DEXScreenerChainID
		if dexID == "" {
			s.logger.Warn("DEXScreenerChainID not defined for network, skipping price fetch for its tokens",
				"network_name", netDef.Name, "network_identifier", netDef.Identifier)
			continue
		}

		// копия: срез принадлежит кэшу tokenProvider
		tokens := slices.Clone(allTokensByChainID[strconv.FormatUint(netDef.ChainID, 10)])
		if netDef.WrappedNativeTokenAddress != "" {
			tokens = append(tokens, entity.TokenInfo{
				ChainID: netDef.ChainID,
				Address: netDef.WrappedNativeTokenAddress,
				Symbol:  "W" + netDef.NativeSymbol,
			})
		}
		if len(tokens) == 0 {
			s.logger.Debug("No tokens to fetch prices for", "network_name", netDef.Name, "dex_screener_id", dexID)
			continue
		}

		s.logger.Info("Fetching prices for DEXScreener chain", "dexScreenerID", dexID, "tokenCount", len(tokens))

		for _, batch := range utils.Batch(tokens, batchSize) {
			wg.Add(1)
			totalBatches++
			sem <- struct{}{}

			go func(batch []entity.TokenInfo, dexscreenerID string, networkIdentifier string) {
				defer wg.Done()
				defer func() { <-sem }()

				tokenAddresses := make([]string, len(batch))
				for i, token := range batch {
					tokenAddresses[i] = token.Address
				}

				pairs, err := s.dexscreenerClient.GetTokenPairsByAddresses(ctx, dexscreenerID, tokenAddresses)
				if err != nil {
					s.logger.Error("Failed to get token pairs from DEXScreener",
						"dexScreenerID", dexscreenerID,
						"token_addresses_count", len(tokenAddresses),
						"error", err)
					countersMu.Lock()
					failedOrMissing += len(batch)
					failedBatches++
					countersMu.Unlock()
					return
				}

				found, missing := 0, 0
				for _, tokenInfo := range batch {
					priceStr := s.selectBestPriceFromPairs(pairs, tokenInfo.Address)
					price, errConv := strconv.ParseFloat(priceStr, 64)
					if priceStr == "" || errConv != nil || price <= 0 {
						s.logger.Debug("No usable DEXScreener price for token",
							"dexScreenerID", dexscreenerID, "tokenAddress", tokenInfo.Address, "price_string", priceStr)
						missing++
						continue
					}
					s.prices.Set(priceKey(dexscreenerID, tokenInfo.Address), price, cache.DefaultExpiration)
					found++
				}

				countersMu.Lock()
				processedSuccessfully += found
				failedOrMissing += missing
				pairsByNetwork[networkIdentifier] = append(pairsByNetwork[networkIdentifier], pairs...)
				countersMu.Unlock()
			}(batch, dexID, string(netDef.Identifier))
		}
	}

	wg.Wait()

	s.pairsMu.Lock()
	for network, pairs := range pairsByNetwork {
		mapped := client.MapDexPairs(network, dedupePairs(pairs))
		sort.SliceStable(mapped, func(i, j int) bool { return mapped[i].Volume24hUSD > mapped[j].Volume24hUSD })
		s.pairs[network] = mapped
	}
	s.pairsMu.Unlock()

	s.logger.Info("Finished loading and caching token prices from DEXScreener.",
		"processedSuccessfully", processedSuccessfully,
		"failedOrMissing", failedOrMissing,
		"networksWithPairs", len(pairsByNetwork))

	if totalBatches > 0 && failedBatches == totalBatches {
		return fmt.Errorf("all %d DEXScreener batches failed", totalBatches)
	}
	return nil
}

// dedupePairs drops pairs returned by more than one batch.
func dedupePairs(pairs []dex_types.PairData) []dex_types.PairData {
	seen := make(map[string]struct{}, len(pairs))
	out := make([]dex_types.PairData, 0, len(pairs))
	for _, p := range pairs {
		key := strings.ToLower(p.PairAddress)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// selectBestPriceFromPairs выбирает цену: сначала пара к стейблкоину, затем пара с наибольшей ликвидностью.
func (s *tokenPriceServiceImpl) selectBestPriceFromPairs(pairs []dex_types.PairData, baseTokenAddress string) string {
	if len(pairs) == 0 {
		return ""
	}

	var bestOverallPair *dex_types.PairData
	var bestStablecoinPair *dex_types.PairData

	for i := range pairs {
		pair := &pairs[i]
		if !strings.EqualFold(pair.BaseToken.Address, baseTokenAddress) {
			continue
		}
		if pair.PriceUsd == "" || pair.PriceUsd == "0" {
			continue
		}

		_, isStablecoin := stablecoinSymbols[strings.ToUpper(pair.QuoteToken.Symbol)]

		if isStablecoin {
			if bestStablecoinPair == nil || utils.LiquidityUSD(pair.Liquidity) > utils.LiquidityUSD(bestStablecoinPair.Liquidity) {
				bestStablecoinPair = pair
			}
		}
		if bestOverallPair == nil || utils.LiquidityUSD(pair.Liquidity) > utils.LiquidityUSD(bestOverallPair.Liquidity) {
			bestOverallPair = pair
		}
	}

	if bestStablecoinPair != nil {
		s.logger.Debug("Selected best price from stablecoin pair",
			"baseTokenAddress", baseTokenAddress,
			"pairAddress", bestStablecoinPair.PairAddress,
			"priceUsd", bestStablecoinPair.PriceUsd,
			"liquidityUsd", utils.LiquidityUSD(bestStablecoinPair.Liquidity),
			"quoteToken", bestStablecoinPair.QuoteToken.Symbol)
		return bestStablecoinPair.PriceUsd
	}

	if bestOverallPair != nil {
		s.logger.Debug("Selected best price from overall highest liquidity pair",
			"baseTokenAddress", baseTokenAddress,
			"pairAddress", bestOverallPair.PairAddress,
			"priceUsd", bestOverallPair.PriceUsd,
			"liquidityUsd", utils.LiquidityUSD(bestOverallPair.Liquidity),
			"quoteToken", bestOverallPair.QuoteToken.Symbol)
		return bestOverallPair.PriceUsd
	}

	return ""
}

// GetPriceUSD реализует port.TokenPriceService и возвращает цену токена из кеша.
func (s *tokenPriceServiceImpl) GetPriceUSD(dexScreenerChainID string, tokenAddress string) (float64, bool) {
	v, ok := s.prices.Get(priceKey(dexScreenerChainID, tokenAddress))
	metrics.CacheResult("token_prices", ok)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

// Pairs returns the pairs collected for a network during the last load, ordered by 24h volume.
func (s *tokenPriceServiceImpl) Pairs(network string) ([]entity.DexPair, bool) {
	s.pairsMu.RLock()
	defer s.pairsMu.RUnlock()

	pairs, ok := s.pairs[strings.ToLower(network)]
	if !ok {
		return nil, false
	}
	out := make([]entity.DexPair, len(pairs))
	copy(out, pairs)
	return out, true
}
