package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/client"
	"crypto_dashboard/internal/domain/aggregation"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/infrastructure/configloader"
	"crypto_dashboard/internal/pkg/metrics"
)

const (
	marketTokensKey   = "tokens"
	marketOverviewKey = "overview"

	defaultAssetsLimit    = 20
	defaultMarketCacheTTL = 60 * time.Second
)

// CoinCap lists some natives under their pre-rebrand tickers.
var nativeSymbolAliases = map[string]string{
	"POL":   "MATIC",
	"MATIC": "POL",
}

type marketServiceImpl struct {
	coinCap     client.CoinCapClient
	alternative client.AlternativeClient
	logger      port.Logger
	assetsLimit int
	cache       *cache.Cache
	now         func() time.Time
}

// NewMarketService creates a MarketService backed by CoinCap and alternative.me.
func NewMarketService(cc client.CoinCapClient, alt client.AlternativeClient, l port.Logger, cfg *configloader.Config) port.MarketService {
	ttl := defaultMarketCacheTTL
	limit := defaultAssetsLimit
	if cfg != nil {
		if cfg.Market.CacheTTLSeconds > 0 {
			ttl = time.Duration(cfg.Market.CacheTTLSeconds) * time.Second
		}
		if cfg.CoinCap.AssetsLimit > 0 {
			limit = cfg.CoinCap.AssetsLimit
		}
	}
	return &marketServiceImpl{
		coinCap:     cc,
		alternative: alt,
		logger:      l,
		assetsLimit: limit,
		cache:       cache.New(ttl, 10*time.Minute),
		now:         time.Now,
	}
}

func (s *marketServiceImpl) Tokens(ctx context.Context) ([]entity.Token, error) {
	if v, ok := s.cache.Get(marketTokensKey); ok {
		metrics.CacheResult("market_tokens", true)
		return copyTokens(v.([]entity.Token)), nil
	}
	metrics.CacheResult("market_tokens", false)

	tokens, err := s.fetchTokens(ctx)
	if err != nil {
		return nil, err
	}
	return copyTokens(tokens), nil
}

func (s *marketServiceImpl) fetchTokens(ctx context.Context) ([]entity.Token, error) {
	assets, err := s.coinCap.GetAssets(ctx, s.assetsLimit)
	if err != nil {
		s.logger.Error("Failed to fetch market tokens", "error", err)
		return nil, fmt.Errorf("failed to fetch market tokens: %w", err)
	}
	tokens := client.MapCoinCapAssets(assets)
	s.cache.Set(marketTokensKey, tokens, cache.DefaultExpiration)
	s.logger.Debug("Market tokens cached", "count", len(tokens))
	return tokens, nil
}

func (s *marketServiceImpl) Overview(ctx context.Context) (entity.MarketOverview, error) {
	if v, ok := s.cache.Get(marketOverviewKey); ok {
		metrics.CacheResult("market_overview", true)
		return v.(entity.MarketOverview), nil
	}
	metrics.CacheResult("market_overview", false)
	return s.fetchOverview(ctx)
}

// fetchOverview requests global data and the sentiment index in parallel. Either failure
// fails the whole overview.
func (s *marketServiceImpl) fetchOverview(ctx context.Context) (entity.MarketOverview, error) {
	var overview entity.MarketOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.alternative.GetGlobal(gctx)
		if err != nil {
			return err
		}
		overview.Global = client.MapAlternativeGlobal(*resp)
		return nil
	})
	g.Go(func() error {
		resp, err := s.alternative.GetFearAndGreed(gctx)
		if err != nil {
			return err
		}
		idx, ok := client.MapFearAndGreed(*resp)
		if !ok {
			return fmt.Errorf("fear and greed index is empty")
		}
		overview.FearGreed = idx
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to fetch market overview", "error", err)
		return entity.MarketOverview{}, fmt.Errorf("failed to fetch market overview: %w", err)
	}

	overview.RetrievedAt = s.now().UTC()
	s.cache.Set(marketOverviewKey, overview, cache.DefaultExpiration)
	return overview, nil
}

func (s *marketServiceImpl) Movers(ctx context.Context, n int) (entity.Movers, error) {
	if n < 0 {
		return entity.Movers{}, &entity.InvalidInputError{Field: "limit", Reason: "must not be negative"}
	}
	tokens, err := s.Tokens(ctx)
	if err != nil {
		return entity.Movers{}, err
	}
	return aggregation.TopMovers(tokens, n), nil
}

// NativePriceUSD looks a native asset up in the market listing by ticker.
func (s *marketServiceImpl) NativePriceUSD(ctx context.Context, symbol string) (float64, bool) {
	tokens, err := s.Tokens(ctx)
	if err != nil {
		return 0, false
	}
	candidates := []string{strings.ToUpper(symbol)}
	if alias, ok := nativeSymbolAliases[candidates[0]]; ok {
		candidates = append(candidates, alias)
	}
	for _, c := range candidates {
		for _, t := range tokens {
			if strings.EqualFold(t.Symbol, c) && t.Price > 0 && !math.IsInf(t.Price, 0) {
				return t.Price, true
			}
		}
	}
	return 0, false
}

// Refresh refetches tokens and the overview regardless of cache state. Data that fails
// to refresh stays cached until it expires.
func (s *marketServiceImpl) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := s.fetchTokens(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.fetchOverview(ctx)
		return err
	})
	return g.Wait()
}

func copyTokens(tokens []entity.Token) []entity.Token {
	out := make([]entity.Token, len(tokens))
	copy(out, tokens)
	return out
}
