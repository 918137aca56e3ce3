package restapi

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/infrastructure/configloader"
)

const (
	defaultMoversLimit = 3
	defaultTimeframe   = "30d"
	defaultDexNetwork  = "ethereum"
)

// MarketHandler serves market listings, movers, DEX pairs and comparisons.
type MarketHandler struct {
	market      port.MarketService
	comparison  port.ComparisonService
	prices      port.TokenPriceService
	networks    port.NetworkDefinitionProvider
	moversLimit int
	logger      port.Logger
}

// NewMarketHandler creates a MarketHandler.
func NewMarketHandler(
	ms port.MarketService,
	cs port.ComparisonService,
	tps port.TokenPriceService,
	np port.NetworkDefinitionProvider,
	cfg *configloader.Config,
	logger port.Logger,
) *MarketHandler {
	limit := defaultMoversLimit
	if cfg != nil && cfg.Market.MoversLimit > 0 {
		limit = cfg.Market.MoversLimit
	}
	return &MarketHandler{market: ms, comparison: cs, prices: tps, networks: np, moversLimit: limit, logger: logger}
}

// GetTokensHandler GET /api/v1/markets/tokens
func (h *MarketHandler) GetTokensHandler(c *gin.Context) {
	tokens, err := h.market.Tokens(c.Request.Context())
	if err != nil {
		respondError(c, "coincap", err)
		return
	}
	respondOK(c, newTokenViews(tokens), nil, "Tokens retrieved successfully.")
}

// GetOverviewHandler GET /api/v1/markets/overview
func (h *MarketHandler) GetOverviewHandler(c *gin.Context) {
	overview, err := h.market.Overview(c.Request.Context())
	if err != nil {
		respondError(c, "alternative", err)
		return
	}
	respondOK(c, newOverviewView(overview), nil, "Market overview retrieved successfully.")
}

// GetMoversHandler GET /api/v1/markets/movers?limit=3
func (h *MarketHandler) GetMoversHandler(c *gin.Context) {
	limit, ok := intQuery(c, "limit", h.moversLimit, maxMoversLimit)
	if !ok {
		return
	}
	movers, err := h.market.Movers(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "coincap", err)
		return
	}
	respondOK(c, MoversView{Gainers: newTokenViews(movers.Gainers), Losers: newTokenViews(movers.Losers)},
		nil, "Top movers retrieved successfully.")
}

// GetDexPairsHandler GET /api/v1/dex/pairs?network=ethereum
func (h *MarketHandler) GetDexPairsHandler(c *gin.Context) {
	network := strings.ToLower(c.DefaultQuery("network", defaultDexNetwork))
	nd, ok := h.networks.GetNetworkDefinitionByName(network)
	if !ok {
		respondError(c, "dexscreener", fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, network))
		return
	}
	pairs, ok := h.prices.Pairs(string(nd.Identifier))
	if !ok {
		respondOK(c, []DexPairView{}, nil, "No pairs loaded for this network yet.")
		return
	}
	respondOK(c, newDexPairViews(pairs), nil, "DEX pairs retrieved successfully.")
}

// GetComparisonHandler GET /api/v1/comparison?symbols=BTC,ETH&timeframe=30d&seed=N
func (h *MarketHandler) GetComparisonHandler(c *gin.Context) {
	rng, ok := seededRand(c)
	if !ok {
		return
	}
	symbols := strings.Split(c.Query("symbols"), ",")
	timeframe := c.DefaultQuery("timeframe", defaultTimeframe)

	cmp, err := h.comparison.Compare(c.Request.Context(), symbols, timeframe, rng)
	if err != nil {
		respondError(c, "coincap", err)
		return
	}
	var svcErrs []entity.ServiceError
	for _, sym := range cmp.Missing {
		svcErrs = append(svcErrs, entity.ServiceError{Source: "coincap", TokenSymbol: sym, Message: "no market price"})
	}
	respondOK(c, newComparisonView(cmp), svcErrs, "Comparison generated.")
}
