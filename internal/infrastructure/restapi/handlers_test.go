package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/infrastructure/configloader"
	"crypto_dashboard/internal/pkg/logger"
)

const testWallet = "0x0255c9D3850cacA1152AEB20425C264787661692"

type stubPortfolio struct {
	summary entity.PortfolioSummary
	svcErrs []entity.ServiceError
	err     error
	days    int
	seeded  bool
}

func (s *stubPortfolio) Summary(context.Context, string, port.SummaryOptions) (entity.PortfolioSummary, []entity.ServiceError, error) {
	return s.summary, s.svcErrs, s.err
}

func (s *stubPortfolio) History(_ context.Context, _ string, days int, rng *rand.Rand) ([]entity.ComparisonSeriesPoint, error) {
	s.days = days
	s.seeded = rng != nil
	if s.err != nil {
		return nil, s.err
	}
	return []entity.ComparisonSeriesPoint{{Timestamp: "2024-03-10", ValuesBySymbol: map[string]float64{"total": 1}}}, nil
}

type stubMarket struct {
	tokens []entity.Token
	err    error
	limit  int
}

func (s *stubMarket) Tokens(context.Context) ([]entity.Token, error) { return s.tokens, s.err }

func (s *stubMarket) Overview(context.Context) (entity.MarketOverview, error) {
	if s.err != nil {
		return entity.MarketOverview{}, s.err
	}
	return entity.MarketOverview{
		Global:    entity.GlobalMarketData{TotalMarketCapUSD: math.NaN(), BTCDominancePercent: 52.1},
		FearGreed: entity.FearAndGreedIndex{Value: 60, Classification: "Greed"},
	}, nil
}

func (s *stubMarket) Movers(_ context.Context, n int) (entity.Movers, error) {
	s.limit = n
	if n < 0 {
		return entity.Movers{}, &entity.InvalidInputError{Field: "limit", Reason: "negative"}
	}
	return entity.Movers{Gainers: s.tokens, Losers: []entity.Token{}}, s.err
}

func (s *stubMarket) NativePriceUSD(context.Context, string) (float64, bool) { return 0, false }

func (s *stubMarket) Refresh(context.Context) error { return nil }

type stubComparison struct{}

func (stubComparison) Compare(_ context.Context, symbols []string, timeframe string, _ *rand.Rand) (entity.Comparison, error) {
	if timeframe != "7d" && timeframe != "30d" {
		return entity.Comparison{}, &entity.InvalidInputError{Field: "timeframe", Reason: "bad"}
	}
	return entity.Comparison{
		Timeframe: timeframe, Days: 30,
		Tokens:  []entity.Token{{Symbol: symbols[0], Price: 1, Change24h: math.NaN()}},
		Series:  []entity.ComparisonSeriesPoint{},
		Missing: []string{"DOGE"},
	}, nil
}

type stubPrices struct{}

func (stubPrices) LoadAndCacheTokenPrices(context.Context) error { return nil }

func (stubPrices) GetPriceUSD(string, string) (float64, bool) { return 0, false }

func (stubPrices) Pairs(network string) ([]entity.DexPair, bool) {
	if network != "ethereum" {
		return nil, false
	}
	return []entity.DexPair{{BaseSymbol: "UNI", QuoteSymbol: "USDC", PriceUSD: math.NaN(), Volume24hUSD: 10}}, true
}

type stubNetworks struct{}

func (stubNetworks) GetAllNetworkDefinitions() []entity.NetworkDefinition { return nil }

func (stubNetworks) GetNetworkDefinitionByName(id string) (entity.NetworkDefinition, bool) {
	switch id {
	case "ethereum", "polygon":
		return entity.NetworkDefinition{Identifier: entity.ChainID(id)}, true
	}
	return entity.NetworkDefinition{}, false
}

type stubGas struct{}

func (stubGas) Profiles(context.Context) []entity.GasOverview {
	return []entity.GasOverview{{Profile: entity.GasProfile{Network: "ethereum"}}}
}

func (stubGas) Estimates(_ context.Context, network string) (entity.GasEstimates, error) {
	if network != "ethereum" {
		return entity.GasEstimates{}, fmt.Errorf("%w: %s", entity.ErrUnknownNetwork, network)
	}
	return entity.GasEstimates{Network: "ethereum"}, nil
}

func (stubGas) History(hours int, _ *rand.Rand) ([]entity.ComparisonSeriesPoint, error) {
	if hours < 0 {
		return nil, &entity.InvalidInputError{Field: "points", Reason: "negative"}
	}
	return make([]entity.ComparisonSeriesPoint, hours), nil
}

func newTestRouter(pf *stubPortfolio, market *stubMarket) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &configloader.Config{}
	h := Handlers{
		Portfolio: NewPortfolioHandler(pf, cfg, logger.Nop{}),
		Market:    NewMarketHandler(market, stubComparison{}, stubPrices{}, stubNetworks{}, cfg, logger.Nop{}),
		Gas:       NewGasHandler(stubGas{}, cfg),
	}
	return SetupRouter(h, cfg, zap.NewNop())
}

type envelope struct {
	Data          json.RawMessage       `json:"data"`
	ServiceErrors []entity.ServiceError `json:"service_errors"`
	StatusMessage string                `json:"status_message"`
}

func doGet(t *testing.T, r *gin.Engine, url string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubPortfolio{}, &stubMarket{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPortfolioHandler(t *testing.T) {
	pf := &stubPortfolio{
		summary: entity.PortfolioSummary{WalletAddress: testWallet, Holdings: []entity.Holding{{Symbol: "ETH"}}, TotalValueUSD: 10},
		svcErrs: []entity.ServiceError{{Source: "prices", Message: "price not found"}},
	}
	r := newTestRouter(pf, &stubMarket{})

	code, env := doGet(t, r, "/api/v1/portfolios/"+testWallet+"?sort=value")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, env.ServiceErrors, 1)
	assert.Contains(t, env.StatusMessage, "Some sources reported errors")

	var summary entity.PortfolioSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 10.0, summary.TotalValueUSD)
}

func TestPortfolioHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{&entity.InvalidInputError{Field: "walletAddress", Reason: "bad"}, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", entity.ErrWalletNotFound), http.StatusNotFound},
		{errors.New("rpc down"), http.StatusOK},
	}
	for _, tc := range cases {
		r := newTestRouter(&stubPortfolio{err: tc.err}, &stubMarket{})
		code, env := doGet(t, r, "/api/v1/portfolios/"+testWallet)
		assert.Equal(t, tc.code, code, tc.err.Error())
		if tc.code == http.StatusOK {
			require.Len(t, env.ServiceErrors, 1)
			assert.Equal(t, "portfolio", env.ServiceErrors[0].Source)
		}
	}
}

func TestPortfolioHistoryHandler(t *testing.T) {
	pf := &stubPortfolio{}
	r := newTestRouter(pf, &stubMarket{})

	code, _ := doGet(t, r, "/api/v1/portfolios/"+testWallet+"/history?days=7&seed=42")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 7, pf.days)
	assert.True(t, pf.seeded)

	code, _ = doGet(t, r, "/api/v1/portfolios/"+testWallet+"/history")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, defaultHistoryDays, pf.days)
	assert.False(t, pf.seeded)

	code, _ = doGet(t, r, "/api/v1/portfolios/"+testWallet+"/history?days=abc")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = doGet(t, r, "/api/v1/portfolios/"+testWallet+"/history?seed=-1")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHistoryHandlers_RejectOversizedRanges(t *testing.T) {
	pf := &stubPortfolio{}
	r := newTestRouter(pf, &stubMarket{})

	code, _ := doGet(t, r, fmt.Sprintf("/api/v1/portfolios/%s/history?days=%d", testWallet, maxHistoryDays))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, maxHistoryDays, pf.days)

	pf.days = 0
	code, env := doGet(t, r, fmt.Sprintf("/api/v1/portfolios/%s/history?days=%d", testWallet, maxHistoryDays+1))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.StatusMessage, "days")
	assert.Zero(t, pf.days, "service must not be called")

	code, _ = doGet(t, r, "/api/v1/gas/history?hours=1000000000&seed=1")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = doGet(t, r, fmt.Sprintf("/api/v1/gas/history?hours=%d&seed=1", maxHistoryHours))
	require.Equal(t, http.StatusOK, code)
	var points []entity.ComparisonSeriesPoint
	require.NoError(t, json.Unmarshal(env.Data, &points))
	assert.Len(t, points, maxHistoryHours)

	code, _ = doGet(t, r, fmt.Sprintf("/api/v1/markets/movers?limit=%d", maxMoversLimit+1))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMarketHandlers_NaNRendersAsNull(t *testing.T) {
	market := &stubMarket{tokens: []entity.Token{{Symbol: "BRK", Price: math.NaN(), Change24h: 1.5}}}
	r := newTestRouter(&stubPortfolio{}, market)

	code, env := doGet(t, r, "/api/v1/markets/tokens")
	require.Equal(t, http.StatusOK, code)
	var tokens []TokenView
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.Len(t, tokens, 1)
	assert.Nil(t, tokens[0].Price)
	assert.Equal(t, "N/A", tokens[0].PriceDisplay)
	assert.Equal(t, "+1.50%", tokens[0].ChangeDisplay)

	code, env = doGet(t, r, "/api/v1/markets/overview")
	require.Equal(t, http.StatusOK, code)
	var ov OverviewView
	require.NoError(t, json.Unmarshal(env.Data, &ov))
	assert.Nil(t, ov.TotalMarketCapUSD)
	assert.Equal(t, "52.10%", ov.DominanceDisplay)
}

func TestMarketHandlers_UpstreamFailure(t *testing.T) {
	r := newTestRouter(&stubPortfolio{}, &stubMarket{err: errors.New("timeout")})
	code, env := doGet(t, r, "/api/v1/markets/overview")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", string(env.Data))
	require.Len(t, env.ServiceErrors, 1)
	assert.Equal(t, "alternative", env.ServiceErrors[0].Source)
}

func TestMoversHandler(t *testing.T) {
	market := &stubMarket{tokens: []entity.Token{{Symbol: "SOL", Price: 150, Change24h: 9}}}
	r := newTestRouter(&stubPortfolio{}, market)

	code, _ := doGet(t, r, "/api/v1/markets/movers")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, defaultMoversLimit, market.limit)

	code, _ = doGet(t, r, "/api/v1/markets/movers?limit=-2")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDexPairsHandler(t *testing.T) {
	r := newTestRouter(&stubPortfolio{}, &stubMarket{})

	code, env := doGet(t, r, "/api/v1/dex/pairs")
	require.Equal(t, http.StatusOK, code)
	var pairs []DexPairView
	require.NoError(t, json.Unmarshal(env.Data, &pairs))
	require.Len(t, pairs, 1)
	assert.Equal(t, "UNI/USDC", pairs[0].Pair)
	assert.Nil(t, pairs[0].PriceUSD)

	code, env = doGet(t, r, "/api/v1/dex/pairs?network=polygon")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))

	code, _ = doGet(t, r, "/api/v1/dex/pairs?network=solana")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestComparisonHandler(t *testing.T) {
	r := newTestRouter(&stubPortfolio{}, &stubMarket{})

	code, env := doGet(t, r, "/api/v1/comparison?symbols=BTC,DOGE&seed=1")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, env.ServiceErrors, 1)
	assert.Equal(t, "DOGE", env.ServiceErrors[0].TokenSymbol)

	var view ComparisonView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "30d", view.Timeframe)
	require.Len(t, view.Tokens, 1)
	assert.Nil(t, view.Tokens[0].Change24h)

	code, _ = doGet(t, r, "/api/v1/comparison?symbols=BTC&timeframe=5y")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGasHandlers(t *testing.T) {
	r := newTestRouter(&stubPortfolio{}, &stubMarket{})

	code, _ := doGet(t, r, "/api/v1/gas")
	assert.Equal(t, http.StatusOK, code)

	code, _ = doGet(t, r, "/api/v1/gas/ethereum/estimates")
	assert.Equal(t, http.StatusOK, code)

	code, _ = doGet(t, r, "/api/v1/gas/solana/estimates")
	assert.Equal(t, http.StatusNotFound, code)

	code, env := doGet(t, r, "/api/v1/gas/history")
	require.Equal(t, http.StatusOK, code)
	var points []entity.ComparisonSeriesPoint
	require.NoError(t, json.Unmarshal(env.Data, &points))
	assert.Len(t, points, defaultGasHistoryHours)

	code, _ = doGet(t, r, "/api/v1/gas/history?hours=-1")
	assert.Equal(t, http.StatusBadRequest, code)
}
