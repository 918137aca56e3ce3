package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCoinCapClient_GetAssets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/assets", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"id":"bitcoin","rank":"1","symbol":"BTC","name":"Bitcoin","priceUsd":"43000.5","changePercent24Hr":"2.1","maxSupply":null}],"timestamp":1700000000000}`))
	}))
	defer srv.Close()

	c := NewCoinCapClient(srv.URL+"/v2", "key", time.Second, 0, zap.NewNop())
	assets, err := c.GetAssets(context.Background(), 20)

	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "BTC", assets[0].Symbol)
	assert.Equal(t, "43000.5", assets[0].PriceUsd)
	assert.Nil(t, assets[0].MaxSupply)
}

func TestAlternativeClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/global/":
			_, _ = w.Write([]byte(`{"data":{"active_cryptocurrencies":100,"active_markets":50,"bitcoin_percentage_of_market_cap":0.5,"quotes":{"USD":{"total_market_cap":1000,"total_volume_24h":10}},"last_updated":1700000000},"metadata":{"timestamp":1700000000,"error":null}}`))
		case "/fng/":
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"name":"Fear and Greed Index","data":[{"value":"40","value_classification":"Fear","timestamp":"1700000000","time_until_update":"100"}],"metadata":{"error":null}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewAlternativeClient(srv.URL, time.Second, 0, zap.NewNop())

	global, err := c.GetGlobal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, global.Data.ActiveCryptocurrencies)
	assert.Equal(t, 1000.0, global.Data.Quotes["USD"].TotalMarketCap)

	fng, err := c.GetFearAndGreed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "40", fng.Data[0].Value)
}

func TestAlternativeClient_MetadataError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[],"metadata":{"error":"Limit exceeded"}}`))
	}))
	defer srv.Close()

	c := NewAlternativeClient(srv.URL, time.Second, 0, zap.NewNop())
	_, err := c.GetFearAndGreed(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Limit exceeded")
}

func TestDEXScreenerClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tokens/v1/ethereum/0xaaa,0xbbb", r.URL.Path)
		_, _ = w.Write([]byte(`[{"chainId":"ethereum","dexId":"uniswap","pairAddress":"0xp","baseToken":{"address":"0xaaa","symbol":"AAA"},"quoteToken":{"symbol":"USDC"},"priceUsd":"1.5","liquidity":{"usd":1000}}]`))
	}))
	defer srv.Close()

	c := NewDEXScreenerClient(srv.URL, time.Second, 0, zap.NewNop(), 30)
	pairs, err := c.GetTokenPairsByAddresses(context.Background(), "ethereum", []string{"0xaaa", "0xbbb"})

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "1.5", pairs[0].PriceUsd)
	require.NotNil(t, pairs[0].Liquidity)
	assert.Equal(t, 1000.0, pairs[0].Liquidity.Usd)
}

func TestDEXScreenerClient_Validation(t *testing.T) {
	c := NewDEXScreenerClient("http://127.0.0.1:1", time.Second, 0, zap.NewNop(), 1)

	_, err := c.GetTokenPairsByAddresses(context.Background(), "ethereum", nil)
	assert.Error(t, err)

	_, err = c.GetTokenPairsByAddresses(context.Background(), "ethereum", []string{"0x1", "0x2"})
	assert.Error(t, err)
}
