package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto_dashboard/internal/domain/entity"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
}

func TestGenerate_SevenDays(t *testing.T) {
	points, err := Generate(map[string]float64{"BTC": 100}, 7, map[string]float64{"BTC": 10},
		Options{Rand: NewRand(1), Now: fixedNow})
	require.NoError(t, err)
	require.Len(t, points, 7)

	assert.Equal(t, "2024-03-04", points[0].Timestamp)
	assert.Equal(t, "2024-03-10", points[6].Timestamp)

	prev, err := time.Parse(dateLayout, points[0].Timestamp)
	require.NoError(t, err)
	for i, p := range points {
		v, ok := p.ValuesBySymbol["BTC"]
		require.True(t, ok)
		assert.Greater(t, v, 0.0)

		trend := 10.0 / 100 * float64(i) / 7
		assert.InDelta(t, 100*(1+trend), v, 100*DefaultDailyNoise+1e-9)

		if i > 0 {
			ts, err := time.Parse(dateLayout, p.Timestamp)
			require.NoError(t, err)
			assert.Equal(t, 24*time.Hour, ts.Sub(prev))
			prev = ts
		}
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	base := map[string]float64{"BTC": 43000, "ETH": 2300, "SOL": 98}
	trend := map[string]float64{"BTC": 2, "ETH": -1}

	a, err := Generate(base, 30, trend, Options{Rand: NewRand(42), Now: fixedNow})
	require.NoError(t, err)
	b, err := Generate(base, 30, trend, Options{Rand: NewRand(42), Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Generate(base, 30, trend, Options{Rand: NewRand(43), Now: fixedNow})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_ZeroDays(t *testing.T) {
	points, err := Generate(map[string]float64{"BTC": 100}, 0, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestGenerate_InvalidInput(t *testing.T) {
	_, err := Generate(map[string]float64{"BTC": 100}, -1, nil, Options{})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = Generate(map[string]float64{"BTC": -5}, 7, nil, Options{})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = Generate(map[string]float64{"BTC": math.NaN()}, 7, nil, Options{})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestGenerate_FloorKeepsValuesPositive(t *testing.T) {
	points, err := Generate(map[string]float64{"DUST": 0}, 5, map[string]float64{"DUST": -500},
		Options{Rand: NewRand(7), Now: fixedNow})
	require.NoError(t, err)
	for _, p := range points {
		assert.Equal(t, DefaultDailyFloor, p.ValuesBySymbol["DUST"])
	}
}

func TestDaily_StopsEarly(t *testing.T) {
	seq, err := Daily(map[string]float64{"ETH": 10}, 365, nil, Options{Rand: NewRand(3), Now: fixedNow})
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestIntraday(t *testing.T) {
	base := map[string]float64{"ethereum": 35, "arbitrum": 0.2}
	points, err := Intraday(base, 24, time.Hour, Options{Rand: NewRand(9), Now: fixedNow})
	require.NoError(t, err)
	require.Len(t, points, 24)

	assert.Equal(t, "2024-03-09T16:30:00Z", points[0].Timestamp)
	assert.Equal(t, "2024-03-10T15:30:00Z", points[23].Timestamp)

	for _, p := range points {
		eth := p.ValuesBySymbol["ethereum"]
		assert.InDelta(t, 35, eth, 35*DefaultIntradayNoise+1e-9)
		assert.Equal(t, DefaultIntradayFloor, p.ValuesBySymbol["arbitrum"])
	}
}

func TestIntraday_InvalidInterval(t *testing.T) {
	_, err := Intraday(map[string]float64{"ethereum": 35}, 24, 0, Options{})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}
