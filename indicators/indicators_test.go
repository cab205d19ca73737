package indicators

import (
	"testing"

	"github.com/rustyeddy/swingbot/market"
	"github.com/stretchr/testify/assert"
)

func candlesFromCloses(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{Open: c, High: c, Low: c, Close: c}
	}
	return out
}

func TestSMA(t *testing.T) {
	candles := candlesFromCloses(102, 105, 106, 108, 110, 111, 113, 114, 116, 118)

	sma, err := SMA(candles, 5)
	assert.NoError(t, err)
	// Last 5 closes: 111,113,114,116,118 => 572/5 = 114.4
	assert.InDelta(t, 114.4, sma, 0.001)
}

func TestSMAErrors(t *testing.T) {
	candles := candlesFromCloses(100, 101)

	_, err := SMA(candles, 0)
	assert.Error(t, err)

	_, err = SMA(candles, 3)
	assert.Error(t, err)
}

func TestEMA(t *testing.T) {
	candles := candlesFromCloses(102, 105, 106, 108, 110, 111, 113, 114, 116, 118)

	ema, err := EMA(candles, 5)
	assert.NoError(t, err)
	assert.Greater(t, ema, 0.0)

	// EMA leans toward recent closes, so it should sit above the SMA in a
	// steady uptrend seeded from older data.
	sma, err := SMA(candles, 5)
	assert.NoError(t, err)
	assert.Greater(t, ema, sma-5)
}

func TestEMAConstantSeries(t *testing.T) {
	candles := candlesFromCloses(100, 100, 100, 100, 100, 100)

	ema, err := EMA(candles, 3)
	assert.NoError(t, err)
	assert.InDelta(t, 100.0, ema, 0.0001)
}

func TestRSIAllGains(t *testing.T) {
	candles := candlesFromCloses(100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113, 114)

	rsi, err := RSI(candles, 14)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestRSIAllLosses(t *testing.T) {
	candles := candlesFromCloses(114, 113, 112, 111, 110, 109, 108, 107, 106, 105, 104, 103, 102, 101, 100)

	rsi, err := RSI(candles, 14)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, rsi, 0.0001)
}

func TestRSIBalanced(t *testing.T) {
	// Alternating equal gains and losses settle near the midline.
	closes := []float64{100}
	for i := 0; i < 30; i++ {
		if i%2 == 0 {
			closes = append(closes, closes[len(closes)-1]+1)
		} else {
			closes = append(closes, closes[len(closes)-1]-1)
		}
	}

	rsi, err := RSI(candlesFromCloses(closes...), 14)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, rsi, 10.0)
}

func TestRSIErrors(t *testing.T) {
	_, err := RSI(candlesFromCloses(100, 101, 102), 14)
	assert.Error(t, err)

	_, err = RSI(candlesFromCloses(100, 101, 102), 1)
	assert.Error(t, err)
}
