package indicators

import (
	"fmt"

	"github.com/rustyeddy/swingbot/market"
)

// RSI calculates the Relative Strength Index of the close series for the
// given period using Wilder smoothing. The result is bounded to [0, 100].
//
// Needs at least period+1 candles (one extra close for the first delta).
func RSI(candles []market.Candle, period int) (float64, error) {
	if period < 2 {
		return 0, fmt.Errorf("period must be at least 2, got %d", period)
	}
	if len(candles) < period+1 {
		return 0, fmt.Errorf("not enough candles: need %d, got %d", period+1, len(candles))
	}

	closes := market.Closes(candles)

	// Seed averages over the first period deltas.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		d := closes[i] - closes[i-1]
		if d >= 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing across the rest of the series.
	for i := period + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if d >= 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, nil
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}
