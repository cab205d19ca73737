package market

import "fmt"

// Closes extracts the close series from candles, oldest first.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// LowestLow returns the minimum low over the last n candles.
func LowestLow(candles []Candle, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("window must be positive, got %d", n)
	}
	if len(candles) < n {
		return 0, fmt.Errorf("not enough candles: need %d, got %d", n, len(candles))
	}

	low := candles[len(candles)-n].Low
	for _, c := range candles[len(candles)-n:] {
		if c.Low < low {
			low = c.Low
		}
	}
	return low, nil
}

// HighestHigh returns the maximum high over the last n candles.
func HighestHigh(candles []Candle, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("window must be positive, got %d", n)
	}
	if len(candles) < n {
		return 0, fmt.Errorf("not enough candles: need %d, got %d", n, len(candles))
	}

	high := candles[len(candles)-n].High
	for _, c := range candles[len(candles)-n:] {
		if c.High > high {
			high = c.High
		}
	}
	return high, nil
}
