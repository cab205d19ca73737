// Package market holds the basic market-data types shared by the rest of
// the bot: OHLCV candles and helpers over candle series.
package market

import "time"

// Candle represents one OHLCV (Open, High, Low, Close, Volume) candlestick
// for a fixed timeframe. A candle series is ordered oldest first and is
// never mutated after it has been fetched.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
