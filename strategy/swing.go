package strategy

import (
	"github.com/rustyeddy/swingbot/indicators"
	"github.com/rustyeddy/swingbot/market"
)

// Swing evaluates candle series for pullback entries in the direction of
// the prevailing EMA trend. Evaluation is a pure function of the input
// series; the evaluator holds no state between calls.
//
// Long setup: fast EMA above slow EMA, RSI oversold and turning up, close
// within SupportBand of the lowest low of the swing window. Short setup is
// the mirror image against the highest high.
type Swing struct {
	FastPeriod  int // 20
	SlowPeriod  int // 50
	RSIPeriod   int // 14
	SwingWindow int // lookback for swing high/low, 20
	MinHistory  int // candles required before any signal, 100

	Oversold   float64 // RSI floor for long setups, 35
	Overbought float64 // RSI ceiling for short setups, 65
}

// NewSwing returns an evaluator with the standard swing parameters.
func NewSwing() *Swing {
	return &Swing{
		FastPeriod:  20,
		SlowPeriod:  50,
		RSIPeriod:   14,
		SwingWindow: 20,
		MinHistory:  100,
		Oversold:    35,
		Overbought:  65,
	}
}

const (
	// supportBand / resistanceBand define how close the last close must be
	// to the swing level for a setup to count (2%).
	supportBand    = 1.02
	resistanceBand = 0.98

	// stop levels sit one percent beyond the swing level.
	longStopFactor  = 0.99
	shortStopFactor = 1.01
)

// Evaluate inspects the candle series for symbol and returns a trade
// signal. Short history is not an error: it returns a Hold signal with
// reason "insufficient data".
func (s *Swing) Evaluate(symbol string, candles []market.Candle) Signal {
	if len(candles) < s.MinHistory {
		return hold(symbol, "insufficient data")
	}

	fast, err := indicators.EMA(candles, s.FastPeriod)
	if err != nil {
		return hold(symbol, "insufficient data")
	}
	slow, err := indicators.EMA(candles, s.SlowPeriod)
	if err != nil {
		return hold(symbol, "insufficient data")
	}

	rsi, err := indicators.RSI(candles, s.RSIPeriod)
	if err != nil {
		return hold(symbol, "insufficient data")
	}
	prevRSI, err := indicators.RSI(candles[:len(candles)-1], s.RSIPeriod)
	if err != nil {
		return hold(symbol, "insufficient data")
	}

	recentLow, err := market.LowestLow(candles, s.SwingWindow)
	if err != nil {
		return hold(symbol, "insufficient data")
	}
	recentHigh, err := market.HighestHigh(candles, s.SwingWindow)
	if err != nil {
		return hold(symbol, "insufficient data")
	}

	last := candles[len(candles)-1].Close

	uptrend := fast > slow
	oversoldRising := rsi < s.Oversold && rsi > prevRSI
	overboughtFalling := rsi > s.Overbought && rsi < prevRSI

	switch {
	case uptrend && oversoldRising && last <= recentLow*supportBand:
		return Signal{
			Action:     Buy,
			Symbol:     symbol,
			Entry:      last,
			StopLoss:   recentLow * longStopFactor,
			Reason:     "uptrend pullback to support with RSI oversold",
			Confidence: "MEDIUM",
		}

	case !uptrend && overboughtFalling && last >= recentHigh*resistanceBand:
		return Signal{
			Action:     Sell,
			Symbol:     symbol,
			Entry:      last,
			StopLoss:   recentHigh * shortStopFactor,
			Reason:     "resistance test with RSI overbought",
			Confidence: "MEDIUM",
		}
	}

	return hold(symbol, "no quality setup found")
}
