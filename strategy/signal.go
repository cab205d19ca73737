// Package strategy implements the swing setup detector: an EMA trend filter
// combined with an RSI reversal condition near a recent swing level.
package strategy

// Action is the decision produced by one evaluation of a candle series.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
	Hold Action = "HOLD"
)

// Signal is the outcome of evaluating one instrument's price history.
// Entry, StopLoss and Confidence are only meaningful when Action is not
// Hold. A Signal is produced fresh on every scan and never persisted on
// its own; it only survives as the Position it may turn into.
type Signal struct {
	Action     Action
	Symbol     string
	Entry      float64
	StopLoss   float64
	Reason     string
	Confidence string
}

func hold(symbol, reason string) Signal {
	return Signal{Action: Hold, Symbol: symbol, Reason: reason}
}
