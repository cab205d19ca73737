// Package risk turns a trade signal into a position size under a
// capital-at-risk budget and derives the matching take-profit level.
package risk

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidStop is returned when the stop sits on the entry price, which
// makes the per-unit risk zero and the trade unsizeable. Callers treat it
// as "no trade", not a failure.
var ErrInvalidStop = errors.New("invalid stop: zero-width risk")

// Parameters is the risk budget for the process. Loaded once at startup
// and constant for the process lifetime.
type Parameters struct {
	Capital       float64 // total paper capital in quote currency
	RiskPerTrade  float64 // fraction of capital risked per trade, e.g. 0.015
	MinRewardRisk float64 // take-profit distance as a multiple of stop distance
	MaxPositions  int     // concurrent open position cap
	MinNotional   float64 // exchange minimum order value, e.g. 10 USDT
}

const (
	quantityPlaces = 6 // exchange lot precision
	pricePlaces    = 2
)

// PositionSize computes the quantity that risks Capital*RiskPerTrade if the
// stop is hit, rounded to 6 decimal places. When the risk-derived notional
// falls under MinNotional the quantity is raised to MinNotional/entry
// instead; adjusted reports that override so the caller can log it rather
// than apply it silently.
func (p Parameters) PositionSize(entry, stop float64) (qty float64, adjusted bool, err error) {
	perUnit := math.Abs(entry - stop)
	if perUnit <= 0 || entry <= 0 {
		return 0, false, ErrInvalidStop
	}

	riskAmount := p.Capital * p.RiskPerTrade
	qty = riskAmount / perUnit

	if qty*entry < p.MinNotional {
		qty = p.MinNotional / entry
		adjusted = true
	}

	qty = round(qty, quantityPlaces)
	return qty, adjusted, nil
}

// TakeProfit places the profit target MinRewardRisk stop-distances beyond
// the entry: above it for longs, below it for shorts. Rounded to 2 places.
func (p Parameters) TakeProfit(entry, stop float64, short bool) float64 {
	reward := math.Abs(entry-stop) * p.MinRewardRisk
	if short {
		return round(entry-reward, pricePlaces)
	}
	return round(entry+reward, pricePlaces)
}

func round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
