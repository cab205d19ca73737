// Package ledger tracks the lifecycle of simulated positions: one open
// position per instrument, opened from a sized signal and closed exactly
// once when a stop-loss or take-profit level is touched.
package ledger

import "time"

// Direction is the side of a position.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Status tracks a position's lifecycle. Open is the only initial state,
// Closed the only terminal one; the sole transition is Open -> Closed.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// ExitReason says which level closed a position.
type ExitReason string

const (
	ExitStopLoss   ExitReason = "STOP_LOSS"
	ExitTakeProfit ExitReason = "TAKE_PROFIT"
)

// Position is one simulated trade. A closed position is never reopened;
// a later signal for the same symbol creates a new Position with a new ID.
type Position struct {
	ID         string
	Symbol     string
	Direction  Direction
	EntryPrice float64
	Quantity   float64
	StopLoss   float64
	TakeProfit float64
	OpenTime   time.Time
	Status     Status

	// Populated on close.
	ExitPrice  float64
	ExitTime   time.Time
	ExitReason ExitReason
	PnL        float64 // quote currency
	PnLPercent float64
}

// Duration is how long the position was (or has been) held.
func (p Position) Duration(now time.Time) time.Duration {
	if p.Status == StatusClosed {
		return p.ExitTime.Sub(p.OpenTime)
	}
	return now.Sub(p.OpenTime)
}
