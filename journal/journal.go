// Package journal persists the paper-trade history. Records are keyed by
// trade id with append-on-entry / update-on-exit semantics. A journal
// failure is never allowed to block the trading loop; callers log and
// move on.
package journal

import (
	"time"

	"github.com/rustyeddy/swingbot/ledger"
)

// TradeRecord is one row of the trade history.
type TradeRecord struct {
	TradeID    string
	Symbol     string
	Side       string
	Status     string
	EntryPrice float64
	Quantity   float64
	StopLoss   float64
	TakeProfit float64
	OpenTime   time.Time
	Reason     string
	Confidence string

	// Populated on exit.
	ExitPrice  float64
	ExitTime   time.Time
	ExitReason string
	PnL        float64
	PnLPercent float64
}

// ExitRecord carries the fields written when a trade closes.
type ExitRecord struct {
	ExitPrice  float64
	ExitTime   time.Time
	ExitReason string
	PnL        float64
	PnLPercent float64
}

// Journal is the persistence contract used by the trading loop.
type Journal interface {
	RecordEntry(TradeRecord) error
	RecordExit(tradeID string, ex ExitRecord) error
	Close() error
}

// NewEntry builds the entry record for a freshly opened position.
func NewEntry(p ledger.Position, reason, confidence string) TradeRecord {
	return TradeRecord{
		TradeID:    p.ID,
		Symbol:     p.Symbol,
		Side:       string(p.Direction),
		Status:     string(p.Status),
		EntryPrice: p.EntryPrice,
		Quantity:   p.Quantity,
		StopLoss:   p.StopLoss,
		TakeProfit: p.TakeProfit,
		OpenTime:   p.OpenTime,
		Reason:     reason,
		Confidence: confidence,
	}
}

// NewExit builds the exit record for a closed position.
func NewExit(p ledger.Position) ExitRecord {
	return ExitRecord{
		ExitPrice:  p.ExitPrice,
		ExitTime:   p.ExitTime,
		ExitReason: string(p.ExitReason),
		PnL:        p.PnL,
		PnLPercent: p.PnLPercent,
	}
}
