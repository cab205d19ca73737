package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/rustyeddy/swingbot/pkg/id"
)

var (
	// ErrAlreadyOpen is returned when the instrument already carries an
	// open position.
	ErrAlreadyOpen = errors.New("position already open for instrument")

	// ErrAtCapacity is returned when the concurrent-position cap has been
	// reached.
	ErrAtCapacity = errors.New("max concurrent positions reached")

	// ErrBadQuantity is returned for a non-positive size.
	ErrBadQuantity = errors.New("quantity must be positive")

	// ErrBadLevels is returned when stop and take-profit do not bracket
	// the entry on the correct sides for the direction.
	ErrBadLevels = errors.New("stop/take-profit on wrong side of entry")
)

// Ledger holds at most one open position per instrument, up to a global
// cap. The scan loop is single-threaded, but the ledger guards itself so
// a second driver cannot corrupt it.
type Ledger struct {
	mu        sync.Mutex
	cap       int
	positions map[string]*Position
}

// New returns an empty ledger with the given concurrent-position cap.
func New(maxPositions int) *Ledger {
	return &Ledger{
		cap:       maxPositions,
		positions: make(map[string]*Position),
	}
}

// Open inserts a new open position and returns it. It rejects the request
// when the symbol already has an open position, the cap is reached, the
// quantity is not positive, or the levels sit on the wrong side of entry.
func (l *Ledger) Open(symbol string, dir Direction, entry, qty, stop, take float64, at time.Time) (Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.positions[symbol]; ok {
		return Position{}, ErrAlreadyOpen
	}
	if len(l.positions) >= l.cap {
		return Position{}, ErrAtCapacity
	}
	if qty <= 0 {
		return Position{}, ErrBadQuantity
	}
	if !levelsValid(dir, entry, stop, take) {
		return Position{}, ErrBadLevels
	}

	p := &Position{
		ID:         id.Trade(symbol),
		Symbol:     symbol,
		Direction:  dir,
		EntryPrice: entry,
		Quantity:   qty,
		StopLoss:   stop,
		TakeProfit: take,
		OpenTime:   at,
		Status:     StatusOpen,
	}
	l.positions[symbol] = p
	return *p, nil
}

// longs need stop < entry < take; shorts need take < entry < stop.
func levelsValid(dir Direction, entry, stop, take float64) bool {
	if dir == Short {
		return take < entry && entry < stop
	}
	return stop < entry && entry < take
}

// CheckExit reports whether the current price closes the symbol's open
// position and why. The stop-loss comparison runs before take-profit so
// stop protection wins if both could trigger on one observation.
func (l *Ledger) CheckExit(symbol string, price float64) (ExitReason, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.positions[symbol]
	if !ok {
		return "", false
	}

	if p.Direction == Long {
		switch {
		case price <= p.StopLoss:
			return ExitStopLoss, true
		case price >= p.TakeProfit:
			return ExitTakeProfit, true
		}
		return "", false
	}

	switch {
	case price >= p.StopLoss:
		return ExitStopLoss, true
	case price <= p.TakeProfit:
		return ExitTakeProfit, true
	}
	return "", false
}

// Close pops the symbol's open position, fills in the exit fields and the
// realized P&L and returns the closed position. ok is false when nothing
// was open for the symbol.
func (l *Ledger) Close(symbol string, exitPrice float64, reason ExitReason, at time.Time) (Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	delete(l.positions, symbol)

	if p.Direction == Long {
		p.PnL = (exitPrice - p.EntryPrice) * p.Quantity
	} else {
		p.PnL = (p.EntryPrice - exitPrice) * p.Quantity
	}
	if notional := p.EntryPrice * p.Quantity; notional != 0 {
		p.PnLPercent = p.PnL / notional * 100
	}

	p.Status = StatusClosed
	p.ExitPrice = exitPrice
	p.ExitTime = at
	p.ExitReason = reason
	return *p, true
}

// Get returns a copy of the symbol's open position.
func (l *Ledger) Get(symbol string) (Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// OpenCount reports the number of open positions.
func (l *Ledger) OpenCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.positions)
}

// OpenPositions returns copies of all open positions, for exit monitoring.
func (l *Ledger) OpenPositions() []Position {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, *p)
	}
	return out
}
