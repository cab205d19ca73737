package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func openLong(t *testing.T, l *Ledger) Position {
	t.Helper()
	p, err := l.Open("BTCUSDT", Long, 100, 0.5, 95, 110, t0)
	require.NoError(t, err)
	return p
}

func TestOpenAssignsIdentity(t *testing.T) {
	l := New(2)

	p := openLong(t, l)
	assert.Contains(t, p.ID, "BTCUSDT-")
	assert.Equal(t, StatusOpen, p.Status)
	assert.Equal(t, 1, l.OpenCount())

	// A second position for a different symbol gets a distinct id.
	p2, err := l.Open("ETHUSDT", Long, 50, 1, 48, 54, t0)
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, p2.ID)
}

func TestOpenRejectsDuplicateSymbol(t *testing.T) {
	l := New(5)
	openLong(t, l)

	_, err := l.Open("BTCUSDT", Long, 101, 0.5, 96, 111, t0)
	assert.ErrorIs(t, err, ErrAlreadyOpen)
	assert.Equal(t, 1, l.OpenCount())
}

func TestOpenEnforcesCap(t *testing.T) {
	l := New(1)
	openLong(t, l)

	_, err := l.Open("ETHUSDT", Long, 50, 1, 48, 54, t0)
	assert.ErrorIs(t, err, ErrAtCapacity)
}

func TestOpenRejectsBadQuantity(t *testing.T) {
	l := New(5)

	_, err := l.Open("BTCUSDT", Long, 100, 0, 95, 110, t0)
	assert.ErrorIs(t, err, ErrBadQuantity)

	_, err = l.Open("BTCUSDT", Long, 100, -1, 95, 110, t0)
	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestOpenRejectsBadLevels(t *testing.T) {
	l := New(5)

	// Long with stop above entry.
	_, err := l.Open("BTCUSDT", Long, 100, 1, 105, 110, t0)
	assert.ErrorIs(t, err, ErrBadLevels)

	// Short with take-profit above entry.
	_, err = l.Open("BTCUSDT", Short, 100, 1, 105, 103, t0)
	assert.ErrorIs(t, err, ErrBadLevels)
}

func TestCheckExitLong(t *testing.T) {
	l := New(1)
	openLong(t, l) // entry 100, stop 95, take 110

	_, hit := l.CheckExit("BTCUSDT", 100)
	assert.False(t, hit)

	reason, hit := l.CheckExit("BTCUSDT", 95)
	assert.True(t, hit)
	assert.Equal(t, ExitStopLoss, reason)

	reason, hit = l.CheckExit("BTCUSDT", 110)
	assert.True(t, hit)
	assert.Equal(t, ExitTakeProfit, reason)

	_, hit = l.CheckExit("UNKNOWN", 1)
	assert.False(t, hit)
}

func TestCheckExitShort(t *testing.T) {
	l := New(1)
	_, err := l.Open("ETHUSDT", Short, 100, 2, 105, 90, t0)
	require.NoError(t, err)

	reason, hit := l.CheckExit("ETHUSDT", 105)
	assert.True(t, hit)
	assert.Equal(t, ExitStopLoss, reason)

	reason, hit = l.CheckExit("ETHUSDT", 90)
	assert.True(t, hit)
	assert.Equal(t, ExitTakeProfit, reason)

	_, hit = l.CheckExit("ETHUSDT", 100)
	assert.False(t, hit)
}

func TestCloseLongRoundTrip(t *testing.T) {
	l := New(1)
	p := openLong(t, l) // entry 100, qty 0.5, take 110

	exit := t0.Add(4 * time.Hour)
	closed, ok := l.Close("BTCUSDT", 110, ExitTakeProfit, exit)
	require.True(t, ok)

	assert.Equal(t, p.ID, closed.ID)
	assert.Equal(t, StatusClosed, closed.Status)
	assert.Equal(t, ExitTakeProfit, closed.ExitReason)
	assert.Equal(t, 110.0, closed.ExitPrice)
	assert.Equal(t, (110.0-100.0)*0.5, closed.PnL)
	assert.InDelta(t, 10.0, closed.PnLPercent, 1e-9)
	assert.Equal(t, 4*time.Hour, closed.Duration(exit.Add(time.Hour)))

	// The slot is free again; a new signal creates a fresh position.
	assert.Equal(t, 0, l.OpenCount())
	p2, err := l.Open("BTCUSDT", Long, 102, 0.5, 97, 112, exit)
	require.NoError(t, err)
	assert.NotEqual(t, closed.ID, p2.ID)
}

func TestCloseShortPnL(t *testing.T) {
	l := New(1)
	_, err := l.Open("ETHUSDT", Short, 100, 2, 105, 90, t0)
	require.NoError(t, err)

	closed, ok := l.Close("ETHUSDT", 105, ExitStopLoss, t0.Add(time.Hour))
	require.True(t, ok)
	assert.Equal(t, (100.0-105.0)*2, closed.PnL)
	assert.InDelta(t, -5.0, closed.PnLPercent, 1e-9)
}

func TestCloseWithoutOpenPosition(t *testing.T) {
	l := New(1)

	_, ok := l.Close("BTCUSDT", 100, ExitStopLoss, t0)
	assert.False(t, ok)
}

func TestCloseHappensAtMostOnce(t *testing.T) {
	l := New(1)
	openLong(t, l)

	_, ok := l.Close("BTCUSDT", 95, ExitStopLoss, t0)
	require.True(t, ok)

	_, ok = l.Close("BTCUSDT", 95, ExitStopLoss, t0)
	assert.False(t, ok)
}

func TestOpenPositionsSnapshot(t *testing.T) {
	l := New(3)
	openLong(t, l)
	_, err := l.Open("ETHUSDT", Short, 100, 2, 105, 90, t0)
	require.NoError(t, err)

	open := l.OpenPositions()
	assert.Len(t, open, 2)

	// Snapshot copies: mutating them must not touch the ledger.
	open[0].Quantity = 999
	got, ok := l.Get(open[0].Symbol)
	require.True(t, ok)
	assert.NotEqual(t, 999.0, got.Quantity)
}
