package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/swingbot/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() TradeRecord {
	return TradeRecord{
		TradeID:    "BTCUSDT-01J0TEST",
		Symbol:     "BTCUSDT",
		Side:       "LONG",
		Status:     "OPEN",
		EntryPrice: 100,
		Quantity:   0.5,
		StopLoss:   95,
		TakeProfit: 110,
		OpenTime:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Reason:     "uptrend pullback to support with RSI oversold",
		Confidence: "MEDIUM",
	}
}

func sampleExit() ExitRecord {
	return ExitRecord{
		ExitPrice:  110,
		ExitTime:   time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC),
		ExitReason: "TAKE_PROFIT",
		PnL:        5,
		PnLPercent: 10,
	}
}

func TestNewEntryFromPosition(t *testing.T) {
	p := ledger.Position{
		ID:         "ETHUSDT-01J0TEST",
		Symbol:     "ETHUSDT",
		Direction:  ledger.Short,
		EntryPrice: 50,
		Quantity:   2,
		StopLoss:   52,
		TakeProfit: 46,
		OpenTime:   time.Now(),
		Status:     ledger.StatusOpen,
	}

	rec := NewEntry(p, "resistance test", "MEDIUM")
	assert.Equal(t, "ETHUSDT-01J0TEST", rec.TradeID)
	assert.Equal(t, "SHORT", rec.Side)
	assert.Equal(t, "OPEN", rec.Status)
	assert.Equal(t, "resistance test", rec.Reason)
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordEntry(sampleEntry()))
	require.NoError(t, j.RecordExit("BTCUSDT-01J0TEST", sampleExit()))

	trades, err := j.ListTrades()
	require.NoError(t, err)
	require.Len(t, trades, 1)

	got := trades[0]
	assert.Equal(t, "CLOSED", got.Status)
	assert.Equal(t, 110.0, got.ExitPrice)
	assert.Equal(t, "TAKE_PROFIT", got.ExitReason)
	assert.Equal(t, 5.0, got.PnL)
	assert.Equal(t, 10.0, got.PnLPercent)
}

func TestSQLiteExitUnknownTrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	err = j.RecordExit("nope", sampleExit())
	assert.Error(t, err)
}

func TestBoltRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.bolt")

	j, err := NewBolt(path)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordEntry(sampleEntry()))
	require.NoError(t, j.RecordExit("BTCUSDT-01J0TEST", sampleExit()))

	got, err := j.GetTrade("BTCUSDT-01J0TEST")
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", got.Status)
	assert.Equal(t, 110.0, got.ExitPrice)
	assert.Equal(t, 5.0, got.PnL)

	err = j.RecordExit("nope", sampleExit())
	assert.Error(t, err)
}

func TestCSVAppendsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)

	require.NoError(t, j.RecordEntry(sampleEntry()))
	require.NoError(t, j.RecordExit("BTCUSDT-01J0TEST", sampleExit()))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3) // header + entry + exit
	assert.Contains(t, lines[1], "ENTRY")
	assert.Contains(t, lines[1], "BTCUSDT-01J0TEST")
	assert.Contains(t, lines[2], "EXIT")
	assert.Contains(t, lines[2], "TAKE_PROFIT")
}
