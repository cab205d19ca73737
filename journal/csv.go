package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV journals trades as an append-only log: one row when a trade opens
// and one row when it closes, tagged by the event column. It cannot update
// rows in place, so it trades the keyed-update semantics of the SQLite and
// Bolt backends for a file you can open in a spreadsheet.
type CSV struct {
	w *csv.Writer
	f *os.File
}

var csvHeader = []string{
	"event", "trade_id", "symbol", "side",
	"entry_price", "quantity", "stop_loss", "take_profit", "open_time",
	"reason", "confidence",
	"exit_price", "exit_time", "exit_reason", "pnl", "pnl_percent",
}

func NewCSV(path string) (*CSV, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &CSV{w: w, f: f}, nil
}

func (j *CSV) RecordEntry(t TradeRecord) error {
	err := j.w.Write([]string{
		"ENTRY", t.TradeID, t.Symbol, t.Side,
		f(t.EntryPrice), f(t.Quantity), f(t.StopLoss), f(t.TakeProfit),
		t.OpenTime.Format(time.RFC3339),
		t.Reason, t.Confidence,
		"", "", "", "", "",
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) RecordExit(tradeID string, ex ExitRecord) error {
	err := j.w.Write([]string{
		"EXIT", tradeID, "", "",
		"", "", "", "", "",
		"", "",
		f(ex.ExitPrice), ex.ExitTime.Format(time.RFC3339), ex.ExitReason,
		f(ex.PnL), f(ex.PnLPercent),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
