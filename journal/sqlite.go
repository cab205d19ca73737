package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	status TEXT NOT NULL,
	entry_price REAL NOT NULL,
	quantity REAL NOT NULL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	open_time DATETIME NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	confidence TEXT NOT NULL DEFAULT '',
	exit_price REAL NOT NULL DEFAULT 0,
	exit_time DATETIME,
	exit_reason TEXT NOT NULL DEFAULT '',
	pnl REAL NOT NULL DEFAULT 0,
	pnl_percent REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_trades_open_time ON trades(open_time);
`

// SQLite journals trades into a single-file SQLite database.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordEntry(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, symbol, side, status, entry_price, quantity, stop_loss, take_profit, open_time, reason, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Symbol, t.Side, t.Status, t.EntryPrice, t.Quantity,
		t.StopLoss, t.TakeProfit, t.OpenTime, t.Reason, t.Confidence,
	)
	return err
}

func (j *SQLite) RecordExit(tradeID string, ex ExitRecord) error {
	res, err := j.db.Exec(`
		UPDATE trades
		SET status = 'CLOSED', exit_price = ?, exit_time = ?, exit_reason = ?, pnl = ?, pnl_percent = ?
		WHERE trade_id = ?`,
		ex.ExitPrice, ex.ExitTime, ex.ExitReason, ex.PnL, ex.PnLPercent, tradeID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q not found", tradeID)
	}
	return nil
}

// ListTrades returns all recorded trades, oldest first.
func (j *SQLite) ListTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, symbol, side, status, entry_price, quantity, stop_loss, take_profit,
		       open_time, reason, confidence, exit_price, COALESCE(exit_time, open_time), exit_reason, pnl, pnl_percent
		FROM trades
		ORDER BY open_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		err := rows.Scan(
			&rec.TradeID, &rec.Symbol, &rec.Side, &rec.Status,
			&rec.EntryPrice, &rec.Quantity, &rec.StopLoss, &rec.TakeProfit,
			&rec.OpenTime, &rec.Reason, &rec.Confidence,
			&rec.ExitPrice, &rec.ExitTime, &rec.ExitReason, &rec.PnL, &rec.PnLPercent,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
