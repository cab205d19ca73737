package journal

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var tradesBucket = []byte("trades")

// Bolt journals trades into a bbolt key-value file, one JSON value per
// trade id.
type Bolt struct {
	db *bolt.DB
}

func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tradesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (j *Bolt) RecordEntry(t TradeRecord) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return tx.Bucket(tradesBucket).Put([]byte(t.TradeID), data)
	})
}

func (j *Bolt) RecordExit(tradeID string, ex ExitRecord) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tradesBucket)

		data := b.Get([]byte(tradeID))
		if data == nil {
			return fmt.Errorf("trade %q not found", tradeID)
		}

		var rec TradeRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}

		rec.Status = "CLOSED"
		rec.ExitPrice = ex.ExitPrice
		rec.ExitTime = ex.ExitTime
		rec.ExitReason = ex.ExitReason
		rec.PnL = ex.PnL
		rec.PnLPercent = ex.PnLPercent

		updated, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put([]byte(tradeID), updated)
	})
}

// GetTrade returns the record stored under tradeID.
func (j *Bolt) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord
	err := j.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(tradesBucket).Get([]byte(tradeID))
		if data == nil {
			return fmt.Errorf("trade %q not found", tradeID)
		}
		return json.Unmarshal(data, &rec)
	})
	return rec, err
}

func (j *Bolt) Close() error {
	return j.db.Close()
}
