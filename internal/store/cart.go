package store

import (
	"database/sql"
	"errors"
	"time"
)

// SaveCartSnapshot replaces the stored cart snapshot.
func (db *DB) SaveCartSnapshot(payload []byte, itemCount int) error {
	_, err := db.Exec(`
		INSERT INTO cart_snapshot (id, payload, item_count, saved_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			item_count = excluded.item_count,
			saved_at = excluded.saved_at`,
		string(payload), itemCount, time.Now().UnixMilli())
	return err
}

// LoadCartSnapshot returns the stored snapshot, or nil when none was saved.
func (db *DB) LoadCartSnapshot() (*CartSnapshot, error) {
	var (
		payload string
		count   int
		savedAt int64
	)
	err := db.QueryRow(`SELECT payload, item_count, saved_at FROM cart_snapshot WHERE id = 1`).
		Scan(&payload, &count, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &CartSnapshot{Payload: []byte(payload), ItemCount: count, SavedAt: time.UnixMilli(savedAt)}, nil
}

// ClearCartSnapshot drops the snapshot (sign-out).
func (db *DB) ClearCartSnapshot() error {
	_, err := db.Exec(`DELETE FROM cart_snapshot`)
	return err
}
