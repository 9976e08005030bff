package store

import (
	"database/sql"
	"errors"
	"time"
)

// RecordSyncSuccess stores a successful synchronization of list.
func (db *DB) RecordSyncSuccess(list string, count int, at time.Time) error {
	ms := at.UnixMilli()
	_, err := db.Exec(`
		INSERT INTO sync_state (list, last_success_at, last_count, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(list) DO UPDATE SET
			last_success_at = excluded.last_success_at,
			last_count = excluded.last_count,
			updated_at = excluded.updated_at`,
		list, ms, count, ms)
	return err
}

// RecordSyncFailure stores a failed synchronization of list. The last
// success is kept so callers can tell how stale the visible list is.
func (db *DB) RecordSyncFailure(list, kind, message string, at time.Time) error {
	ms := at.UnixMilli()
	_, err := db.Exec(`
		INSERT INTO sync_state (list, last_failure_at, last_error_kind, last_error, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(list) DO UPDATE SET
			last_failure_at = excluded.last_failure_at,
			last_error_kind = excluded.last_error_kind,
			last_error = excluded.last_error,
			updated_at = excluded.updated_at`,
		list, ms, kind, message, ms)
	return err
}

// GetSyncState returns the checkpoint for list, or nil if it never synced.
func (db *DB) GetSyncState(list string) (*SyncState, error) {
	row := db.QueryRow(`
		SELECT list, last_success_at, last_count, last_failure_at, last_error_kind, last_error
		FROM sync_state WHERE list = ?`, list)
	s, err := scanSyncState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// ListSyncStates returns all checkpoints ordered by list name.
func (db *DB) ListSyncStates() ([]SyncState, error) {
	rows, err := db.Query(`
		SELECT list, last_success_at, last_count, last_failure_at, last_error_kind, last_error
		FROM sync_state ORDER BY list`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var states []SyncState
	for rows.Next() {
		s, err := scanSyncState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, *s)
	}
	return states, rows.Err()
}

// ClearSyncStates forgets all checkpoints (sign-out).
func (db *DB) ClearSyncStates() error {
	_, err := db.Exec(`DELETE FROM sync_state`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSyncState(row scanner) (*SyncState, error) {
	var (
		s                 SyncState
		successAt, failAt int64
	)
	if err := row.Scan(&s.List, &successAt, &s.LastCount, &failAt, &s.LastErrorKind, &s.LastError); err != nil {
		return nil, err
	}
	if successAt > 0 {
		s.LastSuccessAt = time.UnixMilli(successAt)
	}
	if failAt > 0 {
		s.LastFailureAt = time.UnixMilli(failAt)
	}
	return &s, nil
}
