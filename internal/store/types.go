package store

import "time"

// SyncState is the last known outcome of a list synchronization.
type SyncState struct {
	List          string
	LastSuccessAt time.Time
	LastCount     int
	LastFailureAt time.Time
	LastErrorKind string
	LastError     string
}

// Healthy reports whether the most recent attempt succeeded.
func (s SyncState) Healthy() bool {
	return !s.LastSuccessAt.IsZero() && !s.LastFailureAt.After(s.LastSuccessAt)
}

// CartSnapshot is the JSON cart mirrored from the last successful fetch.
type CartSnapshot struct {
	Payload   []byte
	ItemCount int
	SavedAt   time.Time
}
