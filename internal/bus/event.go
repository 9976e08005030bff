package bus

import "time"

// Event kinds published by the daemon. Subscribers filter by prefix, so
// "list." receives both list events.
const (
	KindListSynced          = "list.synced"
	KindListSyncFailed      = "list.sync_failed"
	KindNotificationRead    = "notification.read"
	KindProfileUpdated      = "profile.updated"
	KindCredentialsChanged  = "session.credentials_changed"
	KindSessionStatusChange = "session.status_changed"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// ListSynced is the payload of list.synced events.
type ListSynced struct {
	List       string
	Count      int
	Generation uint64
}

// ListSyncFailed is the payload of list.sync_failed events.
type ListSyncFailed struct {
	List string
	Err  error
}

// NotificationRead is the payload of notification.read events.
type NotificationRead struct {
	ID string
}

// ProfileUpdated is the payload of profile.updated events.
type ProfileUpdated struct {
	UserID string
	Name   string
}
