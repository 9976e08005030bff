package api

import (
	"context"
	"sync"

	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/httpapi"
	"github.com/elearn-app/elearn/internal/resolve"
	"github.com/elearn-app/elearn/internal/rpc"
	"go.uber.org/zap"
)

// NotificationService implements the NotificationService gRPC service.
//
// Marking a notification read is applied locally first. The local mark
// outlives failed acknowledgements and re-fetches that still report the
// notification unread, so a read notification never shows as unread again.
// It is dropped once the backend itself reports the notification read.
type NotificationService struct {
	rpc.UnimplementedNotificationServer
	Deps

	mu      sync.Mutex
	overlay map[string]struct{}
}

// NewNotificationService creates a new notification service.
func NewNotificationService(d Deps) *NotificationService {
	return &NotificationService{Deps: d.withDefaults(), overlay: make(map[string]struct{})}
}

func (s *NotificationService) ListNotifications(ctx context.Context, req *rpc.ListRequest) (*rpc.ListNotificationsResponse, error) {
	if !req.Cached {
		if fetched, err := s.Lists.Notifications.Sync(ctx); err == nil {
			s.forgetMissing(fetched)
		}
	}
	snap := s.Lists.Notifications.Snapshot()
	items := s.applyOverlay(snap.Items)

	now := s.now()
	resp := &rpc.ListNotificationsResponse{
		Notifications: make([]rpc.NotificationView, 0, len(items)),
		Unread:        resolve.UnreadNotifications(items),
		ListMeta:      metaOf(snap),
	}
	for _, n := range items {
		v := rpc.NotificationView{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Read:      n.Read(),
			CreatedAt: n.CreatedAt,
		}
		if !n.CreatedAt.IsZero() {
			v.TimeText = s.Formatter.TimeText(n.CreatedAt, now)
		}
		resp.Notifications = append(resp.Notifications, v)
	}
	return resp, nil
}

func (s *NotificationService) applyOverlay(items []backend.Notification) []backend.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range items {
		if _, marked := s.overlay[n.ID]; !marked {
			continue
		}
		if n.Read() {
			delete(s.overlay, n.ID)
			continue
		}
		items[i].Status = backend.StatusRead
	}
	return items
}

// forgetMissing drops local marks for notifications the backend no longer
// lists.
func (s *NotificationService) forgetMissing(fetched []backend.Notification) {
	ids := make(map[string]struct{}, len(fetched))
	for _, n := range fetched {
		ids[n.ID] = struct{}{}
	}
	s.mu.Lock()
	for id := range s.overlay {
		if _, ok := ids[id]; !ok {
			delete(s.overlay, id)
		}
	}
	s.mu.Unlock()
}

func (s *NotificationService) MarkRead(ctx context.Context, req *rpc.MarkReadRequest) (*rpc.MarkReadResponse, error) {
	if err := required("id", req.ID); err != nil {
		return nil, toStatus("mark read", err)
	}
	s.mu.Lock()
	s.overlay[req.ID] = struct{}{}
	s.mu.Unlock()
	s.Bus.Emit(bus.KindNotificationRead, bus.NotificationRead{ID: req.ID})

	err := s.API.MarkNotificationRead(ctx, req.ID)
	s.Machine.Observe(err)
	if err != nil {
		s.Logger.Warn("mark notification read failed",
			zap.String("id", req.ID),
			zap.String("kind", httpapi.KindName(err)),
			zap.Error(err),
		)
		return &rpc.MarkReadResponse{ErrorKind: httpapi.KindName(err), Error: err.Error()}, nil
	}
	return &rpc.MarkReadResponse{Acknowledged: true}, nil
}

// Reset drops every local read mark (sign-out).
func (s *NotificationService) Reset() {
	s.mu.Lock()
	s.overlay = make(map[string]struct{})
	s.mu.Unlock()
}
