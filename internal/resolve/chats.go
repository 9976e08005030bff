package resolve

import (
	"sort"
	"time"

	"github.com/elearn-app/elearn/internal/backend"
)

// ChatView is a conversation ready for the chat list.
type ChatView struct {
	ID          string
	Other       backend.Participant
	LastMessage string
	LastAt      time.Time
	TimeText    string
	Unread      int
	UpdatedAt   time.Time
}

// ChatViews resolves conversations for userID, newest first.
func ChatViews(convs []backend.Conversation, userID string, now time.Time, f Formatter) []ChatView {
	sorted := append([]backend.Conversation(nil), convs...)
	SortByRecency(sorted)

	views := make([]ChatView, 0, len(sorted))
	for _, c := range sorted {
		views = append(views, NewChatView(c, userID, now, f))
	}
	return views
}

// NewChatView resolves one conversation.
func NewChatView(c backend.Conversation, userID string, now time.Time, f Formatter) ChatView {
	v := ChatView{ID: c.ID, Unread: Unread(c, userID), UpdatedAt: c.UpdatedAt}
	v.Other, _ = OtherParticipant(c, userID)
	at := c.UpdatedAt
	if m, ok := LastMessage(c); ok {
		v.LastMessage = m.Content
		at = m.CreatedAt
	}
	v.LastAt = at
	if !at.IsZero() {
		v.TimeText = f.TimeText(at, now)
	}
	return v
}

// TotalUnread sums the unread counts of views.
func TotalUnread(views []ChatView) int {
	n := 0
	for _, v := range views {
		n += v.Unread
	}
	return n
}

// SortChatViews orders views by UpdatedAt, newest first. Ties keep their order.
func SortChatViews(views []ChatView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].UpdatedAt.After(views[j].UpdatedAt)
	})
}
