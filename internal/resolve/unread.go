// Package resolve derives display state from fetched records: unread
// counts, the other side of a conversation, course completion and
// relative timestamps. Everything here is pure.
package resolve

import (
	"slices"
	"sort"

	"github.com/elearn-app/elearn/internal/backend"
)

// Unread counts the messages of conv whose readBy excludes userID.
func Unread(conv backend.Conversation, userID string) int {
	n := 0
	for _, m := range conv.Messages {
		if !slices.Contains(m.ReadBy, userID) {
			n++
		}
	}
	return n
}

// OtherParticipant returns the first participant that is not userID.
func OtherParticipant(conv backend.Conversation, userID string) (backend.Participant, bool) {
	for _, p := range conv.Participants {
		if p.ID != userID {
			return p, true
		}
	}
	return backend.Participant{}, false
}

// LastMessage returns the most recent message of conv.
func LastMessage(conv backend.Conversation) (backend.Message, bool) {
	if len(conv.Messages) == 0 {
		return backend.Message{}, false
	}
	last := conv.Messages[0]
	for _, m := range conv.Messages[1:] {
		if !m.CreatedAt.Before(last.CreatedAt) {
			last = m
		}
	}
	return last, true
}

// SortByRecency orders conversations by UpdatedAt, newest first. Ties keep
// the server order.
func SortByRecency(convs []backend.Conversation) {
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
}

// UnreadNotifications counts notifications not yet read.
func UnreadNotifications(ns []backend.Notification) int {
	n := 0
	for _, x := range ns {
		if !x.Read() {
			n++
		}
	}
	return n
}
