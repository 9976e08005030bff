package api

import (
	"context"

	"github.com/elearn-app/elearn/internal/listsync"
	"github.com/elearn-app/elearn/internal/resolve"
	"github.com/elearn-app/elearn/internal/rpc"
)

// ChatService implements the ChatService gRPC service.
type ChatService struct {
	rpc.UnimplementedChatServer
	Deps
}

// NewChatService creates a new chat service.
func NewChatService(d Deps) *ChatService {
	return &ChatService{Deps: d.withDefaults()}
}

// ListChats resolves conversations against the signed-in user, fetching
// the user first when it is not known yet.
func (s *ChatService) ListChats(ctx context.Context, req *rpc.ListRequest) (*rpc.ListChatsResponse, error) {
	var meta rpc.ListMeta
	if !req.Cached {
		if _, ok := s.State.User(); !ok {
			epoch := s.State.Epoch()
			u, err := s.API.Me(ctx)
			if err == nil && !s.State.SetUser(epoch, *u) {
				// Signed out while fetching the user.
				err = listsync.ErrReset
			}
			meta = errMeta(err)
		}
		if meta.ErrorKind == "" {
			_, _ = s.Lists.Chats.Sync(ctx)
		}
	}

	snap := s.Lists.Chats.Snapshot()
	if meta.ErrorKind == "" {
		meta = metaOf(snap)
	}
	views := snap.Items
	resolve.SortChatViews(views)

	now := s.now()
	resp := &rpc.ListChatsResponse{Chats: make([]rpc.ChatSummary, 0, len(views)), ListMeta: meta}
	for _, v := range views {
		sum := rpc.ChatSummary{
			ID:          v.ID,
			WithID:      v.Other.ID,
			With:        v.Other.Name,
			LastMessage: v.LastMessage,
			LastAt:      v.LastAt,
			Unread:      v.Unread,
		}
		if !v.LastAt.IsZero() {
			sum.TimeText = s.Formatter.TimeText(v.LastAt, now)
		}
		resp.Chats = append(resp.Chats, sum)
	}
	resp.TotalUnread = resolve.TotalUnread(views)
	return resp, nil
}

func (s *ChatService) StartChat(ctx context.Context, req *rpc.StartChatRequest) (*rpc.StartChatResponse, error) {
	if err := required("mentor_id", req.MentorID); err != nil {
		return nil, toStatus("start chat", err)
	}
	id, err := s.API.StartPrivateChat(ctx, req.MentorID)
	s.Machine.Observe(err)
	if err != nil {
		return nil, toStatus("start chat", err)
	}
	return &rpc.StartChatResponse{ChatID: id}, nil
}
