package api

import (
	"context"

	"github.com/elearn-app/elearn/internal/rpc"
)

// ContentService implements the ContentService gRPC service: mentors and
// the FAQ page. Both are readable while signed out.
type ContentService struct {
	rpc.UnimplementedContentServer
	Deps
}

// NewContentService creates a new content service.
func NewContentService(d Deps) *ContentService {
	return &ContentService{Deps: d.withDefaults()}
}

func (s *ContentService) ListMentors(ctx context.Context, req *rpc.ListRequest) (*rpc.ListMentorsResponse, error) {
	if !req.Cached {
		_, _ = s.Lists.Mentors.Sync(ctx)
	}
	snap := s.Lists.Mentors.Snapshot()
	resp := &rpc.ListMentorsResponse{Mentors: make([]rpc.MentorView, 0, len(snap.Items)), ListMeta: metaOf(snap)}
	for _, m := range snap.Items {
		resp.Mentors = append(resp.Mentors, mentorView(m))
	}
	return resp, nil
}

func (s *ContentService) GetFAQ(ctx context.Context, req *rpc.ListRequest) (*rpc.FAQResponse, error) {
	if !req.Cached {
		_, _ = s.Lists.FAQ.Sync(ctx)
	}
	snap := s.Lists.FAQ.Snapshot()
	resp := &rpc.FAQResponse{Items: make([]rpc.FAQItem, 0, len(snap.Items)), ListMeta: metaOf(snap)}
	for _, f := range snap.Items {
		resp.Items = append(resp.Items, rpc.FAQItem{Question: f.Question, Answer: f.Answer})
	}
	return resp, nil
}
