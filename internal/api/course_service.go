package api

import (
	"context"
	"sync"

	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/resolve"
	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/validate"
	"go.uber.org/zap"
)

// CourseService implements the CourseService gRPC service.
type CourseService struct {
	rpc.UnimplementedCourseServer
	Deps
}

// NewCourseService creates a new course service.
func NewCourseService(d Deps) *CourseService {
	return &CourseService{Deps: d.withDefaults()}
}

// ListCourses syncs the catalogue and the progress records side by side and
// splits the catalogue into the Complete and Incomplete tabs.
func (s *CourseService) ListCourses(ctx context.Context, req *rpc.ListRequest) (*rpc.ListCoursesResponse, error) {
	if !req.Cached {
		epoch := s.State.Epoch()
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Lists.Courses.Sync(ctx)
		}()
		go func() {
			defer wg.Done()
			if records, err := s.Lists.Progress.Sync(ctx); err == nil {
				s.State.SetProgress(epoch, resolve.BuildProgressCache(records))
			}
		}()
		wg.Wait()
	}

	courses := s.Lists.Courses.Snapshot()
	progress := s.Lists.Progress.Snapshot()
	cache := s.State.Progress()

	resp := &rpc.ListCoursesResponse{
		All:      make([]rpc.CourseView, 0, len(courses.Items)),
		ListMeta: metaOf(courses),
		Progress: metaOf(progress),
	}
	complete, incomplete := resolve.PartitionCourses(courses.Items, cache, progress.Items)
	view := func(c backend.Course) rpc.CourseView {
		v := courseView(c)
		v.Complete, v.Started = resolve.Completion(c.ID, cache, progress.Items)
		v.Wishlisted = s.State.InWishlist(c.ID)
		if ratio, ok := cache[c.ID]; ok {
			v.Progress = ratio
		} else if v.Complete {
			v.Progress = 1
		}
		return v
	}
	for _, c := range courses.Items {
		resp.All = append(resp.All, view(c))
	}
	resp.Complete = make([]rpc.CourseView, 0, len(complete))
	for _, c := range complete {
		resp.Complete = append(resp.Complete, view(c))
	}
	resp.Incomplete = make([]rpc.CourseView, 0, len(incomplete))
	for _, c := range incomplete {
		resp.Incomplete = append(resp.Incomplete, view(c))
	}
	return resp, nil
}

func (s *CourseService) AddAnswer(ctx context.Context, req *rpc.AddAnswerRequest) (*rpc.Empty, error) {
	form, err := validate.AnswerForm(validate.Answer{
		Answer:     req.Answer,
		CourseID:   req.CourseID,
		ContentID:  req.ContentID,
		QuestionID: req.QuestionID,
	})
	if err != nil {
		return nil, toStatus("add answer", err)
	}
	err = s.API.AddAnswer(ctx, backend.Answer{
		Answer:     form.Answer,
		CourseID:   form.CourseID,
		ContentID:  form.ContentID,
		QuestionID: form.QuestionID,
	})
	s.Machine.Observe(err)
	if err != nil {
		s.Logger.Warn("add answer failed", zap.String("course_id", form.CourseID), zap.Error(err))
		return nil, toStatus("add answer", err)
	}
	return &rpc.Empty{}, nil
}

func (s *CourseService) GetCertificate(ctx context.Context, req *rpc.GetCertificateRequest) (*rpc.CertificateResponse, error) {
	if err := required("course_id", req.CourseID); err != nil {
		return nil, toStatus("get certificate", err)
	}
	cert, err := s.API.Certificate(ctx, req.CourseID)
	s.Machine.Observe(err)
	if err != nil {
		return nil, toStatus("get certificate", err)
	}
	return &rpc.CertificateResponse{ID: cert.ID, CourseID: cert.CourseID, URL: cert.URL}, nil
}
