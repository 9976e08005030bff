package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CourseService method names.
const (
	CourseListCourses    = "/elearn.v1.CourseService/ListCourses"
	CourseAddAnswer      = "/elearn.v1.CourseService/AddAnswer"
	CourseGetCertificate = "/elearn.v1.CourseService/GetCertificate"
)

// CourseServer is the server API of CourseService.
type CourseServer interface {
	ListCourses(context.Context, *ListRequest) (*ListCoursesResponse, error)
	AddAnswer(context.Context, *AddAnswerRequest) (*Empty, error)
	GetCertificate(context.Context, *GetCertificateRequest) (*CertificateResponse, error)
}

// UnimplementedCourseServer answers Unimplemented to every call.
type UnimplementedCourseServer struct{}

func (UnimplementedCourseServer) ListCourses(context.Context, *ListRequest) (*ListCoursesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "ListCourses not implemented")
}
func (UnimplementedCourseServer) AddAnswer(context.Context, *AddAnswerRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "AddAnswer not implemented")
}
func (UnimplementedCourseServer) GetCertificate(context.Context, *GetCertificateRequest) (*CertificateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "GetCertificate not implemented")
}

// CourseServiceDesc describes CourseService.
var CourseServiceDesc = grpc.ServiceDesc{
	ServiceName: "elearn.v1.CourseService",
	HandlerType: (*CourseServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListCourses",
			Handler: unaryHandler(CourseListCourses, func(srv any, ctx context.Context, in *ListRequest) (*ListCoursesResponse, error) {
				return srv.(CourseServer).ListCourses(ctx, in)
			}),
		},
		{
			MethodName: "AddAnswer",
			Handler: unaryHandler(CourseAddAnswer, func(srv any, ctx context.Context, in *AddAnswerRequest) (*Empty, error) {
				return srv.(CourseServer).AddAnswer(ctx, in)
			}),
		},
		{
			MethodName: "GetCertificate",
			Handler: unaryHandler(CourseGetCertificate, func(srv any, ctx context.Context, in *GetCertificateRequest) (*CertificateResponse, error) {
				return srv.(CourseServer).GetCertificate(ctx, in)
			}),
		},
	},
	Metadata: "elearn/v1/course.json",
}

// RegisterCourseServer registers srv on s.
func RegisterCourseServer(s grpc.ServiceRegistrar, srv CourseServer) {
	s.RegisterService(&CourseServiceDesc, srv)
}

// CourseClient is the client API of CourseService.
type CourseClient struct {
	cc grpc.ClientConnInterface
}

// NewCourseClient creates a client over cc.
func NewCourseClient(cc grpc.ClientConnInterface) *CourseClient {
	return &CourseClient{cc: cc}
}

func (c *CourseClient) ListCourses(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListCoursesResponse, error) {
	return invoke[ListCoursesResponse](ctx, c.cc, CourseListCourses, in, opts)
}

func (c *CourseClient) AddAnswer(ctx context.Context, in *AddAnswerRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, CourseAddAnswer, in, opts)
}

func (c *CourseClient) GetCertificate(ctx context.Context, in *GetCertificateRequest, opts ...grpc.CallOption) (*CertificateResponse, error) {
	return invoke[CertificateResponse](ctx, c.cc, CourseGetCertificate, in, opts)
}
