package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ContentService method names.
const (
	ContentListMentors = "/elearn.v1.ContentService/ListMentors"
	ContentGetFAQ      = "/elearn.v1.ContentService/GetFAQ"
)

// ContentServer is the server API of ContentService.
type ContentServer interface {
	ListMentors(context.Context, *ListRequest) (*ListMentorsResponse, error)
	GetFAQ(context.Context, *ListRequest) (*FAQResponse, error)
}

// UnimplementedContentServer answers Unimplemented to every call.
type UnimplementedContentServer struct{}

func (UnimplementedContentServer) ListMentors(context.Context, *ListRequest) (*ListMentorsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "ListMentors not implemented")
}
func (UnimplementedContentServer) GetFAQ(context.Context, *ListRequest) (*FAQResponse, error) {
	return nil, status.Error(codes.Unimplemented, "GetFAQ not implemented")
}

// ContentServiceDesc describes ContentService.
var ContentServiceDesc = grpc.ServiceDesc{
	ServiceName: "elearn.v1.ContentService",
	HandlerType: (*ContentServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListMentors",
			Handler: unaryHandler(ContentListMentors, func(srv any, ctx context.Context, in *ListRequest) (*ListMentorsResponse, error) {
				return srv.(ContentServer).ListMentors(ctx, in)
			}),
		},
		{
			MethodName: "GetFAQ",
			Handler: unaryHandler(ContentGetFAQ, func(srv any, ctx context.Context, in *ListRequest) (*FAQResponse, error) {
				return srv.(ContentServer).GetFAQ(ctx, in)
			}),
		},
	},
	Metadata: "elearn/v1/content.json",
}

// RegisterContentServer registers srv on s.
func RegisterContentServer(s grpc.ServiceRegistrar, srv ContentServer) {
	s.RegisterService(&ContentServiceDesc, srv)
}

// ContentClient is the client API of ContentService.
type ContentClient struct {
	cc grpc.ClientConnInterface
}

// NewContentClient creates a client over cc.
func NewContentClient(cc grpc.ClientConnInterface) *ContentClient {
	return &ContentClient{cc: cc}
}

func (c *ContentClient) ListMentors(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListMentorsResponse, error) {
	return invoke[ListMentorsResponse](ctx, c.cc, ContentListMentors, in, opts)
}

func (c *ContentClient) GetFAQ(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*FAQResponse, error) {
	return invoke[FAQResponse](ctx, c.cc, ContentGetFAQ, in, opts)
}
