package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProfileService method names.
const (
	ProfileGetProfile   = "/elearn.v1.ProfileService/GetProfile"
	ProfileUpdateName   = "/elearn.v1.ProfileService/UpdateName"
	ProfileListWishlist = "/elearn.v1.ProfileService/ListWishlist"
	ProfileGetCart      = "/elearn.v1.ProfileService/GetCart"
)

// ProfileServer is the server API of ProfileService.
type ProfileServer interface {
	GetProfile(context.Context, *ListRequest) (*ProfileResponse, error)
	UpdateName(context.Context, *UpdateNameRequest) (*ProfileResponse, error)
	ListWishlist(context.Context, *ListRequest) (*ListWishlistResponse, error)
	GetCart(context.Context, *ListRequest) (*CartResponse, error)
}

// UnimplementedProfileServer answers Unimplemented to every call.
type UnimplementedProfileServer struct{}

func (UnimplementedProfileServer) GetProfile(context.Context, *ListRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "GetProfile not implemented")
}
func (UnimplementedProfileServer) UpdateName(context.Context, *UpdateNameRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "UpdateName not implemented")
}
func (UnimplementedProfileServer) ListWishlist(context.Context, *ListRequest) (*ListWishlistResponse, error) {
	return nil, status.Error(codes.Unimplemented, "ListWishlist not implemented")
}
func (UnimplementedProfileServer) GetCart(context.Context, *ListRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "GetCart not implemented")
}

// ProfileServiceDesc describes ProfileService.
var ProfileServiceDesc = grpc.ServiceDesc{
	ServiceName: "elearn.v1.ProfileService",
	HandlerType: (*ProfileServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProfile",
			Handler: unaryHandler(ProfileGetProfile, func(srv any, ctx context.Context, in *ListRequest) (*ProfileResponse, error) {
				return srv.(ProfileServer).GetProfile(ctx, in)
			}),
		},
		{
			MethodName: "UpdateName",
			Handler: unaryHandler(ProfileUpdateName, func(srv any, ctx context.Context, in *UpdateNameRequest) (*ProfileResponse, error) {
				return srv.(ProfileServer).UpdateName(ctx, in)
			}),
		},
		{
			MethodName: "ListWishlist",
			Handler: unaryHandler(ProfileListWishlist, func(srv any, ctx context.Context, in *ListRequest) (*ListWishlistResponse, error) {
				return srv.(ProfileServer).ListWishlist(ctx, in)
			}),
		},
		{
			MethodName: "GetCart",
			Handler: unaryHandler(ProfileGetCart, func(srv any, ctx context.Context, in *ListRequest) (*CartResponse, error) {
				return srv.(ProfileServer).GetCart(ctx, in)
			}),
		},
	},
	Metadata: "elearn/v1/profile.json",
}

// RegisterProfileServer registers srv on s.
func RegisterProfileServer(s grpc.ServiceRegistrar, srv ProfileServer) {
	s.RegisterService(&ProfileServiceDesc, srv)
}

// ProfileClient is the client API of ProfileService.
type ProfileClient struct {
	cc grpc.ClientConnInterface
}

// NewProfileClient creates a client over cc.
func NewProfileClient(cc grpc.ClientConnInterface) *ProfileClient {
	return &ProfileClient{cc: cc}
}

func (c *ProfileClient) GetProfile(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, ProfileGetProfile, in, opts)
}

func (c *ProfileClient) UpdateName(ctx context.Context, in *UpdateNameRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, ProfileUpdateName, in, opts)
}

func (c *ProfileClient) ListWishlist(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListWishlistResponse, error) {
	return invoke[ListWishlistResponse](ctx, c.cc, ProfileListWishlist, in, opts)
}

func (c *ProfileClient) GetCart(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return invoke[CartResponse](ctx, c.cc, ProfileGetCart, in, opts)
}
