package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NotificationService method names.
const (
	NotificationListNotifications = "/elearn.v1.NotificationService/ListNotifications"
	NotificationMarkRead          = "/elearn.v1.NotificationService/MarkRead"
)

// NotificationServer is the server API of NotificationService.
type NotificationServer interface {
	ListNotifications(context.Context, *ListRequest) (*ListNotificationsResponse, error)
	MarkRead(context.Context, *MarkReadRequest) (*MarkReadResponse, error)
}

// UnimplementedNotificationServer answers Unimplemented to every call.
type UnimplementedNotificationServer struct{}

func (UnimplementedNotificationServer) ListNotifications(context.Context, *ListRequest) (*ListNotificationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "ListNotifications not implemented")
}
func (UnimplementedNotificationServer) MarkRead(context.Context, *MarkReadRequest) (*MarkReadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "MarkRead not implemented")
}

// NotificationServiceDesc describes NotificationService.
var NotificationServiceDesc = grpc.ServiceDesc{
	ServiceName: "elearn.v1.NotificationService",
	HandlerType: (*NotificationServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListNotifications",
			Handler: unaryHandler(NotificationListNotifications, func(srv any, ctx context.Context, in *ListRequest) (*ListNotificationsResponse, error) {
				return srv.(NotificationServer).ListNotifications(ctx, in)
			}),
		},
		{
			MethodName: "MarkRead",
			Handler: unaryHandler(NotificationMarkRead, func(srv any, ctx context.Context, in *MarkReadRequest) (*MarkReadResponse, error) {
				return srv.(NotificationServer).MarkRead(ctx, in)
			}),
		},
	},
	Metadata: "elearn/v1/notification.json",
}

// RegisterNotificationServer registers srv on s.
func RegisterNotificationServer(s grpc.ServiceRegistrar, srv NotificationServer) {
	s.RegisterService(&NotificationServiceDesc, srv)
}

// NotificationClient is the client API of NotificationService.
type NotificationClient struct {
	cc grpc.ClientConnInterface
}

// NewNotificationClient creates a client over cc.
func NewNotificationClient(cc grpc.ClientConnInterface) *NotificationClient {
	return &NotificationClient{cc: cc}
}

func (c *NotificationClient) ListNotifications(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListNotificationsResponse, error) {
	return invoke[ListNotificationsResponse](ctx, c.cc, NotificationListNotifications, in, opts)
}

func (c *NotificationClient) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*MarkReadResponse, error) {
	return invoke[MarkReadResponse](ctx, c.cc, NotificationMarkRead, in, opts)
}
