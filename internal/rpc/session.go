package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SessionService method names.
const (
	SessionGetStatus   = "/elearn.v1.SessionService/GetStatus"
	SessionSignIn      = "/elearn.v1.SessionService/SignIn"
	SessionSignOut     = "/elearn.v1.SessionService/SignOut"
	SessionWatchEvents = "/elearn.v1.SessionService/WatchEvents"
)

// SessionServer is the server API of SessionService.
type SessionServer interface {
	GetStatus(context.Context, *Empty) (*StatusResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	SignOut(context.Context, *Empty) (*SignOutResponse, error)
	WatchEvents(*WatchEventsRequest, EventSender) error
}

// EventSender is the server side of a WatchEvents stream.
type EventSender interface {
	Send(*EventMessage) error
	Context() context.Context
}

// UnimplementedSessionServer answers Unimplemented to every call.
type UnimplementedSessionServer struct{}

func (UnimplementedSessionServer) GetStatus(context.Context, *Empty) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "GetStatus not implemented")
}
func (UnimplementedSessionServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, status.Error(codes.Unimplemented, "SignIn not implemented")
}
func (UnimplementedSessionServer) SignOut(context.Context, *Empty) (*SignOutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "SignOut not implemented")
}
func (UnimplementedSessionServer) WatchEvents(*WatchEventsRequest, EventSender) error {
	return status.Error(codes.Unimplemented, "WatchEvents not implemented")
}

type eventServerStream struct {
	grpc.ServerStream
}

func (s *eventServerStream) Send(m *EventMessage) error { return s.SendMsg(m) }

func watchEventsHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchEventsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(SessionServer).WatchEvents(in, &eventServerStream{stream})
}

// SessionServiceDesc describes SessionService.
var SessionServiceDesc = grpc.ServiceDesc{
	ServiceName: "elearn.v1.SessionService",
	HandlerType: (*SessionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetStatus",
			Handler: unaryHandler(SessionGetStatus, func(srv any, ctx context.Context, in *Empty) (*StatusResponse, error) {
				return srv.(SessionServer).GetStatus(ctx, in)
			}),
		},
		{
			MethodName: "SignIn",
			Handler: unaryHandler(SessionSignIn, func(srv any, ctx context.Context, in *SignInRequest) (*SignInResponse, error) {
				return srv.(SessionServer).SignIn(ctx, in)
			}),
		},
		{
			MethodName: "SignOut",
			Handler: unaryHandler(SessionSignOut, func(srv any, ctx context.Context, in *Empty) (*SignOutResponse, error) {
				return srv.(SessionServer).SignOut(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchEvents",
			Handler:       watchEventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "elearn/v1/session.json",
}

// RegisterSessionServer registers srv on s.
func RegisterSessionServer(s grpc.ServiceRegistrar, srv SessionServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}

// SessionClient is the client API of SessionService.
type SessionClient struct {
	cc grpc.ClientConnInterface
}

// NewSessionClient creates a client over cc.
func NewSessionClient(cc grpc.ClientConnInterface) *SessionClient {
	return &SessionClient{cc: cc}
}

func (c *SessionClient) GetStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, SessionGetStatus, in, opts)
}

func (c *SessionClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInResponse](ctx, c.cc, SessionSignIn, in, opts)
}

func (c *SessionClient) SignOut(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, SessionSignOut, in, opts)
}

// EventReceiver is the client side of a WatchEvents stream.
type EventReceiver interface {
	Recv() (*EventMessage, error)
	grpc.ClientStream
}

type eventClientStream struct {
	grpc.ClientStream
}

func (s *eventClientStream) Recv() (*EventMessage, error) {
	m := new(EventMessage)
	if err := s.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// WatchEvents streams daemon events until ctx is done.
func (c *SessionClient) WatchEvents(ctx context.Context, in *WatchEventsRequest, opts ...grpc.CallOption) (EventReceiver, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &SessionServiceDesc.Streams[0], SessionWatchEvents, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &eventClientStream{stream}, nil
}
