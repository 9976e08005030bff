package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ChatService method names.
const (
	ChatListChats = "/elearn.v1.ChatService/ListChats"
	ChatStartChat = "/elearn.v1.ChatService/StartChat"
)

// ChatServer is the server API of ChatService.
type ChatServer interface {
	ListChats(context.Context, *ListRequest) (*ListChatsResponse, error)
	StartChat(context.Context, *StartChatRequest) (*StartChatResponse, error)
}

// UnimplementedChatServer answers Unimplemented to every call.
type UnimplementedChatServer struct{}

func (UnimplementedChatServer) ListChats(context.Context, *ListRequest) (*ListChatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "ListChats not implemented")
}
func (UnimplementedChatServer) StartChat(context.Context, *StartChatRequest) (*StartChatResponse, error) {
	return nil, status.Error(codes.Unimplemented, "StartChat not implemented")
}

// ChatServiceDesc describes ChatService.
var ChatServiceDesc = grpc.ServiceDesc{
	ServiceName: "elearn.v1.ChatService",
	HandlerType: (*ChatServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListChats",
			Handler: unaryHandler(ChatListChats, func(srv any, ctx context.Context, in *ListRequest) (*ListChatsResponse, error) {
				return srv.(ChatServer).ListChats(ctx, in)
			}),
		},
		{
			MethodName: "StartChat",
			Handler: unaryHandler(ChatStartChat, func(srv any, ctx context.Context, in *StartChatRequest) (*StartChatResponse, error) {
				return srv.(ChatServer).StartChat(ctx, in)
			}),
		},
	},
	Metadata: "elearn/v1/chat.json",
}

// RegisterChatServer registers srv on s.
func RegisterChatServer(s grpc.ServiceRegistrar, srv ChatServer) {
	s.RegisterService(&ChatServiceDesc, srv)
}

// ChatClient is the client API of ChatService.
type ChatClient struct {
	cc grpc.ClientConnInterface
}

// NewChatClient creates a client over cc.
func NewChatClient(cc grpc.ClientConnInterface) *ChatClient {
	return &ChatClient{cc: cc}
}

func (c *ChatClient) ListChats(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListChatsResponse, error) {
	return invoke[ListChatsResponse](ctx, c.cc, ChatListChats, in, opts)
}

func (c *ChatClient) StartChat(ctx context.Context, in *StartChatRequest, opts ...grpc.CallOption) (*StartChatResponse, error) {
	return invoke[StartChatResponse](ctx, c.cc, ChatStartChat, in, opts)
}
