package client

import (
	"fmt"

	"github.com/elearn-app/elearn/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client wraps gRPC connections to the daemon.
type Client struct {
	conn         *grpc.ClientConn
	Session      *rpc.SessionClient
	Course       *rpc.CourseClient
	Chat         *rpc.ChatClient
	Notification *rpc.NotificationClient
	Profile      *rpc.ProfileClient
	Content      *rpc.ContentClient
}

// New dials the daemon's Unix domain socket and returns typed service clients.
func New(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient(
		"unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}

	return &Client{
		conn:         conn,
		Session:      rpc.NewSessionClient(conn),
		Course:       rpc.NewCourseClient(conn),
		Chat:         rpc.NewChatClient(conn),
		Notification: rpc.NewNotificationClient(conn),
		Profile:      rpc.NewProfileClient(conn),
		Content:      rpc.NewContentClient(conn),
	}, nil
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
