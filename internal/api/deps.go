// Package api implements the daemon's gRPC services on top of the backend
// client, the list synchronizers and the shared client state.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/elearn-app/elearn/internal/appstate"
	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/credentials"
	"github.com/elearn-app/elearn/internal/httpapi"
	"github.com/elearn-app/elearn/internal/listsync"
	"github.com/elearn-app/elearn/internal/logging"
	"github.com/elearn-app/elearn/internal/resolve"
	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/status"
	"github.com/elearn-app/elearn/internal/store"
	"github.com/elearn-app/elearn/internal/validate"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	API       *backend.API
	Creds     *credentials.Accessor
	State     *appstate.State
	Lists     *Lists
	Machine   *status.Machine
	Bus       *bus.Bus
	DB        *store.DB
	Formatter resolve.Formatter
	Logger    *zap.Logger
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	d.Logger = logging.OrNop(d.Logger)
	return d
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// toStatus maps a failed operation onto a gRPC status.
func toStatus(op string, err error) error {
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		return grpcstatus.Error(codes.InvalidArgument, verr.Error())
	}
	if errors.Is(err, context.Canceled) {
		return grpcstatus.Errorf(codes.Canceled, "%s: %v", op, err)
	}
	switch k, _ := httpapi.KindOf(err); k {
	case httpapi.Unauthorized:
		return grpcstatus.Errorf(codes.Unauthenticated, "%s: %v", op, err)
	case httpapi.NetworkUnreachable:
		return grpcstatus.Errorf(codes.Unavailable, "%s: %v", op, err)
	default:
		return grpcstatus.Errorf(codes.Internal, "%s: %v", op, err)
	}
}

func required(field, value string) error {
	if value == "" {
		return &validate.ValidationError{Fields: []validate.FieldError{{Field: field, Message: "is required"}}}
	}
	return nil
}

func metaOf[T any](s listsync.Snapshot[T]) rpc.ListMeta {
	m := rpc.ListMeta{SyncedAt: s.SyncedAt, Empty: s.Empty()}
	if s.Err != nil {
		m.ErrorKind = httpapi.KindName(s.Err)
		m.Error = s.Err.Error()
	}
	return m
}

func errMeta(err error) rpc.ListMeta {
	if err == nil {
		return rpc.ListMeta{}
	}
	return rpc.ListMeta{ErrorKind: httpapi.KindName(err), Error: err.Error()}
}
