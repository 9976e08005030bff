package api

import (
	"context"
	"time"

	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/credentials"
	"github.com/elearn-app/elearn/internal/httpapi"
	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/status"
	"github.com/elearn-app/elearn/internal/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// AccountKey stores the optional account label given at sign-in.
const AccountKey = "account_email"

// SessionService implements the SessionService gRPC service.
type SessionService struct {
	rpc.UnimplementedSessionServer
	Deps

	sessionName string
	apiBaseURL  string
	startedAt   time.Time
	onClear     []func()
}

// NewSessionService creates a new session service.
func NewSessionService(sessionName, apiBaseURL string, d Deps) *SessionService {
	return &SessionService{
		Deps:        d.withDefaults(),
		sessionName: sessionName,
		apiBaseURL:  apiBaseURL,
		startedAt:   time.Now(),
	}
}

// Connect settles the initial state: SignedOut without credentials,
// otherwise Connecting until GET /me answers.
func (s *SessionService) Connect(ctx context.Context) error {
	if _, ok := s.Creds.Get(); !ok {
		s.Logger.Info("no credentials found, signed out")
		return s.Machine.Settle(status.SignedOut)
	}
	_, err := s.connect(ctx)
	return err
}

func (s *SessionService) connect(ctx context.Context) (*rpc.UserView, error) {
	if err := s.Machine.Settle(status.Connecting); err != nil {
		return nil, err
	}
	epoch := s.State.Epoch()
	u, err := s.API.Me(ctx)
	if err != nil {
		s.Logger.Warn("connect failed", zap.String("kind", httpapi.KindName(err)), zap.Error(err))
		if httpapi.Is(err, httpapi.Unauthorized) {
			_ = s.Machine.Settle(status.AuthExpired)
		} else {
			_ = s.Machine.Settle(status.Offline)
		}
		return nil, err
	}
	if !s.State.SetUser(epoch, *u) {
		s.Logger.Info("signed out while connecting", zap.String("user_id", u.ID))
		return nil, nil
	}
	_ = s.Machine.Settle(status.Ready)
	s.Logger.Info("connected", zap.String("user_id", u.ID))
	return userView(*u), nil
}

func (s *SessionService) GetStatus(_ context.Context, _ *rpc.Empty) (*rpc.StatusResponse, error) {
	current := s.Machine.Current()
	resp := &rpc.StatusResponse{
		Session:    s.sessionName,
		State:      string(current),
		Since:      s.Machine.Since(),
		UptimeMs:   time.Since(s.startedAt).Milliseconds(),
		SignedIn:   current.SignedIn(),
		APIBaseURL: s.apiBaseURL,
	}
	if u, ok := s.State.User(); ok {
		resp.User = userView(u)
	}
	if s.DB != nil {
		if account, ok, err := s.DB.GetValue(AccountKey); err == nil && ok {
			resp.Account = account
		}
		states, err := s.DB.ListSyncStates()
		if err != nil {
			s.Logger.Warn("list sync states", zap.Error(err))
		}
		for _, st := range states {
			resp.Lists = append(resp.Lists, rpc.ListState{
				List:          st.List,
				LastSuccessAt: st.LastSuccessAt,
				LastCount:     st.LastCount,
				LastFailureAt: st.LastFailureAt,
				LastErrorKind: st.LastErrorKind,
				LastError:     st.LastError,
			})
		}
	}
	return resp, nil
}

func (s *SessionService) SignIn(ctx context.Context, req *rpc.SignInRequest) (*rpc.SignInResponse, error) {
	if err := required("access_token", req.AccessToken); err != nil {
		return nil, toStatus("sign in", err)
	}
	email, err := validate.Email(req.Email)
	if err != nil {
		return nil, toStatus("sign in", err)
	}

	if s.Machine.Current().SignedIn() {
		s.clear()
		_ = s.Machine.Settle(status.SignedOut)
	}
	if !s.Creds.Set(credentials.Credentials{AccessToken: req.AccessToken, RefreshToken: req.RefreshToken}) {
		return nil, grpcstatus.Error(codes.Internal, "sign in: could not store credentials")
	}
	if s.DB != nil && email != "" {
		if err := s.DB.SetValues(map[string]string{AccountKey: email}); err != nil {
			s.Logger.Warn("store account label", zap.Error(err))
		}
	}
	s.Bus.Emit(bus.KindCredentialsChanged, nil)

	user, err := s.connect(ctx)
	resp := &rpc.SignInResponse{State: string(s.Machine.Current()), User: user}
	if err != nil {
		// The tokens stay stored; the session retries on the next sync.
		resp.ErrorKind = httpapi.KindName(err)
	}
	return resp, nil
}

func (s *SessionService) SignOut(_ context.Context, _ *rpc.Empty) (*rpc.SignOutResponse, error) {
	s.clear()
	if err := s.Machine.Settle(status.SignedOut); err != nil {
		return nil, grpcstatus.Errorf(codes.FailedPrecondition, "sign out: %v", err)
	}
	s.Bus.Emit(bus.KindCredentialsChanged, nil)
	s.Logger.Info("signed out")
	return &rpc.SignOutResponse{State: string(s.Machine.Current())}, nil
}

// OnClear registers f to run whenever the signed-in user's data is dropped.
func (s *SessionService) OnClear(f func()) {
	s.onClear = append(s.onClear, f)
}

// clear forgets everything tied to the signed-in user.
func (s *SessionService) clear() {
	s.Creds.Clear()
	s.State.Reset()
	s.Lists.Reset()
	for _, f := range s.onClear {
		f()
	}
	if s.DB == nil {
		return
	}
	if err := s.DB.DeleteValues(AccountKey); err != nil {
		s.Logger.Warn("clear account label", zap.Error(err))
	}
	if err := s.DB.ClearCartSnapshot(); err != nil {
		s.Logger.Warn("clear cart snapshot", zap.Error(err))
	}
	if err := s.DB.ClearSyncStates(); err != nil {
		s.Logger.Warn("clear sync states", zap.Error(err))
	}
}

func (s *SessionService) WatchEvents(req *rpc.WatchEventsRequest, stream rpc.EventSender) error {
	ch, unsub := s.Bus.Subscribe(req.Namespace, 64)
	defer unsub()

	ctx := stream.Context()
	for {
		select {
		case evt := <-ch:
			if err := stream.Send(eventMessage(evt)); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func eventMessage(evt bus.Event) *rpc.EventMessage {
	m := &rpc.EventMessage{ID: uuid.NewString(), Kind: evt.Kind, Timestamp: evt.Timestamp}
	switch p := evt.Payload.(type) {
	case bus.ListSynced:
		m.List = p.List
		m.Count = p.Count
	case bus.ListSyncFailed:
		m.List = p.List
		m.ErrorKind = httpapi.KindName(p.Err)
		if p.Err != nil {
			m.Error = p.Err.Error()
		}
	case status.StatusChange:
		m.From = string(p.From)
		m.To = string(p.To)
	case bus.NotificationRead:
		m.ItemID = p.ID
	case bus.ProfileUpdated:
		m.ItemID = p.UserID
	}
	return m
}
