package daemon

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elearn-app/elearn/internal/api"
	"github.com/elearn-app/elearn/internal/appstate"
	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/backend/backendtest"
	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/config"
	"github.com/elearn-app/elearn/internal/credentials"
	"github.com/elearn-app/elearn/internal/httpapi"
	"github.com/elearn-app/elearn/internal/listsync"
	"github.com/elearn-app/elearn/internal/lock"
	"github.com/elearn-app/elearn/internal/rpc"
	"github.com/elearn-app/elearn/internal/status"
	"github.com/elearn-app/elearn/internal/store"
	"github.com/elearn-app/elearn/internal/tui/client"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// shortTempDir keeps socket paths under the 104-char Unix socket limit.
func shortTempDir(t *testing.T, pattern string) string {
	t.Helper()
	dir, err := os.MkdirTemp("/tmp", pattern)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return dir
}

type harness struct {
	backend *backendtest.Server
	deps    api.Deps
	session *api.SessionService
	client  *client.Client
}

// startHarness serves every service over a Unix socket, backed by a fake
// backend and a real store.
func startHarness(t *testing.T) *harness {
	t.Helper()
	dir := shortTempDir(t, "elearn-test-*")

	lk, err := lock.Acquire(dir, "test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = lk.Release() })

	db, err := store.Open(filepath.Join(dir, "elearn.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	fake := backendtest.New(t)
	b := bus.New()
	creds := credentials.NewAccessor(db, nil)
	backendAPI := backend.New(httpapi.New(httpapi.Options{BaseURL: fake.URL, Timeout: 2 * time.Second}), creds)
	state := appstate.New()
	d := api.Deps{
		API:     backendAPI,
		Creds:   creds,
		State:   state,
		Lists:   api.NewLists(backendAPI, state, formatter(config.Default()), listsync.Options{Bus: b, Recorder: db}),
		Machine: status.NewMachine(b),
		Bus:     b,
		DB:      db,
	}
	sessionSvc := api.NewSessionService("test", fake.URL, d)
	notificationSvc := api.NewNotificationService(d)
	sessionSvc.OnClear(notificationSvc.Reset)

	srv, err := NewServer(
		Params{SessionName: "test", SocketPath: filepath.Join(dir, "d.sock")},
		zap.NewNop(),
		sessionSvc,
		api.NewCourseService(d),
		api.NewChatService(d),
		notificationSvc,
		api.NewProfileService(d),
		api.NewContentService(d),
	)
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = srv.Start() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	c, err := client.New(srv.socketPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })

	return &harness{backend: fake, deps: d, session: sessionSvc, client: c}
}

const meJSON = `{"success":true,"user":{"_id":"u1","name":"Ada","email":"ada@example.com","role":"user","courses":[]}}`

func TestDaemonLifecycle(t *testing.T) {
	h := startHarness(t)
	ctx := context.Background()

	resp, err := h.client.Session.GetStatus(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("GetStatus error = %v", err)
	}
	if resp.Session != "test" || resp.State != string(status.Booting) || resp.SignedIn {
		t.Errorf("status = %+v", resp)
	}

	h.backend.Reply(http.MethodGet, "/me", 200, meJSON)
	signIn, err := h.client.Session.SignIn(ctx, &rpc.SignInRequest{AccessToken: "acc", RefreshToken: "ref", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("SignIn error = %v", err)
	}
	if signIn.State != string(status.Ready) || signIn.User == nil || signIn.User.Name != "Ada" {
		t.Errorf("SignIn = %+v", signIn)
	}

	h.backend.Reply(http.MethodGet, "/get-courses", 200, `{"courses":[{"_id":"c1","name":"Go"},{"_id":"c2","name":"SQL"}]}`)
	h.backend.Reply(http.MethodGet, "/user/progress", 200, `{"response":{"progress":[{"courseId":"c1","chapters":[{"chapterId":"a","isCompleted":true}]}]}}`)
	courses, err := h.client.Course.ListCourses(ctx, &rpc.ListRequest{})
	if err != nil {
		t.Fatalf("ListCourses error = %v", err)
	}
	if len(courses.Complete) != 1 || courses.Complete[0].ID != "c1" || len(courses.Incomplete) != 0 {
		t.Errorf("courses = %+v", courses)
	}

	for _, r := range h.backend.Requests() {
		if r.AccessToken != "acc" || r.RefreshToken != "ref" {
			t.Errorf("%s sent tokens %q/%q", r.Path, r.AccessToken, r.RefreshToken)
		}
	}

	st, err := h.client.Session.GetStatus(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if st.Account != "ada@example.com" || st.User == nil || len(st.Lists) != 2 {
		t.Errorf("status after sync = %+v", st)
	}

	out, err := h.client.Session.SignOut(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("SignOut error = %v", err)
	}
	if out.State != string(status.SignedOut) {
		t.Errorf("SignOut state = %s", out.State)
	}
	if _, ok := h.deps.Creds.Get(); ok {
		t.Error("credentials kept after sign-out")
	}
	cached, err := h.client.Course.ListCourses(ctx, &rpc.ListRequest{Cached: true})
	if err != nil || len(cached.All) != 0 {
		t.Errorf("courses after sign-out = %+v, %v", cached, err)
	}
}

func TestListsReportStaleInsteadOfFailing(t *testing.T) {
	h := startHarness(t)
	h.backend.Reply(http.MethodGet, "/all", 200, `{"success":true,"mentors":[{"_id":"m1","name":"Grace"}]}`)

	ctx := context.Background()
	if _, err := h.client.Content.ListMentors(ctx, &rpc.ListRequest{}); err != nil {
		t.Fatal(err)
	}
	h.backend.Reply(http.MethodGet, "/all", 500, `{"message":"boom"}`)
	resp, err := h.client.Content.ListMentors(ctx, &rpc.ListRequest{})
	if err != nil {
		t.Fatalf("ListMentors error = %v, want stale list", err)
	}
	if len(resp.Mentors) != 1 || resp.ErrorKind != "server_error" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestValidationMapsToInvalidArgument(t *testing.T) {
	h := startHarness(t)
	ctx := context.Background()

	_, err := h.client.Profile.UpdateName(ctx, &rpc.UpdateNameRequest{Name: "x"})
	if code := grpcstatus.Code(err); code != codes.InvalidArgument {
		t.Errorf("UpdateName code = %s, want InvalidArgument", code)
	}
	_, err = h.client.Session.SignIn(ctx, &rpc.SignInRequest{})
	if code := grpcstatus.Code(err); code != codes.InvalidArgument {
		t.Errorf("SignIn code = %s, want InvalidArgument", code)
	}

	h.backend.Reply(http.MethodPost, "/user/get-certificate", 401, `{"message":"Please login"}`)
	_, err = h.client.Course.GetCertificate(ctx, &rpc.GetCertificateRequest{CourseID: "c1"})
	if code := grpcstatus.Code(err); code != codes.Unauthenticated {
		t.Errorf("GetCertificate code = %s, want Unauthenticated", code)
	}
}

func TestWatchEventsStreamsStatusChanges(t *testing.T) {
	h := startHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := h.client.Session.WatchEvents(ctx, &rpc.WatchEventsRequest{Namespace: "session."})
	if err != nil {
		t.Fatal(err)
	}
	// The subscription is registered when the handler starts; retry until
	// the event arrives.
	received := make(chan *rpc.EventMessage, 1)
	go func() {
		evt, err := stream.Recv()
		if err == nil {
			received <- evt
		}
	}()

	deadline := time.After(2 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case evt := <-received:
			if evt.Kind != bus.KindSessionStatusChange && evt.Kind != bus.KindCredentialsChanged {
				t.Errorf("event = %+v", evt)
			}
			if evt.ID == "" {
				t.Error("event without id")
			}
			return
		case <-tick.C:
			h.deps.Bus.Emit(bus.KindSessionStatusChange, status.StatusChange{From: status.Booting, To: status.SignedOut})
		case <-deadline:
			t.Fatal("no event received")
		}
	}
}

// TestStatusSignedOutWithoutCredentials verifies the daemon leaves BOOTING
// when no tokens are stored.
func TestStatusSignedOutWithoutCredentials(t *testing.T) {
	h := startHarness(t)
	if err := h.session.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	resp, err := h.client.Session.GetStatus(context.Background(), &rpc.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.State != string(status.SignedOut) {
		t.Errorf("state = %s, want SIGNED_OUT", resp.State)
	}
}

func TestConnectWithExpiredTokens(t *testing.T) {
	h := startHarness(t)
	h.deps.Creds.Set(credentials.Credentials{AccessToken: "old"})
	h.backend.Reply(http.MethodGet, "/me", 403, `{"message":"Access token expired"}`)

	if err := h.session.Connect(context.Background()); !httpapi.Is(err, httpapi.Unauthorized) {
		t.Fatalf("Connect() error = %v, want unauthorized", err)
	}
	if got := h.deps.Machine.Current(); got != status.AuthExpired {
		t.Errorf("state = %s, want AUTH_EXPIRED", got)
	}
}

// TestFxModuleWiring verifies the fx dependency graph resolves and the
// daemon starts, serves and stops.
func TestFxModuleWiring(t *testing.T) {
	home := shortTempDir(t, "elearn-fx-*")
	t.Setenv("ELEARN_HOME", home)
	fake := backendtest.New(t)

	cfg := config.Default()
	cfg.APIBaseURL = fake.URL
	p := Params{SessionName: "fxtest", SocketPath: filepath.Join(home, "d.sock"), Config: cfg}

	app := fx.New(Module(p), fx.NopLogger)
	if err := app.Err(); err != nil {
		t.Fatalf("fx graph error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	c, err := client.New(p.SocketPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := c.Session.GetStatus(ctx, &rpc.Empty{})
		if err == nil && resp.State == string(status.SignedOut) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("daemon never settled: %+v, %v", resp, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := app.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if _, err := os.Stat(p.SocketPath); !os.IsNotExist(err) {
		t.Errorf("socket left behind: %v", err)
	}
}

func TestNewServerCleansStaleSocket(t *testing.T) {
	dir := shortTempDir(t, "elearn-sock-*")
	socketPath := filepath.Join(dir, "d.sock")
	l, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatal(err)
	}
	// Leave the file behind as a crashed daemon would.
	if ul, ok := l.(*net.UnixListener); ok {
		ul.SetUnlinkOnClose(false)
	}
	_ = l.Close()

	d := api.Deps{Machine: status.NewMachine(nil), State: appstate.New()}
	srv, err := NewServer(
		Params{SessionName: "x", SocketPath: socketPath},
		zap.NewNop(),
		api.NewSessionService("x", "", d),
		api.NewCourseService(d),
		api.NewChatService(d),
		api.NewNotificationService(d),
		api.NewProfileService(d),
		api.NewContentService(d),
	)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	info, err := os.Stat(socketPath)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("socket permission = %o, want 0600", perm)
	}
	srv.Stop(context.Background())
}
