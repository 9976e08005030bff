// Package backendtest provides a scriptable fake of the e-learning backend
// for tests.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Request is a call received by the fake.
type Request struct {
	Method       string
	Path         string
	AccessToken  string
	RefreshToken string
	Body         map[string]any
}

type reply struct {
	status int
	body   []byte
}

// Server is an httptest server answering with canned replies. Unknown
// routes answer 404.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string]reply
	gates    map[string]chan struct{}
	requests []Request
}

// New starts a fake backend closed at test cleanup.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{replies: make(map[string]reply), gates: make(map[string]chan struct{})}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Hold makes calls to method+path wait until release is called. The
// request is recorded as soon as it arrives. Release is idempotent and is
// also called at test cleanup.
func (s *Server) Hold(t testing.TB, method, path string) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gates[method+" "+path] = gate
	s.mu.Unlock()
	var once sync.Once
	release = func() { once.Do(func() { close(gate) }) }
	t.Cleanup(release)
	return release
}

// Reply sets the JSON answered to method+path. body may be a string of raw
// JSON or any value to marshal.
func (s *Server) Reply(method, path string, status int, body any) {
	var data []byte
	switch b := body.(type) {
	case string:
		data = []byte(b)
	case nil:
	default:
		var err error
		if data, err = json.Marshal(b); err != nil {
			panic(err)
		}
	}
	s.mu.Lock()
	s.replies[method+" "+path] = reply{status: status, body: data}
	s.mu.Unlock()
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many calls matched method+path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	req := Request{
		Method:       r.Method,
		Path:         r.URL.Path,
		AccessToken:  r.Header.Get("access-token"),
		RefreshToken: r.Header.Get("refresh-token"),
	}
	if data, _ := io.ReadAll(r.Body); len(strings.TrimSpace(string(data))) > 0 {
		_ = json.Unmarshal(data, &req.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	rep, ok := s.replies[r.Method+" "+r.URL.Path]
	gate := s.gates[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"route not found"}`))
		return
	}
	w.WriteHeader(rep.status)
	_, _ = w.Write(rep.body)
}
