package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/elearn-app/elearn/internal/credentials"
)

type coursesBody struct {
	Courses []struct {
		ID   string `json:"_id" validate:"required"`
		Name string `json:"name"`
	} `json:"courses" validate:"required,dive"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL + "/api/v1/", Timeout: 2 * time.Second})
}

func TestDoAttachesCredentialHeaders(t *testing.T) {
	var got http.Header
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"courses":[]}`))
	})

	var out coursesBody
	creds := &credentials.Credentials{AccessToken: "acc", RefreshToken: "ref"}
	if err := c.Do(context.Background(), http.MethodGet, "/get-courses", nil, creds, &out); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if gotPath != "/api/v1/get-courses" {
		t.Errorf("path = %q", gotPath)
	}
	if got.Get(HeaderAccessToken) != "acc" || got.Get(HeaderRefreshToken) != "ref" {
		t.Errorf("credential headers = %q/%q", got.Get(HeaderAccessToken), got.Get(HeaderRefreshToken))
	}
	if got.Get(HeaderRequestID) == "" {
		t.Error("missing request id header")
	}
	if out.Courses == nil || len(out.Courses) != 0 {
		t.Errorf("courses = %#v, want empty non-nil", out.Courses)
	}
}

func TestDoAnonymousOmitsCredentialHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header[http.CanonicalHeaderKey(HeaderAccessToken)]; ok {
			t.Error("access-token header sent on anonymous request")
		}
		_, _ = w.Write([]byte(`{}`))
	})
	if err := c.Do(context.Background(), http.MethodGet, "/get-layout/FAQ", nil, nil, nil); err != nil {
		t.Fatal(err)
	}
}

func TestDoSendsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["mentorId"] != "m1" {
			t.Errorf("body = %v", body)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	err := c.Do(context.Background(), http.MethodPost, "/chat/private", map[string]string{"mentorId": "m1"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
}

func TestDoClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"401", http.StatusUnauthorized, `{"message":"unauthorized"}`, Unauthorized},
		{"expired token on 400", http.StatusBadRequest, `{"success":false,"message":"Access token is expired"}`, Unauthorized},
		{"403 plain", http.StatusForbidden, `{"message":"role user not allowed"}`, ClientError},
		{"404", http.StatusNotFound, `not json`, ClientError},
		{"500", http.StatusInternalServerError, `{"error":"boom"}`, ServerError},
		{"503", http.StatusServiceUnavailable, ``, ServerError},
		{"missing field", http.StatusOK, `{"success":true}`, MalformedResponse},
		{"invalid item", http.StatusOK, `{"courses":[{"name":"no id"}]}`, MalformedResponse},
		{"not json", http.StatusOK, `<html>`, MalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			var out coursesBody
			err := c.Do(context.Background(), http.MethodGet, "/get-courses", nil, nil, &out)
			if err == nil {
				t.Fatal("Do() expected error")
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if e.Kind != tt.want {
				t.Errorf("kind = %s, want %s (err %v)", e.Kind, tt.want, err)
			}
		})
	}
}

func TestDoErrorMessageFromBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Name is required"}`))
	})
	err := c.Do(context.Background(), http.MethodPut, "/update-user-info", map[string]string{}, nil, nil)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("err = %v", err)
	}
	if e.Message != "Name is required" || e.Status != http.StatusBadRequest {
		t.Errorf("error = %+v", e)
	}
}

func TestDoNetworkUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Options{BaseURL: url, Timeout: time.Second})
	err := c.Do(context.Background(), http.MethodGet, "/me", nil, nil, nil)
	if !Is(err, NetworkUnreachable) {
		t.Errorf("err = %v, want network_unreachable", err)
	}
}

func TestDoCanceledContextUnwraps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Do(ctx, http.MethodGet, "/me", nil, nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want wrapping context.Canceled", err)
	}
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Breaker: NewBreaker(2, time.Minute, nil)})
	for i := 0; i < 2; i++ {
		if err := c.Do(context.Background(), http.MethodGet, "/all", nil, nil, nil); !Is(err, ServerError) {
			t.Fatalf("call %d: err = %v, want server_error", i, err)
		}
	}
	err := c.Do(context.Background(), http.MethodGet, "/all", nil, nil, nil)
	if !Is(err, NetworkUnreachable) {
		t.Errorf("err with open breaker = %v, want network_unreachable", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("backend calls = %d, want 2 (no call while open)", n)
	}
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, Breaker: NewBreaker(1, time.Minute, nil)})
	for i := 0; i < 3; i++ {
		if err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil, nil); !Is(err, ClientError) {
			t.Fatalf("call %d: err = %v, want client_error", i, err)
		}
	}
}

func TestKindName(t *testing.T) {
	if KindName(nil) != "" {
		t.Error("KindName(nil) should be empty")
	}
	if KindName(errors.New("x")) != "unknown" {
		t.Error("KindName(plain) should be unknown")
	}
	if got := KindName(&Error{Kind: Unauthorized}); got != "unauthorized" {
		t.Errorf("KindName = %q", got)
	}
}
