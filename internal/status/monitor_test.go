package status

import (
	"context"
	"testing"
	"time"

	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/httpapi"
)

func TestObserve(t *testing.T) {
	offline := &httpapi.Error{Kind: httpapi.NetworkUnreachable}
	tests := []struct {
		name  string
		start []State
		err   error
		want  State
	}{
		{"success while connecting", []State{Connecting}, nil, Ready},
		{"network failure", []State{Connecting, Ready}, offline, Offline},
		{"server failure", []State{Connecting, Ready}, &httpapi.Error{Kind: httpapi.ServerError}, Offline},
		{"recovered", []State{Connecting, Offline}, nil, Ready},
		{"unauthorized", []State{Connecting, Ready}, &httpapi.Error{Kind: httpapi.Unauthorized}, AuthExpired},
		{"client error ignored", []State{Connecting, Ready}, &httpapi.Error{Kind: httpapi.ClientError}, Ready},
		{"cancel ignored", []State{Connecting, Ready}, context.Canceled, Ready},
		{"expired stays expired", []State{Connecting, AuthExpired}, nil, AuthExpired},
		{"signed out ignores", []State{SignedOut}, offline, SignedOut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(nil)
			for _, s := range tt.start {
				if err := m.Transition(s); err != nil {
					t.Fatal(err)
				}
			}
			m.Observe(tt.err)
			if got := m.Current(); got != tt.want {
				t.Errorf("state = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMonitorFollowsListEvents(t *testing.T) {
	b := bus.New()
	m := NewMachine(b)
	if err := m.Transition(Connecting); err != nil {
		t.Fatal(err)
	}
	mon := NewMonitor(m, b, nil)
	mon.Start(context.Background())
	defer mon.Stop()

	b.Emit(bus.KindListSyncFailed, bus.ListSyncFailed{List: "courses", Err: &httpapi.Error{Kind: httpapi.NetworkUnreachable}})
	waitState(t, m, Offline)

	b.Emit(bus.KindListSynced, bus.ListSynced{List: "courses", Count: 1})
	waitState(t, m, Ready)
}

func waitState(t *testing.T, m *Machine, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for m.Current() != want {
		if time.Now().After(deadline) {
			t.Fatalf("state = %s, want %s", m.Current(), want)
		}
		time.Sleep(time.Millisecond)
	}
}
