package status

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/elearn-app/elearn/internal/bus"
)

// State represents the daemon's view of the signed-in session.
type State string

const (
	Booting     State = "BOOTING"
	SignedOut   State = "SIGNED_OUT"
	Connecting  State = "CONNECTING"
	Ready       State = "READY"
	Offline     State = "OFFLINE"
	AuthExpired State = "AUTH_EXPIRED"
	Error       State = "ERROR"
)

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Booting:     {SignedOut, Connecting, Error},
	SignedOut:   {Connecting, Error},
	Connecting:  {Ready, Offline, AuthExpired, SignedOut, Error},
	Ready:       {Offline, AuthExpired, SignedOut, Error},
	Offline:     {Connecting, Ready, AuthExpired, SignedOut, Error},
	AuthExpired: {Connecting, SignedOut, Error},
	Error:       {Booting},
}

// Machine tracks and enforces session state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	since   time.Time
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting in Booting state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Booting,
		since:   time.Now(),
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Since returns when the current state was entered.
func (m *Machine) Since() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.since
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitionLocked(to)
}

// Settle moves to the given state unless the machine is already there.
// Used by sync outcomes, which report the same state over and over.
func (m *Machine) Settle(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == to {
		return nil
	}
	return m.transitionLocked(to)
}

// SignedIn reports whether the state implies stored credentials.
func (s State) SignedIn() bool {
	switch s {
	case Connecting, Ready, Offline, AuthExpired:
		return true
	}
	return false
}

func (m *Machine) transitionLocked(to State) error {
	if !slices.Contains(validTransitions[m.current], to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	m.since = time.Now()
	m.bus.Emit(bus.KindSessionStatusChange, StatusChange{From: from, To: to})
	return nil
}

// StatusChange is the payload for status change events.
type StatusChange struct {
	From State
	To   State
}
