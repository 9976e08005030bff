package status

import (
	"context"
	"errors"

	"github.com/elearn-app/elearn/internal/httpapi"
)

// Observe moves a signed-in session according to the outcome of a backend
// call: success means Ready, an unreachable or failing backend means
// Offline, rejected credentials mean AuthExpired. Client errors and
// malformed responses say nothing about the connection and are ignored, as
// is everything while signed out.
func (m *Machine) Observe(err error) {
	if !m.Current().SignedIn() || errors.Is(err, context.Canceled) {
		return
	}
	var to State
	switch k, _ := httpapi.KindOf(err); {
	case err == nil:
		to = Ready
	case k == httpapi.Unauthorized:
		to = AuthExpired
	case k == httpapi.NetworkUnreachable || k == httpapi.ServerError:
		to = Offline
	default:
		return
	}
	// Some moves are not allowed (AuthExpired only leaves through a new
	// sign-in); those outcomes are dropped.
	_ = m.Settle(to)
}
