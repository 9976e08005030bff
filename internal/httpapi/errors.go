package httpapi

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend call.
type Kind int

const (
	// NetworkUnreachable: the request never produced a response (DNS, dial,
	// timeout, open circuit breaker).
	NetworkUnreachable Kind = iota + 1
	// Unauthorized: 401, or a 4xx whose message says the token expired.
	Unauthorized
	// ServerError: any 5xx.
	ServerError
	// ClientError: any other 4xx.
	ClientError
	// MalformedResponse: a 2xx whose body is not the documented shape.
	MalformedResponse
)

func (k Kind) String() string {
	switch k {
	case NetworkUnreachable:
		return "network_unreachable"
	case Unauthorized:
		return "unauthorized"
	case ServerError:
		return "server_error"
	case ClientError:
		return "client_error"
	case MalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Do for every failed call.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// KindName returns the wire name of err's kind, or "" for nil and "unknown"
// for errors that did not come from the client.
func KindName(err error) string {
	if err == nil {
		return ""
	}
	k, ok := KindOf(err)
	if !ok {
		return "unknown"
	}
	return k.String()
}
