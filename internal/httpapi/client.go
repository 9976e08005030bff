// Package httpapi is the HTTP Fetch Client for the e-learning backend: it
// attaches credential headers, decodes and validates JSON bodies, and maps
// every failure onto a Kind. It never retries.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/elearn-app/elearn/internal/credentials"
	"github.com/elearn-app/elearn/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Header names understood by the backend.
const (
	HeaderAccessToken  = "access-token"
	HeaderRefreshToken = "refresh-token"
	HeaderRequestID    = "X-Request-ID"
)

const maxBodyBytes = 8 << 20

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	// Breaker, when set, short-circuits calls while the backend keeps
	// failing at the network or server level.
	Breaker *gobreaker.CircuitBreaker
	Logger  *zap.Logger
}

// Client performs JSON requests against the backend.
type Client struct {
	baseURL  string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
	logger   *zap.Logger
}

// New creates a client. A zero Timeout means 15s.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
			},
		}
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		http:     hc,
		breaker:  opts.Breaker,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logging.OrNop(opts.Logger),
	}
}

// Do sends a request and decodes a 2xx body into out (which may be nil).
// creds may be nil for anonymous requests. Every failure is an *Error.
func (c *Client) Do(ctx context.Context, method, path string, body any, creds *credentials.Credentials, out any) error {
	if c.breaker == nil {
		return c.do(ctx, method, path, body, creds, out)
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, method, path, body, creds, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &Error{Kind: NetworkUnreachable, Method: method, Path: path, Err: err}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any, creds *credentials.Credentials, out any) error {
	fail := func(kind Kind, status int, msg string, err error) error {
		return &Error{Kind: kind, Method: method, Path: path, Status: status, Message: msg, Err: err}
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fail(ClientError, 0, "encode request body", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fail(ClientError, 0, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	if creds != nil {
		req.Header.Set(HeaderAccessToken, creds.AccessToken)
		req.Header.Set(HeaderRefreshToken, creds.RefreshToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fail(NetworkUnreachable, 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(NetworkUnreachable, resp.StatusCode, "read body", err)
	}
	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(data)
		return fail(classifyStatus(resp.StatusCode, msg), resp.StatusCode, msg, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(MalformedResponse, resp.StatusCode, "decode body", err)
	}
	if err := c.validateBody(out); err != nil {
		return fail(MalformedResponse, resp.StatusCode, "unexpected body shape", err)
	}
	return nil
}

func (c *Client) validateBody(out any) error {
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return c.validate.Struct(out)
}

func classifyStatus(status int, msg string) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return Unauthorized
	case status >= 400 && status < 500 && tokenExpired(msg):
		return Unauthorized
	case status >= 500:
		return ServerError
	case status >= 400:
		return ClientError
	default:
		return MalformedResponse
	}
}

func tokenExpired(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "expired") || strings.Contains(m, "please login")
}

// errorMessage pulls {"message": ...} or {"error": ...} out of an error body.
func errorMessage(data []byte) string {
	var eb struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

// NewBreaker builds the circuit breaker used in front of the backend. It
// opens after `failures` consecutive network or server failures and probes
// again after openTimeout. Client errors never count as failures.
func NewBreaker(failures uint32, openTimeout time.Duration, logger *zap.Logger) *gobreaker.CircuitBreaker {
	logger = logging.OrNop(logger)
	if failures == 0 {
		failures = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if errors.Is(err, context.Canceled) {
				return true
			}
			k, _ := KindOf(err)
			return k != NetworkUnreachable && k != ServerError
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
