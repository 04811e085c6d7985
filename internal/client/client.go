/*
Package client is the Go API client for the Rotina server.

Every outgoing request passes through one pipeline: attach the current
access token, dispatch, and on an authentication failure transparently
refresh the session and retry the original request exactly once with the
new token. Concurrent failures coalesce into a single refresh call, and an
unrecoverable failure funnels into a single forced-logout path.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rotina-app/rotina/internal/client/session"
)

// Sentinel errors surfaced by the request pipeline.
var (
	// ErrServerUnavailable means no HTTP response arrived at all. The
	// session is left untouched: an unreachable server says nothing about
	// token validity.
	ErrServerUnavailable = errors.New("client: server unavailable")

	// ErrSessionExpired means a refresh was attempted and rejected. The
	// session has been cleared.
	ErrSessionExpired = errors.New("client: session expired")

	// ErrUnauthorized means the server rejected the credentials and no
	// refresh token was available to recover.
	ErrUnauthorized = errors.New("client: unauthorized")

	// ErrServer covers 5xx responses. Session state is never mutated.
	ErrServer = errors.New("client: server error")
)

// APIError is a structured non-2xx response body.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: %s (%d %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("client: request failed with status %d", e.StatusCode)
}

// Client talks to the Rotina API on behalf of one stored session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	logger     *slog.Logger

	// refreshGroup coalesces concurrent refresh attempts: N requests that
	// fail at the same time trigger one network call, and all retries reuse
	// its result.
	refreshGroup singleflight.Group

	// onLogout, when set, is invoked exactly once per forced logout.
	onLogout func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLogoutHandler registers a callback fired on forced logout.
func WithLogoutHandler(fn func()) Option {
	return func(c *Client) { c.onLogout = fn }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a Client against baseURL using the given session store.
func New(baseURL string, store *session.Store, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Store exposes the underlying session store, mainly for state inspection.
func (client *Client) Store() *session.Store {
	return client.store
}

// # Request Pipeline

type requestSpec struct {
	method string
	path   string
	body   any

	// isAuthEndpoint marks requests that must never trigger a refresh:
	// a 401 from the auth endpoints themselves is a final answer.
	isAuthEndpoint bool
}

/*
do runs the pipeline for one logical request and decodes a 2xx response
body into out (pass nil to discard).

At most one refresh and one retry happen per call, and the retry carries
the refreshed token, never the stale one.
*/
func (client *Client) do(ctx context.Context, spec requestSpec, out any) error {
	snapshot := client.store.Snapshot()

	status, err := client.dispatch(ctx, spec, snapshot.AccessToken, out)
	if err != nil {
		if status == 0 {
			return client.handleNetworkError(snapshot, err)
		}
		return err
	}
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		return nil
	}
	if spec.isAuthEndpoint {
		return &APIError{StatusCode: status, Message: "authentication failed"}
	}

	// Auth failure on a resource request: try to recover, once.
	refreshToken := client.store.RefreshToken()
	if refreshToken == "" {
		client.forceLogout(snapshot.Generation, "no refresh token")
		return ErrUnauthorized
	}

	newToken, refreshErr := client.refresh(ctx, snapshot.Generation, refreshToken)
	if refreshErr != nil {
		client.forceLogout(snapshot.Generation, "refresh rejected")
		return ErrSessionExpired
	}

	status, err = client.dispatch(ctx, spec, newToken, out)
	if err != nil {
		if status == 0 {
			return client.handleNetworkError(client.store.Snapshot(), err)
		}
		return err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		// The refreshed token was accepted by /auth/refresh but rejected
		// here; do not loop, fail the request.
		return ErrUnauthorized
	}
	return nil
}

// dispatch sends one HTTP request. A non-nil error means no usable response
// arrived. 401/403 and 2xx are returned to the caller; other statuses are
// converted to errors here.
func (client *Client) dispatch(ctx context.Context, spec requestSpec, accessToken string, out any) (int, error) {
	var bodyReader io.Reader
	if spec.body != nil {
		encoded, err := json.Marshal(spec.body)
		if err != nil {
			return -1, fmt.Errorf("client: encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, spec.method, client.baseURL+spec.path, bodyReader)
	if err != nil {
		return -1, fmt.Errorf("client: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if spec.body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" && request.Header.Get("Authorization") == "" {
		request.Header.Set("Authorization", "Bearer "+accessToken)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		if out == nil || response.StatusCode == http.StatusNoContent {
			io.Copy(io.Discard, response.Body)
			return response.StatusCode, nil
		}
		// Success bodies arrive wrapped in the server's data envelope.
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
			return response.StatusCode, fmt.Errorf("client: decode response: %w", err)
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return response.StatusCode, fmt.Errorf("client: decode response: %w", err)
		}
		return response.StatusCode, nil

	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, response.Body)
		return response.StatusCode, nil

	case response.StatusCode >= 500:
		io.Copy(io.Discard, response.Body)
		client.logger.Warn("server_error_response",
			slog.Int("status", response.StatusCode),
			slog.String("path", spec.path),
		)
		return response.StatusCode, ErrServer

	default:
		apiErr := &APIError{StatusCode: response.StatusCode}
		if err := json.NewDecoder(response.Body).Decode(apiErr); err != nil {
			apiErr.Message = ""
		}
		return response.StatusCode, apiErr
	}
}
