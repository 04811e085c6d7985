package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/client"
	"github.com/rotina-app/rotina/internal/client/session"
)

// fakeAPI is a minimal in-process Rotina server. Profile requests succeed
// only with the current access token; refresh rotates both tokens.
type fakeAPI struct {
	mu            sync.Mutex
	accessToken   string
	refreshToken  string
	refreshCalls  atomic.Int64
	profileCalls  atomic.Int64
	refreshDelay  time.Duration
	refuseRefresh bool
}

func (api *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(request.Body).Decode(&body)

		if body.Password != "s3cret" {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}

		api.mu.Lock()
		api.accessToken = "access-1"
		api.refreshToken = "refresh-1"
		api.mu.Unlock()

		json.NewEncoder(writer).Encode(map[string]any{"data": map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"user":          map[string]string{"id": "user-1", "email": body.Email, "name": "Tai"},
		}})
	})

	mux.HandleFunc("POST /api/auth/refresh", func(writer http.ResponseWriter, request *http.Request) {
		api.refreshCalls.Add(1)
		time.Sleep(api.refreshDelay)

		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(request.Body).Decode(&body)

		api.mu.Lock()
		valid := !api.refuseRefresh && body.RefreshToken == api.refreshToken
		if valid {
			api.accessToken = "access-rotated"
			api.refreshToken = "refresh-rotated"
		}
		api.mu.Unlock()

		if !valid {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(writer).Encode(map[string]any{"data": map[string]string{
			"access_token":  "access-rotated",
			"refresh_token": "refresh-rotated",
		}})
	})

	mux.HandleFunc("GET /api/auth/profile", func(writer http.ResponseWriter, request *http.Request) {
		api.profileCalls.Add(1)

		api.mu.Lock()
		expected := "Bearer " + api.accessToken
		api.mu.Unlock()

		if request.Header.Get("Authorization") != expected {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(writer).Encode(map[string]any{"data": map[string]string{
			"id": "user-1", "email": "tai@rotina.app", "name": "Tai",
		}})
	})

	return mux
}

// expireAccessToken invalidates the current access token server-side,
// simulating an expired JWT.
func (api *fakeAPI) expireAccessToken() {
	api.mu.Lock()
	api.accessToken = "no-longer-valid"
	api.mu.Unlock()
}

type testEnv struct {
	api     *fakeAPI
	server  *httptest.Server
	store   *session.Store
	client  *client.Client
	logouts atomic.Int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{api: &fakeAPI{}}
	env.server = httptest.NewServer(env.api.handler())
	t.Cleanup(env.server.Close)

	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	env.store = store

	env.client = client.New(env.server.URL, store,
		client.WithLogoutHandler(func() { env.logouts.Add(1) }),
	)
	return env
}

func (env *testEnv) login(t *testing.T) {
	t.Helper()
	_, err := env.client.Login(context.Background(), "tai@rotina.app", "s3cret")
	require.NoError(t, err)
}

func TestClient_Login(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.client.Login(context.Background(), "tai@rotina.app", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	state := env.store.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "access-1", state.AccessToken)
	assert.Equal(t, "refresh-1", env.store.RefreshToken())
}

func TestClient_Login_BadCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.client.Login(context.Background(), "tai@rotina.app", "wrong")
	require.Error(t, err)

	// A failed login never triggers a refresh attempt or a forced logout
	assert.Zero(t, env.api.refreshCalls.Load())
	assert.Zero(t, env.logouts.Load())
	assert.False(t, env.store.Snapshot().IsAuthenticated)
}

func TestClient_RefreshAndRetry(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	// The access token expires while the client still holds it
	env.api.expireAccessToken()

	user, err := env.client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	// One refresh, and the original request retried exactly once
	assert.Equal(t, int64(1), env.api.refreshCalls.Load())
	assert.Equal(t, int64(2), env.api.profileCalls.Load())

	// The rotated tokens are now the stored ones
	assert.Equal(t, "access-rotated", env.store.Snapshot().AccessToken)
	assert.Equal(t, "refresh-rotated", env.store.RefreshToken())
	assert.Zero(t, env.logouts.Load())
}

func TestClient_RefreshRejected_ForcesSingleLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	env.api.expireAccessToken()
	env.api.refuseRefresh = true

	_, err := env.client.Profile(context.Background())
	require.ErrorIs(t, err, client.ErrSessionExpired)

	// Exactly one forced logout, and the session is gone
	assert.Equal(t, int64(1), env.logouts.Load())
	assert.False(t, env.store.Snapshot().IsAuthenticated)
	assert.Empty(t, env.store.RefreshToken())

	// A later request does not fire the logout handler again
	_, err = env.client.CheckSession(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, int64(1), env.logouts.Load())
}

func TestClient_ConcurrentRefreshCoalesces(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	env.api.expireAccessToken()
	env.api.refreshDelay = 50 * time.Millisecond

	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.client.Profile(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	// All five 401s share a single refresh network call
	assert.Equal(t, int64(1), env.api.refreshCalls.Load())
	assert.Zero(t, env.logouts.Load())
	assert.Equal(t, "access-rotated", env.store.Snapshot().AccessToken)
}

func TestClient_NetworkError_KeepsSession(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	// Server goes away entirely
	env.server.Close()

	_, err := env.client.Profile(context.Background())
	require.ErrorIs(t, err, client.ErrServerUnavailable)

	// An unreachable server says nothing about token validity
	state := env.store.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "access-1", state.AccessToken)
	assert.Equal(t, "refresh-1", env.store.RefreshToken())
	assert.Zero(t, env.logouts.Load())
}

func TestClient_NoRefreshToken_ForcesLogout(t *testing.T) {
	env := newTestEnv(t)

	// Authenticated state without a refresh token: nothing to recover with
	stored, err := env.store.Login(0, &session.User{ID: "user-1"}, "stale-access", "")
	require.NoError(t, err)
	require.True(t, stored)

	_, err = env.client.Profile(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)

	assert.Equal(t, int64(1), env.logouts.Load())
	assert.Zero(t, env.api.refreshCalls.Load())
	assert.False(t, env.store.Snapshot().IsAuthenticated)
}

func TestClient_RetryNeverLoops(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	// A server where refresh succeeds but every profile attempt is rejected,
	// valid token or not. The pipeline must fail after one retry.
	proxy := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if strings.HasPrefix(request.URL.Path, "/api/auth/profile") {
			env.api.profileCalls.Add(1)
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}
		env.api.handler().ServeHTTP(writer, request)
	}))
	t.Cleanup(proxy.Close)

	rejecting := client.New(proxy.URL, env.store)

	_, err := rejecting.Profile(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)

	// One original attempt plus exactly one retry, never a loop
	assert.Equal(t, int64(2), env.api.profileCalls.Load())
}

func TestClient_Logout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	require.NoError(t, env.client.Logout(context.Background()))

	assert.False(t, env.store.Snapshot().IsAuthenticated)
	assert.Empty(t, env.store.RefreshToken())

	// A voluntary logout is not a forced one
	assert.Zero(t, env.logouts.Load())
}

func TestClient_CheckSession_RestoredSession(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	user, err := env.client.CheckSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}
