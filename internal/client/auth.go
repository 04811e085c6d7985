package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rotina-app/rotina/internal/client/session"
)

// # Session Recovery

// handleNetworkError implements the transport-failure branch of the
// pipeline. An authenticated session is preserved; an unauthenticated one
// is force-cleared, since nothing can validate it anyway.
func (client *Client) handleNetworkError(snapshot session.State, cause error) error {
	client.logger.Warn("server_unreachable", slog.String("cause", cause.Error()))

	if snapshot.IsAuthenticated {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, cause)
	}

	client.forceLogout(snapshot.Generation, "unreachable while unauthenticated")
	return fmt.Errorf("%w: %v", ErrServerUnavailable, cause)
}

/*
refresh exchanges the refresh token for a new access token and stores the
result. Concurrent callers share one network call via singleflight; every
waiter receives the same new token.
*/
func (client *Client) refresh(ctx context.Context, generation uint64, refreshToken string) (string, error) {
	value, err, _ := client.refreshGroup.Do("refresh", func() (any, error) {
		var result struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}

		status, err := client.dispatch(ctx, requestSpec{
			method:         http.MethodPost,
			path:           "/api/auth/refresh",
			body:           map[string]string{"refreshToken": refreshToken},
			isAuthEndpoint: true,
		}, "", &result)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return nil, ErrSessionExpired
		}

		if _, err := client.store.SetTokens(generation, result.AccessToken, result.RefreshToken); err != nil {
			return nil, err
		}
		return result.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// forceLogout is the single forced-logout code path. The generation guard
// makes it fire at most once per session no matter how many failures race
// into it.
func (client *Client) forceLogout(generation uint64, reason string) {
	cleared, err := client.store.ClearIf(generation)
	if err != nil {
		client.logger.Error("session_clear_failed", slog.String("error", err.Error()))
	}
	if !cleared {
		return
	}

	client.logger.Info("forced_logout", slog.String("reason", reason))
	if client.onLogout != nil {
		client.onLogout()
	}
}

// # Auth Operations

// Register creates a new account. It does not log in; call Login after.
func (client *Client) Register(ctx context.Context, name, email, password string) (*session.User, error) {
	var user session.User
	err := client.do(ctx, requestSpec{
		method:         http.MethodPost,
		path:           "/api/auth/register",
		body:           map[string]string{"name": name, "email": email, "password": password},
		isAuthEndpoint: true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and persists the resulting session.
func (client *Client) Login(ctx context.Context, email, password string) (*session.User, error) {
	snapshot := client.store.Snapshot()

	var result struct {
		AccessToken  string       `json:"access_token"`
		RefreshToken string       `json:"refresh_token"`
		User         session.User `json:"user"`
	}
	err := client.do(ctx, requestSpec{
		method:         http.MethodPost,
		path:           "/api/auth/login",
		body:           map[string]string{"email": email, "password": password},
		isAuthEndpoint: true,
	}, &result)
	if err != nil {
		client.store.SetError(err.Error())
		return nil, err
	}

	stored, err := client.store.Login(snapshot.Generation, &result.User, result.AccessToken, result.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !stored {
		// A logout raced the login response; honor the logout.
		return nil, ErrUnauthorized
	}
	return &result.User, nil
}

// Logout revokes the server-side session, then clears local state. The
// local clear happens even when the server is unreachable.
func (client *Client) Logout(ctx context.Context) error {
	refreshToken := client.store.RefreshToken()
	if refreshToken != "" {
		err := client.do(ctx, requestSpec{
			method:         http.MethodPost,
			path:           "/api/auth/logout",
			body:           map[string]string{"refreshToken": refreshToken},
			isAuthEndpoint: true,
		}, nil)
		if err != nil {
			client.logger.Warn("logout_revoke_failed", slog.String("error", err.Error()))
		}
	}
	return client.store.Clear()
}

// Profile fetches the authenticated user's profile, exercising the full
// refresh-and-retry pipeline.
func (client *Client) Profile(ctx context.Context) (*session.User, error) {
	var user session.User
	err := client.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   "/api/auth/profile",
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

/*
CheckSession validates a restored session at process start.

It fetches the profile; on an auth failure the pipeline already attempts
one refresh-and-retry, so by the time an error surfaces here the session
is either valid or has been cleared. A transport failure leaves the stored
session alone.
*/
func (client *Client) CheckSession(ctx context.Context) (*session.User, error) {
	snapshot := client.store.Snapshot()
	if !snapshot.IsAuthenticated {
		return nil, ErrUnauthorized
	}
	return client.Profile(ctx)
}
