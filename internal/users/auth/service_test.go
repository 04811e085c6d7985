// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/platform/apperr"
	"github.com/rotina-app/rotina/internal/users/auth"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := r.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (r *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	user, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	delete(r.byID, id)
	delete(r.byEmail, user.Email)
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*auth.Session // keyed by token hash
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*auth.Session)}
}

func (r *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	r.sessions[session.TokenHash] = session
	return nil
}

func (r *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (r *fakeSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)
	return nil
}

func (r *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for hash, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, hash)
		}
	}
	return nil
}

func (r *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentTokenHash string) error {
	for hash, session := range r.sessions {
		if session.UserID == userID && hash != currentTokenHash {
			delete(r.sessions, hash)
		}
	}
	return nil
}

// fakeTokenProvider mints predictable, unique access tokens.
type fakeTokenProvider struct {
	counter int
}

func (p *fakeTokenProvider) GenerateAccessToken(userID, _ string, _ time.Duration) (string, error) {
	p.counter++
	return fmt.Sprintf("access-token-%s-%d", userID, p.counter), nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeSessionRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := auth.NewService(users, sessions, &fakeTokenProvider{})
	return service, users, sessions
}

// # Registration

/*
TestService_Register verifies account creation and password hashing.
*/
func TestService_Register(t *testing.T) {
	service, users, _ := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "tai@rotina.app",
		Password: "s3cret-password",
		Name:     "Tai",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	// 1. Identity fields are persisted
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "tai@rotina.app", user.Email)
	assert.Equal(t, "Tai", user.Name)

	// 2. The password is stored hashed, never in plain text
	stored := users.byEmail["tai@rotina.app"]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "s3cret-password", stored.PasswordHash)
}

/*
TestService_Register_DuplicateEmail verifies the identity conflict check.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()

	input := auth.RegisterInput{Email: "tai@rotina.app", Password: "s3cret", Name: "Tai"}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Login

/*
TestService_Login verifies credential checks and session issuance.
*/
func TestService_Login(t *testing.T) {
	service, _, sessions := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "tai@rotina.app",
		Password: "s3cret-password",
		Name:     "Tai",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "tai@rotina.app",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	// 1. Both tokens are issued
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))
	require.NotNil(t, session.User)
	assert.Equal(t, "tai@rotina.app", session.User.Email)

	// 2. A server-side session is tracked, keyed by fingerprint — the raw
	// refresh token never appears in storage
	assert.Len(t, sessions.sessions, 1)
	_, rawStored := sessions.sessions[session.RefreshToken]
	assert.False(t, rawStored)
}

/*
TestService_Login_InvalidCredentials verifies that unknown emails and wrong
passwords produce the same generic error.
*/
func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "tai@rotina.app",
		Password: "s3cret-password",
		Name:     "Tai",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown_email", "nobody@rotina.app", "s3cret-password"},
		{"wrong_password", "tai@rotina.app", "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), auth.LoginInput{
				Email:    tt.email,
				Password: tt.password,
			})
			require.Error(t, err)

			// Identical message prevents account enumeration
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UNAUTHORIZED", ae.Code)
			assert.Equal(t, "Invalid login credentials", ae.Message)
		})
	}
}

// # Session Lifecycle

/*
TestService_RefreshSession verifies refresh token rotation: a successful
refresh returns new tokens and permanently revokes the presented token.
*/
func TestService_RefreshSession(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "tai@rotina.app",
		Password: "s3cret-password",
		Name:     "Tai",
	})
	require.NoError(t, err)

	original, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "tai@rotina.app",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	// 1. Refresh succeeds and rotates both tokens
	rotated, err := service.RefreshSession(context.Background(), original.RefreshToken, "cli", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, original.AccessToken, rotated.AccessToken)
	assert.NotEqual(t, original.RefreshToken, rotated.RefreshToken)

	// 2. Replaying the consumed token is rejected
	_, err = service.RefreshSession(context.Background(), original.RefreshToken, "cli", "127.0.0.1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	// 3. The rotated token still works
	_, err = service.RefreshSession(context.Background(), rotated.RefreshToken, "cli", "127.0.0.1")
	assert.NoError(t, err)
}

/*
TestService_RefreshSession_UnknownToken verifies rejection of tokens that
were never issued.
*/
func TestService_RefreshSession_UnknownToken(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.RefreshSession(context.Background(), "never-issued", "cli", "127.0.0.1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

/*
TestService_Logout verifies revocation and its idempotency.
*/
func TestService_Logout(t *testing.T) {
	service, _, sessions := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "tai@rotina.app",
		Password: "s3cret-password",
		Name:     "Tai",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "tai@rotina.app",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	require.Len(t, sessions.sessions, 1)

	// 1. Logout revokes the tracked session
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.sessions)

	// 2. Logging out again (or with garbage) still succeeds
	assert.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.NoError(t, service.Logout(context.Background(), "unknown-token"))

	// 3. The revoked token can no longer be refreshed
	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "cli", "127.0.0.1")
	assert.Error(t, err)
}

/*
TestService_ChangePassword verifies the credential rotation flow and the
revocation of other devices' sessions.
*/
func TestService_ChangePassword(t *testing.T) {
	service, _, _ := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "tai@rotina.app",
		Password: "old-password",
		Name:     "Tai",
	})
	require.NoError(t, err)

	// Two independent device sessions
	laptop, err := service.Login(context.Background(), auth.LoginInput{Email: "tai@rotina.app", Password: "old-password"})
	require.NoError(t, err)
	phone, err := service.Login(context.Background(), auth.LoginInput{Email: "tai@rotina.app", Password: "old-password"})
	require.NoError(t, err)

	// 1. Wrong current password is rejected
	err = service.ChangePassword(context.Background(), user.ID, "not-the-password", "new-password", laptop.RefreshToken)
	require.Error(t, err)

	// 2. Correct current password rotates the hash
	err = service.ChangePassword(context.Background(), user.ID, "old-password", "new-password", laptop.RefreshToken)
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{Email: "tai@rotina.app", Password: "old-password"})
	assert.Error(t, err)
	_, err = service.Login(context.Background(), auth.LoginInput{Email: "tai@rotina.app", Password: "new-password"})
	assert.NoError(t, err)

	// 3. The caller's session survives, the other device is logged out
	_, err = service.RefreshSession(context.Background(), laptop.RefreshToken, "cli", "127.0.0.1")
	assert.NoError(t, err)
	_, err = service.RefreshSession(context.Background(), phone.RefreshToken, "cli", "127.0.0.1")
	assert.Error(t, err)
}
