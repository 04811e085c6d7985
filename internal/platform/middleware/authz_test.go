// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/platform/middleware"
	"github.com/rotina-app/rotina/internal/platform/sec"
)

// stubVerifier accepts exactly one token string.
type stubVerifier struct {
	validToken string
	claims     *sec.AuthClaims
}

func (v *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == v.validToken {
		return v.claims, nil
	}
	return nil, errors.New("invalid token")
}

// guarded builds an Authenticate+RequireAuth chain around a handler that
// records the claims it observed.
func guarded(verifier middleware.TokenVerifier, seen **sec.AuthClaims) http.Handler {
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*seen = middleware.GetUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(verifier)(middleware.RequireAuth(inner))
}

/*
TestAuthenticate_ValidToken verifies that a valid bearer token passes the
guard and its claims become visible to the handler.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &stubVerifier{
		validToken: "good-token",
		claims:     &sec.AuthClaims{UserID: "user-123", Email: "tai@rotina.app"},
	}

	var seen *sec.AuthClaims
	handler := guarded(verifier, &seen)

	request := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-123", seen.UserID)
}

/*
TestAuthenticate_MissingHeader verifies that an anonymous request is let
through Authenticate but blocked by RequireAuth.
*/
func TestAuthenticate_MissingHeader(t *testing.T) {
	verifier := &stubVerifier{validToken: "good-token"}

	var seen *sec.AuthClaims
	handler := guarded(verifier, &seen)

	request := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, seen)
}

/*
TestAuthenticate_MalformedHeader verifies rejection of non-bearer schemes
and garbage headers.
*/
func TestAuthenticate_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
		{"no_token", "Bearer"},
		{"extra_parts", "Bearer one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{validToken: "good-token"}

			var seen *sec.AuthClaims
			handler := guarded(verifier, &seen)

			request := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			request.Header.Set("Authorization", tt.header)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Nil(t, seen)
		})
	}
}

/*
TestAuthenticate_InvalidToken verifies that an expired or forged token is
rejected with 401 before reaching the handler.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{validToken: "good-token"}

	var seen *sec.AuthClaims
	handler := guarded(verifier, &seen)

	request := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	request.Header.Set("Authorization", "Bearer expired-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, seen)
}
