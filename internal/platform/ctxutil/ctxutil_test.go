// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/platform/ctxutil"
	"github.com/rotina-app/rotina/internal/platform/sec"
)

/*
TestContext_RequestID verifies storage and retrieval of the request ID.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	// 1. Missing value yields an empty string
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Round trip
	ctx = ctxutil.WithRequestID(ctx, "req-abc-123")
	assert.Equal(t, "req-abc-123", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies the logger fallback behavior.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()

	// 1. Missing logger falls back to slog.Default, never nil
	require.NotNil(t, ctxutil.GetLogger(ctx))

	// 2. An attached logger is returned as-is
	logger := slog.Default().With("component", "test")
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies storage and retrieval of verified auth claims.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()

	// 1. Missing claims yield nil
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	// 2. Round trip
	claims := &sec.AuthClaims{UserID: "user-123", Email: "tai@rotina.app"}
	ctx = ctxutil.WithAuthUser(ctx, claims)

	got := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "user-123", got.UserID)
	assert.Equal(t, "tai@rotina.app", got.Email)
}
