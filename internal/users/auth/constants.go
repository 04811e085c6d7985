// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// One day keeps daily users off the refresh path while still bounding
	// the damage window of a leaked token.
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the duration a refresh-token session remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// MinPasswordLength is the minimum accepted password length at
	// registration and password change.
	MinPasswordLength = 8
)
