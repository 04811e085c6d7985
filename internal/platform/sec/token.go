// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// # Opaque Tokens

// GenerateSecureToken returns a URL-safe random token of byteLength entropy bytes.
//
// It is used for refresh tokens, which are deliberately opaque: unlike the
// JWT access token they carry no claims and can only be resolved against the
// server-side session store.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 fingerprint of a token.
//
// Only the fingerprint is ever persisted server-side, so a leaked session
// store cannot be replayed as live refresh tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
