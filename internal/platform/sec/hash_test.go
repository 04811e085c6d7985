// Copyright (c) 2026 Rotina. All rights reserved.
// Author: dev@rotina.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotina-app/rotina/internal/platform/sec"
)

/*
TestHashPassword verifies bcrypt hashing and comparison.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The hash never equals the plaintext
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_UniqueSalt verifies that hashing the same password twice
produces different hashes.
*/
func TestHashPassword_UniqueSalt(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)
	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("same-password", first))
	assert.True(t, sec.CheckPasswordHash("same-password", second))
}
