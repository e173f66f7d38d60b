// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classcord/classcord/internal/platform/sec"
)

const testSecret = "unit-test-secret-key"

/*
TestTokenService_RoundTrip issues a token and resolves it back to the email.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "classcord-test", time.Hour)
	require.NoError(t, err)

	token, err := service.Issue("teacher@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := service.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "teacher@example.com", email)
}

/*
TestTokenService_Expired verifies that an expired token maps to the dedicated
expiry error, not the generic invalid-token error.
*/
func TestTokenService_Expired(t *testing.T) {
	// Sign an already-expired token with the same secret.
	claims := jwt.RegisteredClaims{
		Subject:   "teacher@example.com",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	service, err := sec.NewTokenService(testSecret, "classcord-test", time.Hour)
	require.NoError(t, err)

	_, err = service.Resolve(signed)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Tampered rejects a token whose signature does not match.
*/
func TestTokenService_Tampered(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "classcord-test", time.Hour)
	require.NoError(t, err)

	other, err := sec.NewTokenService("a-different-secret", "classcord-test", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("teacher@example.com")
	require.NoError(t, err)

	_, err = service.Resolve(token)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_WrongAlgorithm rejects tokens signed with a non-HMAC method,
including the classic alg=none downgrade.
*/
func TestTokenService_WrongAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "teacher@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	service, err := sec.NewTokenService(testSecret, "classcord-test", time.Hour)
	require.NoError(t, err)

	_, err = service.Resolve(unsigned)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenService_Construction rejects empty secrets and non-positive lifetimes.
*/
func TestTokenService_Construction(t *testing.T) {
	_, err := sec.NewTokenService("", "classcord-test", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testSecret, "classcord-test", 0)
	assert.Error(t, err)
}

/*
TestPasswordHashing covers the bcrypt round trip and mismatch case.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestNewClassKey verifies that keys are salted: two keys for the same class
name must differ, and the key is never the plain name.
*/
func TestNewClassKey(t *testing.T) {
	first, err := sec.NewClassKey("10A")
	require.NoError(t, err)
	second, err := sec.NewClassKey("10A")
	require.NoError(t, err)

	assert.NotEqual(t, "10A", first)
	assert.NotEqual(t, first, second)
}
