// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer and the HTTP middleware.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/classcord/classcord/internal/platform/apperr"
)

var (
	// ErrTokenExpired is returned by [TokenService.Resolve] when the token's
	// exp claim is in the past. Expiry is the only invalidation mechanism;
	// there is no revocation list.
	ErrTokenExpired = apperr.Unauthorized("Token has expired")

	// ErrTokenInvalid is returned for malformed tokens, bad signatures, or
	// unexpected signing algorithms.
	ErrTokenInvalid = apperr.Unauthorized("Invalid token")
)

// Claims is the payload embedded inside an access token.
//
// Only the registered claims are used: the subject carries the account email,
// and the access guard re-reads the account on every request, so no
// role/scope data is baked into the token where it could go stale.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// NewTokenService creates a new TokenService signing with the given shared secret.
func NewTokenService(secret, issuer string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: JWT secret must not be empty")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("sec: token lifetime must be positive, got %s", lifetime)
	}

	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		lifetime: lifetime,
	}, nil
}

// Issue creates a signed access token for the given account email.
//
// The expiry is absolute: current time plus the configured lifetime.
func (service *TokenService) Issue(email string) (string, error) {
	currentTime := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Resolve verifies the signature and validity of a token string and returns
// the embedded account email.
//
// # Returns
//   - [ErrTokenExpired] when the token is past its expiry.
//   - [ErrTokenInvalid] for any other verification failure.
func (service *TokenService) Resolve(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
