// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package auth

import (
	"context"
	"fmt"

	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/constants"
	"github.com/classcord/classcord/internal/platform/sec"
	"github.com/classcord/classcord/internal/platform/validate"
	"github.com/classcord/classcord/pkg/uuidv7"
)

// TokenIssuer defines the contract for generating access tokens.
type TokenIssuer interface {
	// Issue creates a signed JWT whose subject is the account email.
	Issue(email string) (string, error)
}

// Service implements account registration, login and access resolution.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(userRepo UserRepository, tokenIssuer TokenIssuer) *Service {
	return &Service{
		userRepository: userRepo,
		tokenIssuer:    tokenIssuer,
	}
}

// RegisterInput holds the data required to create a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register validates, hashes, and persists a brand new account.
//
// # Returns
//   - The newly created [*User].
//   - [apperr.Conflict] if the email is already registered.
//
// # Business Rules
//   - Emails must be unique.
//   - New accounts always start unverified and non-admin; only an admin
//     scope change grants access to school data.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required("email", input.Email).
		Email("email", input.Email).
		MaxLen("email", input.Email, 50).
		MinLen("password", input.Password, 8).
		LenBetween("first_name", input.FirstName, 3, 50).
		LenBetween("last_name", input.LastName, 3, 50)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Check ───────────────────────────────────────────────

	// Friendly-path check; the UNIQUE constraint on account.email is the
	// authoritative guard for concurrent registrations.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction & Persistence ──────────────────────────────

	user := &User{
		ID:           uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Verified:     false,
		Admin:        false,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the issued bearer token.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login validates credentials and issues an access token.
//
// # Returns
//   - A [*LoginResult] containing the signed access token.
//   - [apperr.Unauthorized] if the credentials do not match.
//
// # Flow
//  1. Lookup account by email.
//  2. Verify password hash using Bcrypt.
//  3. Issue a JWT whose subject is the account email.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	// ── 1. Fetch Account ──────────────────────────────────────────────────

	// Return a generic unauthorized error to prevent email enumeration.
	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	accessToken, err := service.tokenIssuer.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   constants.TokenType,
	}, nil
}

// IdentityByEmail resolves the live account behind a verified token subject.
//
// It backs the access-guard middleware: the account row is re-read on every
// authenticated request, so deletions and scope changes take effect
// immediately rather than at token expiry.
func (service *Service) IdentityByEmail(ctx context.Context, email string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	return user.Identity(), nil
}
