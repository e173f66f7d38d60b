// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// Package auth owns the account entity and the authentication use cases
// (registration, login, scope reporting).
//
// # Architecture
//
// Entities in this package represent the "Truth" of the system. They have no
// dependencies on outer layers (like databases, APIs, or libraries), which
// keeps the core logic highly testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/classcord/classcord/internal/platform/sec"
)

// ClassRef is a lightweight reference to the class an account head-teaches.
//
// It exists so account reads can carry the head-class without importing the
// full class domain.
type ClassRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	GuildID *string `json:"guild_id"`
}

// User represents a registered account.
//
// # Rules
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively by the auth service.
//   - Verified and Admin are only ever flipped through the scope-change
//     operation; registration always produces an unverified, non-admin account.
//   - Class is the head-teacher back-reference: at most one class per user,
//     at most one user per class.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Verified     bool      `json:"verified"`
	Admin        bool      `json:"admin"`
	Class        *ClassRef `json:"class,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// FullName returns the display name used in messages and relay payloads.
func (user *User) FullName() string {
	return user.FirstName + " " + user.LastName
}

// Scope derives the authorization tier from the account flags.
func (user *User) Scope() sec.Scope {
	switch {
	case user.Admin:
		return sec.ScopeAdmin
	case user.Verified:
		return sec.ScopeUser
	default:
		return sec.ScopeNone
	}
}

// Identity maps the account to the per-request snapshot stored in context.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName(),
		Verified: user.Verified,
		Admin:    user.Admin,
	}
}
