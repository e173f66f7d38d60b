// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package sec

// # User Scopes

// Scope represents the authorization tier granted to an account.
type Scope string

const (
	// Unrestricted system access
	ScopeAdmin Scope = "admin"

	// Verified account, may read school data and post as an assigned teacher
	ScopeUser Scope = "user"

	// Freshly registered, awaiting admin verification
	ScopeNone Scope = ""
)

// # Scope Hierarchy

// AtLeast checks if the current scope meets or exceeds the required target scope.
func (s Scope) AtLeast(target Scope) bool {
	return s.level() >= target.level()
}

// level maps a scope to a numeric hierarchy level for comparison logic.
func (s Scope) level() int {

	// Linear scale (10-30) allows for future intermediate tiers
	switch s {
	case ScopeAdmin:
		return 30
	case ScopeUser:
		return 20
	case ScopeNone:
		return 10
	default:
		return 0
	}
}

// Identity is the per-request view of the authenticated account.
//
// # Why a dedicated type?
//
// The access guard resolves the bearer token AND re-reads the account row on
// every request, so a deleted account or a revoked scope takes effect
// immediately. Handlers downstream only ever see this snapshot, never the
// raw JWT claims.
type Identity struct {
	UserID   string
	Email    string
	FullName string
	Verified bool
	Admin    bool
}

// Scope derives the authorization tier from the account flags.
func (i *Identity) Scope() Scope {
	switch {
	case i.Admin:
		return ScopeAdmin
	case i.Verified:
		return ScopeUser
	default:
		return ScopeNone
	}
}
