// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package auth

import "context"

// UserRepository defines the persistence contract for accounts.
//
// It is shared by the auth service (registration, login, access guard) and
// the users service (profile management); both operate on the same account
// rows, so splitting the contract would only duplicate queries.
type UserRepository interface {
	// Create persists a new account. A unique violation on email surfaces
	// as an apperr Conflict.
	Create(ctx context.Context, user *User) error

	// FindByEmail retrieves an account (with its head-class reference) by
	// its unique email. Returns apperr.NotFound if no account exists.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID retrieves an account by its primary key.
	FindByID(ctx context.Context, id string) (*User, error)

	// List returns all accounts ordered by email, head-class populated.
	List(ctx context.Context) ([]*User, error)

	// UpdateProfile persists changes to email and first/last name. A unique
	// violation on the new email surfaces as an apperr Conflict.
	UpdateProfile(ctx context.Context, user *User) error

	// UpdateScope sets the verified/admin flags.
	UpdateScope(ctx context.Context, userID string, verified, admin bool) error

	// Delete removes the account together with its authored messages and
	// clears any subject-teacher references, in one transaction.
	Delete(ctx context.Context, userID string) error
}
