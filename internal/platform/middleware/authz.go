// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/ctxutil"
	"github.com/classcord/classcord/internal/platform/respond"
	"github.com/classcord/classcord/internal/platform/sec"
)

// TokenResolver defines the interface needed to resolve bearer tokens.
//
// # Why an interface?
//
// Defining TokenResolver here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenResolver interface {
	Resolve(tokenString string) (email string, err error)
}

// IdentitySource loads the account snapshot for a resolved token subject.
//
// The lookup happens on EVERY authenticated request: a token for a deleted
// account must stop working immediately, and scope changes (verify/revoke)
// must take effect without waiting for token expiry.
type IdentitySource interface {
	IdentityByEmail(ctx context.Context, email string) (*sec.Identity, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the token subject via [TokenResolver].
//  4. Load the live account via [IdentitySource]; a missing account is treated
//     the same as a bad token.
//  5. Inject [*sec.Identity] into the request context for downstream use.
func Authenticate(tokens TokenResolver, identities IdentitySource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Resolution ───────────────────────────────────────────
			email, err := tokens.Resolve(parts[1])
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Account Lookup ─────────────────────────────────────────────
			identity, err := identities.IdentityByEmail(request.Context(), email)
			if err != nil {
				// Do not leak whether the token was valid for a since-deleted account.
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireVerified blocks requests from accounts that an admin has not verified.
//
// It implies [RequireAuth]: anonymous requests receive 401, unverified
// accounts receive 403.
func RequireVerified(next http.Handler) http.Handler {
	return requireScope(sec.ScopeUser, next)
}

// RequireAdmin blocks requests from non-admin accounts.
//
// It implies [RequireAuth] the same way [RequireVerified] does.
func RequireAdmin(next http.Handler) http.Handler {
	return requireScope(sec.ScopeAdmin, next)
}

// requireScope enforces the escalating scope checks of the access guard.
func requireScope(target sec.Scope, next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !identity.Scope().AtLeast(target) {
			respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
