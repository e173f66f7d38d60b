// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/ctxutil"
	"github.com/classcord/classcord/internal/platform/middleware"
	"github.com/classcord/classcord/internal/platform/sec"
)

type staticTokens struct {
	email string
	err   error
}

func (s staticTokens) Resolve(string) (string, error) { return s.email, s.err }

type staticIdentities struct {
	identity *sec.Identity
	err      error
}

func (s staticIdentities) IdentityByEmail(context.Context, string) (*sec.Identity, error) {
	return s.identity, s.err
}

// capture records the identity that reached the inner handler.
func capture(seen **sec.Identity) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*seen = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate covers the bearer-token flow: anonymous pass-through, format
rejection, live account lookup, and the deleted-account case.
*/
func TestAuthenticate(t *testing.T) {
	teacher := &sec.Identity{UserID: "u1", Email: "teacher@example.com", Verified: true}

	t.Run("anonymous_passes_through", func(t *testing.T) {
		var seen *sec.Identity
		handler := middleware.Authenticate(staticTokens{}, staticIdentities{})(capture(&seen))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Nil(t, seen)
	})

	t.Run("malformed_header_rejected", func(t *testing.T) {
		var seen *sec.Identity
		handler := middleware.Authenticate(staticTokens{}, staticIdentities{})(capture(&seen))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Token abc")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, seen)
	})

	t.Run("valid_token_injects_identity", func(t *testing.T) {
		var seen *sec.Identity
		handler := middleware.Authenticate(
			staticTokens{email: "teacher@example.com"},
			staticIdentities{identity: teacher},
		)(capture(&seen))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer good-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "u1", seen.UserID)
	})

	t.Run("deleted_account_rejected", func(t *testing.T) {
		var seen *sec.Identity
		handler := middleware.Authenticate(
			staticTokens{email: "gone@example.com"},
			staticIdentities{err: apperr.NotFound("User")},
		)(capture(&seen))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer stale-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		// Token validity and account existence must be indistinguishable.
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, seen)
	})

	t.Run("expired_token_rejected", func(t *testing.T) {
		handler := middleware.Authenticate(
			staticTokens{err: sec.ErrTokenExpired},
			staticIdentities{},
		)(capture(new(*sec.Identity)))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer expired-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

/*
TestScopeGates checks the escalating access guard: 401 for anonymous callers,
403 below the required tier, 200 at or above it.
*/
func TestScopeGates(t *testing.T) {
	tests := []struct {
		name     string
		gate     func(http.Handler) http.Handler
		identity *sec.Identity
		want     int
	}{
		{"auth_blocks_anonymous", middleware.RequireAuth, nil, http.StatusUnauthorized},
		{"auth_admits_unverified", middleware.RequireAuth, &sec.Identity{}, http.StatusOK},
		{"verified_blocks_anonymous", middleware.RequireVerified, nil, http.StatusUnauthorized},
		{"verified_blocks_unverified", middleware.RequireVerified, &sec.Identity{}, http.StatusForbidden},
		{"verified_admits_user", middleware.RequireVerified, &sec.Identity{Verified: true}, http.StatusOK},
		{"verified_admits_admin", middleware.RequireVerified, &sec.Identity{Admin: true}, http.StatusOK},
		{"admin_blocks_user", middleware.RequireAdmin, &sec.Identity{Verified: true}, http.StatusForbidden},
		{"admin_admits_admin", middleware.RequireAdmin, &sec.Identity{Verified: true, Admin: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.gate(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				request = request.WithContext(ctxutil.WithIdentity(request.Context(), tt.identity))
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}
