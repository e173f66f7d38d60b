// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classcord/classcord/internal/auth"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/sec"
)

// fakeUserRepository is an in-memory [auth.UserRepository] keyed by email.
type fakeUserRepository struct {
	byEmail map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return apperr.Conflict("User already exists")
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) List(_ context.Context) ([]*auth.User, error) {
	users := make([]*auth.User, 0, len(f.byEmail))
	for _, user := range f.byEmail {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepository) UpdateScope(_ context.Context, userID string, verified, admin bool) error {
	for _, user := range f.byEmail {
		if user.ID == userID {
			user.Verified = verified
			user.Admin = admin
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (f *fakeUserRepository) Delete(_ context.Context, userID string) error {
	for email, user := range f.byEmail {
		if user.ID == userID {
			delete(f.byEmail, email)
			return nil
		}
	}
	return apperr.NotFound("User")
}

// staticTokenIssuer returns a fixed token string for any email.
type staticTokenIssuer struct{ token string }

func (s staticTokenIssuer) Issue(string) (string, error) { return s.token, nil }

func validRegisterInput() auth.RegisterInput {
	return auth.RegisterInput{
		Email:     "ivan.petrov@example.com",
		Password:  "correct-horse",
		FirstName: "Ivan",
		LastName:  "Petrov",
	}
}

/*
TestService_Register_Success verifies a fresh registration produces an
unverified, non-admin account with a hashed password.
*/
func TestService_Register_Success(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, staticTokenIssuer{token: "tok"})

	user, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ivan.petrov@example.com", user.Email)
	assert.False(t, user.Verified)
	assert.False(t, user.Admin)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.Equal(t, sec.ScopeNone, user.Scope())
}

/*
TestService_Register_DuplicateEmail verifies the friendly 409 on re-registration.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, staticTokenIssuer{token: "tok"})

	_, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), validRegisterInput())
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	assert.Equal(t, "Email is already registered", ae.Message)
}

/*
TestService_Register_Validation covers the field-level rules.
*/
func TestService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*auth.RegisterInput)
		field  string
	}{
		{"missing_email", func(i *auth.RegisterInput) { i.Email = "" }, "email"},
		{"bad_email", func(i *auth.RegisterInput) { i.Email = "not-an-email" }, "email"},
		{"short_password", func(i *auth.RegisterInput) { i.Password = "short" }, "password"},
		{"short_first_name", func(i *auth.RegisterInput) { i.FirstName = "Al" }, "first_name"},
		{"short_last_name", func(i *auth.RegisterInput) { i.LastName = "Ng" }, "last_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepository()
			service := auth.NewService(repo, staticTokenIssuer{token: "tok"})

			input := validRegisterInput()
			tt.mutate(&input)

			_, err := service.Register(context.Background(), input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestService_Login verifies the credential check and token issuance, including
the generic 401 for both unknown email and wrong password.
*/
func TestService_Login(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, staticTokenIssuer{token: "signed-token"})

	_, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		result, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "ivan.petrov@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "signed-token", result.AccessToken)
		assert.Equal(t, "bearer", result.TokenType)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "ivan.petrov@example.com",
			Password: "wrong",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
		assert.Equal(t, "Invalid login credentials", ae.Message)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		// Same message as wrong_password: no email enumeration.
		assert.Equal(t, "Invalid login credentials", ae.Message)
	})
}

/*
TestService_IdentityByEmail verifies the access-guard lookup maps accounts to
identities and hides deleted accounts behind a generic 401.
*/
func TestService_IdentityByEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, staticTokenIssuer{token: "tok"})

	user, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	identity, err := service.IdentityByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "Ivan Petrov", identity.FullName)
	assert.Equal(t, sec.ScopeNone, identity.Scope())

	_, err = service.IdentityByEmail(context.Background(), "gone@example.com")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}
