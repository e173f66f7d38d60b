// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package users_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classcord/classcord/internal/auth"
	"github.com/classcord/classcord/internal/core/enrollment"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/users"
	"github.com/classcord/classcord/pkg/uuidv7"
)

type fakeUserRepository struct {
	byID map[string]*auth.User
}

func newFakeUserRepository(accounts ...*auth.User) *fakeUserRepository {
	repo := &fakeUserRepository{byID: make(map[string]*auth.User)}
	for _, user := range accounts {
		repo.byID[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) List(_ context.Context) ([]*auth.User, error) {
	list := make([]*auth.User, 0, len(f.byID))
	for _, user := range f.byID {
		list = append(list, user)
	}
	return list, nil
}

func (f *fakeUserRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdateScope(_ context.Context, userID string, verified, admin bool) error {
	user, ok := f.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Verified = verified
	user.Admin = admin
	return nil
}

func (f *fakeUserRepository) Delete(_ context.Context, userID string) error {
	if _, ok := f.byID[userID]; !ok {
		return apperr.NotFound("User")
	}
	delete(f.byID, userID)
	return nil
}

type fakeAssignments struct {
	byTeacher map[string][]*enrollment.TeachingAssignment
}

func (f *fakeAssignments) ListForTeacher(_ context.Context, teacherID string) ([]*enrollment.TeachingAssignment, error) {
	return f.byTeacher[teacherID], nil
}

func newService(repo *fakeUserRepository, assignments *fakeAssignments) *users.Service {
	if assignments == nil {
		assignments = &fakeAssignments{}
	}
	return users.NewService(repo, assignments, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_UpdateProfile covers the edit flow: a kept email is fine, a taken
email conflicts, a freed email is fine again.
*/
func TestService_UpdateProfile(t *testing.T) {
	alice := &auth.User{ID: uuidv7.New(), Email: "alice@example.com", FirstName: "Alice", LastName: "Petrova"}
	bob := &auth.User{ID: uuidv7.New(), Email: "bob@example.com", FirstName: "Boris", LastName: "Ivanov"}
	repo := newFakeUserRepository(alice, bob)
	service := newService(repo, nil)

	t.Run("same_email_ok", func(t *testing.T) {
		updated, err := service.UpdateProfile(context.Background(), alice.ID, users.UpdateProfileInput{
			Email:     "alice@example.com",
			FirstName: "Alice",
			LastName:  "Georgieva",
		})
		require.NoError(t, err)
		assert.Equal(t, "Georgieva", updated.LastName)
	})

	t.Run("taken_email_conflicts", func(t *testing.T) {
		_, err := service.UpdateProfile(context.Background(), alice.ID, users.UpdateProfileInput{
			Email:     "bob@example.com",
			FirstName: "Alice",
			LastName:  "Georgieva",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
	})

	t.Run("invalid_fields", func(t *testing.T) {
		_, err := service.UpdateProfile(context.Background(), alice.ID, users.UpdateProfileInput{
			Email:     "not-an-email",
			FirstName: "A",
			LastName:  "Georgieva",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Len(t, ae.Details, 2)
	})
}

/*
TestService_SetScope maps scope names to the verified/admin flag pairs and
rejects unknown names.
*/
func TestService_SetScope(t *testing.T) {
	tests := []struct {
		scope        string
		wantVerified bool
		wantAdmin    bool
	}{
		{"admin", true, true},
		{"user", true, false},
		{"none", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			target := &auth.User{ID: uuidv7.New(), Email: "t@example.com"}
			service := newService(newFakeUserRepository(target), nil)

			updated, err := service.SetScope(context.Background(), "t@example.com", tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.wantVerified, updated.Verified)
			assert.Equal(t, tt.wantAdmin, updated.Admin)
		})
	}

	t.Run("unknown_scope", func(t *testing.T) {
		target := &auth.User{ID: uuidv7.New(), Email: "t@example.com"}
		service := newService(newFakeUserRepository(target), nil)

		_, err := service.SetScope(context.Background(), "t@example.com", "superuser")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("unknown_user", func(t *testing.T) {
		service := newService(newFakeUserRepository(), nil)

		_, err := service.SetScope(context.Background(), "ghost@example.com", "user")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})
}

/*
TestService_Classes combines the head class with subject assignments.
*/
func TestService_Classes(t *testing.T) {
	teacher := &auth.User{
		ID:    uuidv7.New(),
		Email: "head@example.com",
		Class: &auth.ClassRef{ID: "c1", Name: "10A"},
	}
	assignments := &fakeAssignments{byTeacher: map[string][]*enrollment.TeachingAssignment{
		teacher.ID: {
			{ClassName: "11B", SubjectName: "Math"},
		},
	}}
	service := newService(newFakeUserRepository(teacher), assignments)

	overview, err := service.Classes(context.Background(), "head@example.com")
	require.NoError(t, err)
	require.NotNil(t, overview.HeadClass)
	assert.Equal(t, "10A", overview.HeadClass.Name)
	require.Len(t, overview.Assignments, 1)
	assert.Equal(t, "Math", overview.Assignments[0].SubjectName)
}

/*
TestService_DeleteByEmail resolves the target then removes it.
*/
func TestService_DeleteByEmail(t *testing.T) {
	target := &auth.User{ID: uuidv7.New(), Email: "gone@example.com"}
	repo := newFakeUserRepository(target)
	service := newService(repo, nil)

	require.NoError(t, service.DeleteByEmail(context.Background(), "gone@example.com"))

	err := service.DeleteByEmail(context.Background(), "gone@example.com")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}
