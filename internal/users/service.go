// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// Package users implements account management on top of the auth package's
// credential store: profile viewing and editing, scope changes, deletion, and
// the per-user teaching overview.
package users

import (
	"context"
	"log/slog"

	"github.com/classcord/classcord/internal/auth"
	"github.com/classcord/classcord/internal/core/enrollment"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/sec"
	"github.com/classcord/classcord/internal/platform/validate"
)

// AssignmentSource lists the subject-teacher assignments of an account.
type AssignmentSource interface {
	ListForTeacher(ctx context.Context, teacherID string) ([]*enrollment.TeachingAssignment, error)
}

type Service struct {
	userRepository auth.UserRepository
	assignments    AssignmentSource
	logger         *slog.Logger
}

func NewService(userRepo auth.UserRepository, assignments AssignmentSource, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		assignments:    assignments,
		logger:         logger,
	}
}

// List returns every account, head classes populated.
func (service *Service) List(ctx context.Context) ([]*auth.User, error) {
	return service.userRepository.List(ctx)
}

// Get returns one account by email.
func (service *Service) Get(ctx context.Context, email string) (*auth.User, error) {
	return service.userRepository.FindByEmail(ctx, email)
}

// UpdateProfileInput holds the mutable profile fields.
type UpdateProfileInput struct {
	Email     string
	FirstName string
	LastName  string
}

// UpdateProfile edits the calling account.
//
// Changing the email to one owned by another account fails with Conflict;
// the UNIQUE constraint backs the pre-check.
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	validator := &validate.Validator{}
	validator.
		Required("email", input.Email).
		Email("email", input.Email).
		MaxLen("email", input.Email, 50).
		LenBetween("first_name", input.FirstName, 3, 50).
		LenBetween("last_name", input.LastName, 3, 50)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != user.Email {
		if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
			return nil, apperr.Conflict("Email is already registered")
		}
	}

	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	if err := service.userRepository.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("profile_updated", slog.String("user_id", userID))
	return user, nil
}

// Delete removes an account together with its messages and teacher refs.
func (service *Service) Delete(ctx context.Context, userID string) error {
	if err := service.userRepository.Delete(ctx, userID); err != nil {
		return err
	}

	service.logger.Warn("account_deleted", slog.String("user_id", userID))
	return nil
}

// DeleteByEmail is the admin-side removal of another account.
func (service *Service) DeleteByEmail(ctx context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return service.Delete(ctx, user.ID)
}

// scopeFlags maps a scope name to the account flags it implies.
func scopeFlags(scope sec.Scope) (verified, admin bool) {
	switch scope {
	case sec.ScopeAdmin:
		return true, true
	case sec.ScopeUser:
		return true, false
	default:
		return false, false
	}
}

// SetScope changes an account's authorization tier.
//
// Accepted values: "none", "user", "admin". Scope changes take effect on the
// target's next request because the access guard re-reads the account row.
func (service *Service) SetScope(ctx context.Context, email, scope string) (*auth.User, error) {
	validator := &validate.Validator{}
	if err := validator.OneOf("scope", scope, "none", "user", "admin").Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	target := sec.Scope(scope)
	if scope == "none" {
		target = sec.ScopeNone
	}
	verified, admin := scopeFlags(target)

	if err := service.userRepository.UpdateScope(ctx, user.ID, verified, admin); err != nil {
		return nil, err
	}

	user.Verified = verified
	user.Admin = admin

	service.logger.Info("scope_changed",
		slog.String("email", email), slog.String("scope", scope))
	return user, nil
}

// TeachingOverview is everything an account teaches: the class it heads plus
// its per-subject assignments.
type TeachingOverview struct {
	HeadClass   *auth.ClassRef                   `json:"head_class"`
	Assignments []*enrollment.TeachingAssignment `json:"assignments"`
}

// Classes returns the teaching overview for an account.
func (service *Service) Classes(ctx context.Context, email string) (*TeachingOverview, error) {
	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	assignments, err := service.assignments.ListForTeacher(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &TeachingOverview{
		HeadClass:   user.Class,
		Assignments: assignments,
	}, nil
}
