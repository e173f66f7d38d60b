package subject

import (
	"context"
	"log/slog"

	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/validate"
	"github.com/classcord/classcord/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(ctx context.Context) ([]*Subject, error) {
	return service.repo.List(ctx)
}

func (service *Service) Get(ctx context.Context, name string) (*Subject, error) {
	return service.repo.FindByName(ctx, name)
}

func (service *Service) Create(ctx context.Context, name string) (*Subject, error) {
	validator := &validate.Validator{}
	if err := validator.LenBetween("name", name, 3, 50).Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByName(ctx, name); err == nil {
		return nil, apperr.Conflict("Subject already exists")
	}

	subject := &Subject{
		ID:   uuidv7.New(),
		Name: name,
	}
	if err := service.repo.Create(ctx, subject); err != nil {
		return nil, err
	}

	service.logger.Info("subject_created", slog.String("name", subject.Name))
	return subject, nil
}

func (service *Service) Rename(ctx context.Context, name, newName string) (*Subject, error) {
	validator := &validate.Validator{}
	if err := validator.LenBetween("name", newName, 3, 50).Err(); err != nil {
		return nil, err
	}

	subject, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if name != newName {
		if _, err := service.repo.FindByName(ctx, newName); err == nil {
			return nil, apperr.Conflict("Subject already exists")
		}
		if err := service.repo.Rename(ctx, subject.ID, newName); err != nil {
			return nil, err
		}
		subject.Name = newName
	}

	service.logger.Info("subject_renamed",
		slog.String("old_name", name), slog.String("new_name", newName))
	return subject, nil
}

func (service *Service) Delete(ctx context.Context, name string) error {
	subject, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, subject.ID); err != nil {
		return err
	}

	service.logger.Warn("subject_deleted", slog.String("name", name))
	return nil
}

// ListClasses returns the classes a subject is taught in.
func (service *Service) ListClasses(ctx context.Context, name string) ([]*ClassRef, error) {
	subject, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return service.repo.ListClasses(ctx, subject.ID)
}
