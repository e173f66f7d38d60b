package class

import (
	"context"
	"log/slog"

	"github.com/classcord/classcord/internal/auth"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/sec"
	"github.com/classcord/classcord/internal/platform/validate"
	"github.com/classcord/classcord/pkg/uuidv7"
)

// Notifier is the slice of the bot relay this service needs.
type Notifier interface {
	// ClassDeleted tells the bot its guild's class is gone. Best-effort.
	ClassDeleted(ctx context.Context, guildID string)
}

// AccountDirectory resolves accounts for head-teacher assignment.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
}

type Service struct {
	repo     Repository
	accounts AccountDirectory
	notifier Notifier
	logger   *slog.Logger
}

func NewService(repo Repository, accounts AccountDirectory, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		notifier: notifier,
		logger:   logger,
	}
}

func (service *Service) List(ctx context.Context) ([]*Class, error) {
	return service.repo.List(ctx)
}

func (service *Service) Get(ctx context.Context, name string) (*Class, error) {
	return service.repo.FindByName(ctx, name)
}

// Create registers a new class and derives its handshake key from the name.
func (service *Service) Create(ctx context.Context, name string) (*Class, error) {
	validator := &validate.Validator{}
	if err := validator.LenBetween("name", name, 2, 10).Err(); err != nil {
		return nil, err
	}

	// Friendly-path check; the UNIQUE constraint on class.name is the
	// authoritative guard against concurrent duplicates.
	if _, err := service.repo.FindByName(ctx, name); err == nil {
		return nil, apperr.Conflict("Class already exists")
	}

	key, err := sec.NewClassKey(name)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	class := &Class{
		ID:   uuidv7.New(),
		Name: name,
		Key:  key,
	}
	if err := service.repo.Create(ctx, class); err != nil {
		return nil, err
	}

	service.logger.Info("class_created", slog.String("name", class.Name))
	return class, nil
}

// Rename changes the class name. The handshake key is not regenerated: a bot
// bound before the rename keeps working.
func (service *Service) Rename(ctx context.Context, name, newName string) (*Class, error) {
	validator := &validate.Validator{}
	if err := validator.LenBetween("name", newName, 2, 10).Err(); err != nil {
		return nil, err
	}

	class, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if name != newName {
		if _, err := service.repo.FindByName(ctx, newName); err == nil {
			return nil, apperr.Conflict("Class already exists")
		}
		if err := service.repo.Rename(ctx, class.ID, newName); err != nil {
			return nil, err
		}
		class.Name = newName
	}

	service.logger.Info("class_renamed",
		slog.String("old_name", name), slog.String("new_name", newName))
	return class, nil
}

// Delete removes a class with its enrollments and messages, then tells the
// bot if a guild was bound. The relay runs after commit and never rolls the
// deletion back.
func (service *Service) Delete(ctx context.Context, name string) error {
	class, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, class.ID); err != nil {
		return err
	}

	if class.Initialized() {
		service.notifier.ClassDeleted(ctx, *class.GuildID)
	}

	service.logger.Warn("class_deleted", slog.String("name", name))
	return nil
}

// SetTeacher makes the account with the given email the head teacher.
//
// A user heads at most one class: assignment fails with Conflict while the
// user still heads a different class. Assigning the current head again is a
// no-op rather than an error.
func (service *Service) SetTeacher(ctx context.Context, name, email string) error {
	class, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}

	user, err := service.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.Class != nil && user.Class.ID != class.ID {
		return apperr.Conflict("User already heads another class")
	}

	if err := service.repo.SetHeadTeacher(ctx, class.ID, user.ID); err != nil {
		return err
	}

	service.logger.Info("class_teacher_set",
		slog.String("class", name), slog.String("email", email))
	return nil
}

// RemoveTeacher clears the head-teacher assignment.
func (service *Service) RemoveTeacher(ctx context.Context, name string) error {
	class, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if err := service.repo.RemoveHeadTeacher(ctx, class.ID); err != nil {
		return err
	}

	service.logger.Info("class_teacher_removed", slog.String("class", name))
	return nil
}

// Key discloses the handshake secret for admins setting up the bot.
func (service *Service) Key(ctx context.Context, name string) (string, error) {
	class, err := service.repo.FindByName(ctx, name)
	if err != nil {
		return "", err
	}
	return class.Key, nil
}
