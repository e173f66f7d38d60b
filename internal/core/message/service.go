package message

import (
	"context"
	"log/slog"

	"github.com/classcord/classcord/internal/core/class"
	"github.com/classcord/classcord/internal/core/enrollment"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/sec"
	"github.com/classcord/classcord/internal/platform/validate"
	"github.com/classcord/classcord/pkg/uuidv7"
)

// Notifier is the slice of the bot relay this service needs.
type Notifier interface {
	MessageCreated(ctx context.Context, guildID, subjectName, title, text, author string)
}

// EnrollmentDirectory resolves a (class, subject) pair to its enrollment.
type EnrollmentDirectory interface {
	Get(ctx context.Context, className, subjectName string) (*enrollment.Enrollment, error)
}

// ClassDirectory resolves classes for the guild lookup on relay.
type ClassDirectory interface {
	FindByName(ctx context.Context, name string) (*class.Class, error)
}

type Service struct {
	repo        Repository
	enrollments EnrollmentDirectory
	classes     ClassDirectory
	notifier    Notifier
	logger      *slog.Logger
}

func NewService(
	repo Repository,
	enrollments EnrollmentDirectory,
	classes ClassDirectory,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		enrollments: enrollments,
		classes:     classes,
		notifier:    notifier,
		logger:      logger,
	}
}

// authorizeFeed resolves the enrollment and checks feed access: only the
// assigned subject teacher or an admin may read or post.
func (service *Service) authorizeFeed(ctx context.Context, identity *sec.Identity, className, subjectName string) (*enrollment.Enrollment, error) {
	enr, err := service.enrollments.Get(ctx, className, subjectName)
	if err != nil {
		return nil, err
	}

	if identity.Admin {
		return enr, nil
	}
	if enr.Teacher == nil || enr.Teacher.ID != identity.UserID {
		return nil, apperr.Forbidden("Only the subject teacher may access this feed")
	}

	return enr, nil
}

// List returns a feed's messages oldest-first.
func (service *Service) List(ctx context.Context, identity *sec.Identity, className, subjectName string) ([]*Message, error) {
	enr, err := service.authorizeFeed(ctx, identity, className, subjectName)
	if err != nil {
		return nil, err
	}
	return service.repo.ListForEnrollment(ctx, enr.ID)
}

// CreateInput holds a new message's fields.
type CreateInput struct {
	Title string
	Body  string
}

// Create posts a message to a feed and relays it to the bot when the class
// has a guild bound. The relay runs after commit and never rolls the message
// back.
func (service *Service) Create(ctx context.Context, identity *sec.Identity, className, subjectName string, input CreateInput) (*Message, error) {
	enr, err := service.authorizeFeed(ctx, identity, className, subjectName)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.
		LenBetween("title", input.Title, 3, 50).
		MinLen("body", input.Body, 3)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	message := &Message{
		ID:             uuidv7.New(),
		ClassSubjectID: enr.ID,
		AuthorID:       identity.UserID,
		AuthorName:     identity.FullName,
		Title:          input.Title,
		Body:           input.Body,
	}
	if err := service.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	if cls, err := service.classes.FindByName(ctx, className); err == nil && cls.Initialized() {
		service.notifier.MessageCreated(ctx, *cls.GuildID, subjectName,
			message.Title, message.Body, message.AuthorName)
	}

	service.logger.Info("message_created",
		slog.String("class", className),
		slog.String("subject", subjectName),
		slog.String("author_id", identity.UserID))
	return message, nil
}

// Delete removes a message; only its author or an admin may.
func (service *Service) Delete(ctx context.Context, identity *sec.Identity, className, subjectName, messageID string) error {
	enr, err := service.enrollments.Get(ctx, className, subjectName)
	if err != nil {
		return err
	}

	message, err := service.repo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}

	// A message ID from another feed's URL is treated as absent, not
	// forbidden.
	if message.ClassSubjectID != enr.ID {
		return apperr.NotFound("Message")
	}

	if !identity.Admin && message.AuthorID != identity.UserID {
		return apperr.Forbidden("Only the author may delete this message")
	}

	if err := service.repo.Delete(ctx, messageID); err != nil {
		return err
	}

	service.logger.Info("message_deleted",
		slog.String("message_id", messageID), slog.String("deleted_by", identity.UserID))
	return nil
}
