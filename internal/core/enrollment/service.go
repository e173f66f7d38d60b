package enrollment

import (
	"context"
	"log/slog"

	"github.com/classcord/classcord/internal/auth"
	"github.com/classcord/classcord/internal/core/class"
	"github.com/classcord/classcord/internal/core/subject"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/pkg/uuidv7"
)

// Notifier is the slice of the bot relay this service needs.
type Notifier interface {
	SubjectAdded(ctx context.Context, guildID, subjectName string)
	SubjectRemoved(ctx context.Context, guildID, subjectName string)
}

// ClassDirectory resolves classes by name.
type ClassDirectory interface {
	FindByName(ctx context.Context, name string) (*class.Class, error)
}

// SubjectDirectory resolves subjects by name.
type SubjectDirectory interface {
	FindByName(ctx context.Context, name string) (*subject.Subject, error)
}

// AccountDirectory resolves accounts for subject-teacher assignment.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
}

type Service struct {
	repo     Repository
	classes  ClassDirectory
	subjects SubjectDirectory
	accounts AccountDirectory
	notifier Notifier
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	classes ClassDirectory,
	subjects SubjectDirectory,
	accounts AccountDirectory,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		classes:  classes,
		subjects: subjects,
		accounts: accounts,
		notifier: notifier,
		logger:   logger,
	}
}

// resolvePair maps (class name, subject name) to their rows, NotFound on
// either miss.
func (service *Service) resolvePair(ctx context.Context, className, subjectName string) (*class.Class, *subject.Subject, error) {
	cls, err := service.classes.FindByName(ctx, className)
	if err != nil {
		return nil, nil, err
	}

	subj, err := service.subjects.FindByName(ctx, subjectName)
	if err != nil {
		return nil, nil, err
	}

	return cls, subj, nil
}

// List returns a class's enrollments (subject + optional teacher per row).
func (service *Service) List(ctx context.Context, className string) ([]*Enrollment, error) {
	cls, err := service.classes.FindByName(ctx, className)
	if err != nil {
		return nil, err
	}
	return service.repo.ListForClass(ctx, cls.ID)
}

// Get returns one enrollment of a class.
func (service *Service) Get(ctx context.Context, className, subjectName string) (*Enrollment, error) {
	cls, subj, err := service.resolvePair(ctx, className, subjectName)
	if err != nil {
		return nil, err
	}
	return service.repo.Find(ctx, cls.ID, subj.ID)
}

// Add attaches a subject to a class.
//
// Attaching an already-attached pair fails with Conflict; the
// UNIQUE(class_id, subject_id) constraint backs the pre-check against
// concurrent attaches. The bot is told after commit when a guild is bound.
func (service *Service) Add(ctx context.Context, className, subjectName string) (*Enrollment, error) {
	cls, subj, err := service.resolvePair(ctx, className, subjectName)
	if err != nil {
		return nil, err
	}

	if _, err := service.repo.Find(ctx, cls.ID, subj.ID); err == nil {
		return nil, apperr.Conflict("Subject is already attached to this class")
	}

	enrollment := &Enrollment{
		ID:          uuidv7.New(),
		ClassID:     cls.ID,
		SubjectID:   subj.ID,
		SubjectName: subj.Name,
	}
	if err := service.repo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	if cls.Initialized() {
		service.notifier.SubjectAdded(ctx, *cls.GuildID, subj.Name)
	}

	service.logger.Info("subject_attached",
		slog.String("class", className), slog.String("subject", subjectName))
	return enrollment, nil
}

// Remove detaches a subject from a class, deleting the pair's messages.
//
// Detaching a non-attached pair fails with Conflict.
func (service *Service) Remove(ctx context.Context, className, subjectName string) error {
	cls, subj, err := service.resolvePair(ctx, className, subjectName)
	if err != nil {
		return err
	}

	enrollment, err := service.repo.Find(ctx, cls.ID, subj.ID)
	if err != nil {
		return apperr.Conflict("Subject is not attached to this class")
	}

	if err := service.repo.Delete(ctx, enrollment.ID); err != nil {
		return err
	}

	if cls.Initialized() {
		service.notifier.SubjectRemoved(ctx, *cls.GuildID, subj.Name)
	}

	service.logger.Info("subject_detached",
		slog.String("class", className), slog.String("subject", subjectName))
	return nil
}

// SetTeacher assigns the subject teacher for one (class, subject) pair.
//
// The target must exist and be a verified account; fresh registrations cannot
// be handed a class feed.
func (service *Service) SetTeacher(ctx context.Context, className, subjectName, email string) error {
	enrollment, err := service.Get(ctx, className, subjectName)
	if err != nil {
		return err
	}

	user, err := service.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !user.Verified {
		return apperr.Conflict("User is not verified")
	}

	if err := service.repo.SetTeacher(ctx, enrollment.ID, user.ID); err != nil {
		return err
	}

	service.logger.Info("subject_teacher_set",
		slog.String("class", className),
		slog.String("subject", subjectName),
		slog.String("email", email))
	return nil
}

// RemoveTeacher clears the subject teacher; NotFound when none is set.
func (service *Service) RemoveTeacher(ctx context.Context, className, subjectName string) error {
	enrollment, err := service.Get(ctx, className, subjectName)
	if err != nil {
		return err
	}

	if enrollment.Teacher == nil {
		return apperr.NotFound("Subject teacher")
	}

	if err := service.repo.RemoveTeacher(ctx, enrollment.ID); err != nil {
		return err
	}

	service.logger.Info("subject_teacher_removed",
		slog.String("class", className), slog.String("subject", subjectName))
	return nil
}

// ListForTeacher returns the (class, subject) assignments where the user is
// the subject teacher. Backs the per-user classes listing.
func (service *Service) ListForTeacher(ctx context.Context, teacherID string) ([]*TeachingAssignment, error) {
	return service.repo.ListForTeacher(ctx, teacherID)
}
