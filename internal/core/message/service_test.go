package message_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classcord/classcord/internal/core/class"
	"github.com/classcord/classcord/internal/core/enrollment"
	"github.com/classcord/classcord/internal/core/message"
	"github.com/classcord/classcord/internal/platform/apperr"
	"github.com/classcord/classcord/internal/platform/sec"
	"github.com/classcord/classcord/pkg/uuidv7"
)

type fakeRepository struct {
	byID map[string]*message.Message
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: make(map[string]*message.Message)}
}

func (f *fakeRepository) Create(_ context.Context, m *message.Message) error {
	f.byID[m.ID] = m
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, messageID string) (*message.Message, error) {
	if m, ok := f.byID[messageID]; ok {
		return m, nil
	}
	return nil, apperr.NotFound("Message")
}

func (f *fakeRepository) ListForEnrollment(_ context.Context, enrollmentID string) ([]*message.Message, error) {
	messages := make([]*message.Message, 0)
	for _, m := range f.byID {
		if m.ClassSubjectID == enrollmentID {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

func (f *fakeRepository) Delete(_ context.Context, messageID string) error {
	if _, ok := f.byID[messageID]; !ok {
		return apperr.NotFound("Message")
	}
	delete(f.byID, messageID)
	return nil
}

type fakeEnrollments struct {
	enrollment *enrollment.Enrollment
}

func (f *fakeEnrollments) Get(_ context.Context, className, subjectName string) (*enrollment.Enrollment, error) {
	if className == "10A" && subjectName == "Math" && f.enrollment != nil {
		return f.enrollment, nil
	}
	return nil, apperr.NotFound("Enrollment")
}

type fakeClasses struct {
	class *class.Class
}

func (f *fakeClasses) FindByName(_ context.Context, name string) (*class.Class, error) {
	if f.class != nil && f.class.Name == name {
		return f.class, nil
	}
	return nil, apperr.NotFound("Class")
}

type recordingNotifier struct {
	created []string
}

func (r *recordingNotifier) MessageCreated(_ context.Context, guildID, subjectName, title, _, _ string) {
	r.created = append(r.created, guildID+"/"+subjectName+"/"+title)
}

var (
	teacherIdentity = &sec.Identity{UserID: "teacher-1", FullName: "Ivan Petrov", Verified: true}
	otherIdentity   = &sec.Identity{UserID: "other-1", FullName: "Maria Ivanova", Verified: true}
	adminIdentity   = &sec.Identity{UserID: "admin-1", FullName: "Root Admin", Verified: true, Admin: true}
)

type fixture struct {
	service  *message.Service
	repo     *fakeRepository
	notifier *recordingNotifier
}

func newFixture(guildBound bool) *fixture {
	guildID := "guild-42"
	cls := &class.Class{ID: uuidv7.New(), Name: "10A"}
	if guildBound {
		cls.GuildID = &guildID
	}

	enr := &enrollment.Enrollment{
		ID:          uuidv7.New(),
		ClassID:     cls.ID,
		SubjectName: "Math",
		Teacher:     &enrollment.TeacherRef{ID: "teacher-1"},
	}

	repo := newFakeRepository()
	notifier := &recordingNotifier{}
	service := message.NewService(
		repo,
		&fakeEnrollments{enrollment: enr},
		&fakeClasses{class: cls},
		notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return &fixture{service: service, repo: repo, notifier: notifier}
}

/*
TestService_Create covers posting: teacher and admin may post, others are
forbidden, validation applies, and the bot is told when a guild is bound.
*/
func TestService_Create(t *testing.T) {
	fx := newFixture(true)
	input := message.CreateInput{Title: "Homework", Body: "Pages 10-12 for Friday."}

	created, err := fx.service.Create(context.Background(), teacherIdentity, "10A", "Math", input)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", created.AuthorName)
	assert.Equal(t, []string{"guild-42/Math/Homework"}, fx.notifier.created)

	t.Run("admin_may_post", func(t *testing.T) {
		_, err := fx.service.Create(context.Background(), adminIdentity, "10A", "Math", input)
		require.NoError(t, err)
	})

	t.Run("non_teacher_forbidden", func(t *testing.T) {
		_, err := fx.service.Create(context.Background(), otherIdentity, "10A", "Math", input)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	})

	t.Run("short_title", func(t *testing.T) {
		_, err := fx.service.Create(context.Background(), teacherIdentity, "10A", "Math",
			message.CreateInput{Title: "Hi", Body: "A body long enough."})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("unknown_feed", func(t *testing.T) {
		_, err := fx.service.Create(context.Background(), teacherIdentity, "10A", "Biology", input)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})
}

/*
TestService_Create_UnboundGuild verifies no relay without a guild binding.
*/
func TestService_Create_UnboundGuild(t *testing.T) {
	fx := newFixture(false)

	_, err := fx.service.Create(context.Background(), teacherIdentity, "10A", "Math",
		message.CreateInput{Title: "Homework", Body: "Pages 10-12."})
	require.NoError(t, err)
	assert.Empty(t, fx.notifier.created)
}

/*
TestService_List verifies the read gate: subject teacher and admin only.
*/
func TestService_List(t *testing.T) {
	fx := newFixture(false)

	_, err := fx.service.Create(context.Background(), teacherIdentity, "10A", "Math",
		message.CreateInput{Title: "Homework", Body: "Pages 10-12."})
	require.NoError(t, err)

	messages, err := fx.service.List(context.Background(), teacherIdentity, "10A", "Math")
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	messages, err = fx.service.List(context.Background(), adminIdentity, "10A", "Math")
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	_, err = fx.service.List(context.Background(), otherIdentity, "10A", "Math")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
}

/*
TestService_Delete verifies author-or-admin deletion and the cross-feed guard.
*/
func TestService_Delete(t *testing.T) {
	fx := newFixture(false)

	created, err := fx.service.Create(context.Background(), teacherIdentity, "10A", "Math",
		message.CreateInput{Title: "Homework", Body: "Pages 10-12."})
	require.NoError(t, err)

	t.Run("non_author_forbidden", func(t *testing.T) {
		err := fx.service.Delete(context.Background(), otherIdentity, "10A", "Math", created.ID)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	})

	t.Run("foreign_feed_not_found", func(t *testing.T) {
		stray := &message.Message{ID: uuidv7.New(), ClassSubjectID: "other-enrollment", AuthorID: "teacher-1"}
		require.NoError(t, fx.repo.Create(context.Background(), stray))

		err := fx.service.Delete(context.Background(), adminIdentity, "10A", "Math", stray.ID)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})

	t.Run("author_may_delete", func(t *testing.T) {
		require.NoError(t, fx.service.Delete(context.Background(), teacherIdentity, "10A", "Math", created.ID))
	})

	t.Run("already_gone", func(t *testing.T) {
		err := fx.service.Delete(context.Background(), adminIdentity, "10A", "Math", created.ID)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})
}
