package enrollment

import "context"

type Repository interface {
	// Create persists a new (class, subject) pair. A duplicate pair surfaces
	// as an apperr Conflict via the UNIQUE(class_id, subject_id) constraint.
	Create(ctx context.Context, enrollment *Enrollment) error

	// Find returns the enrollment for a (class, subject) pair, teacher
	// populated. Returns apperr.NotFound when the pair is not attached.
	Find(ctx context.Context, classID, subjectID string) (*Enrollment, error)

	// ListForClass returns a class's enrollments ordered by subject name.
	ListForClass(ctx context.Context, classID string) ([]*Enrollment, error)

	// ListForTeacher returns the assignments where the user is the subject
	// teacher.
	ListForTeacher(ctx context.Context, teacherID string) ([]*TeachingAssignment, error)

	// Delete removes the enrollment and its messages in one transaction.
	Delete(ctx context.Context, enrollmentID string) error

	SetTeacher(ctx context.Context, enrollmentID, teacherID string) error
	RemoveTeacher(ctx context.Context, enrollmentID string) error
}
