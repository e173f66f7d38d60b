package subject

import "context"

type Repository interface {
	Create(ctx context.Context, subject *Subject) error
	FindByName(ctx context.Context, name string) (*Subject, error)
	List(ctx context.Context) ([]*Subject, error)
	Rename(ctx context.Context, subjectID, newName string) error

	// Delete removes the subject, its enrollments and their messages in one
	// transaction.
	Delete(ctx context.Context, subjectID string) error

	// ListClasses returns the classes the subject is attached to.
	ListClasses(ctx context.Context, subjectID string) ([]*ClassRef, error)
}
