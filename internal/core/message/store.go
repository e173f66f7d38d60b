package message

import "context"

type Repository interface {
	Create(ctx context.Context, message *Message) error

	// FindByID returns a message with its author name populated.
	FindByID(ctx context.Context, messageID string) (*Message, error)

	// ListForEnrollment returns an enrollment's messages oldest-first.
	ListForEnrollment(ctx context.Context, enrollmentID string) ([]*Message, error)

	Delete(ctx context.Context, messageID string) error
}
