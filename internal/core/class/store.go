package class

import "context"

type Repository interface {
	Create(ctx context.Context, class *Class) error
	FindByName(ctx context.Context, name string) (*Class, error)
	FindByKey(ctx context.Context, key string) (*Class, error)
	FindByGuildID(ctx context.Context, guildID string) (*Class, error)
	List(ctx context.Context) ([]*Class, error)

	// Rename changes the class name. The key is derived at creation and is
	// deliberately NOT regenerated on rename.
	Rename(ctx context.Context, classID, newName string) error

	// Delete removes the class, its enrollments and their messages, and
	// clears the head-teacher back-reference, in one transaction.
	Delete(ctx context.Context, classID string) error

	// SetGuildID binds (non-nil) or clears (nil) the Discord guild.
	SetGuildID(ctx context.Context, classID string, guildID *string) error

	// CountInitialized returns how many classes have a guild bound.
	CountInitialized(ctx context.Context) (int, error)

	// SetHeadTeacher points account.class_id at the class, clearing whoever
	// held it before, in one transaction.
	SetHeadTeacher(ctx context.Context, classID, userID string) error

	// RemoveHeadTeacher clears the back-reference. Returns apperr.NotFound
	// if the class has no head teacher.
	RemoveHeadTeacher(ctx context.Context, classID string) error
}
