package class

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classcord/classcord/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// classSelect joins the head teacher through account.class_id so every class
// read carries its teacher in one round-trip.
const classSelect = `
	SELECT c.id, c.name, c.guild_id, c.key, c.created_at,
	       a.id, a.email, a.first_name, a.last_name
	FROM class c
	LEFT JOIN account a ON a.class_id = c.id`

func scanClass(row pgx.Row) (*Class, error) {
	class := &Class{}
	var teacherID, teacherEmail, teacherFirstName, teacherLastName *string

	err := row.Scan(
		&class.ID,
		&class.Name,
		&class.GuildID,
		&class.Key,
		&class.CreatedAt,
		&teacherID,
		&teacherEmail,
		&teacherFirstName,
		&teacherLastName,
	)
	if err != nil {
		return nil, err
	}

	if teacherID != nil {
		class.Teacher = &TeacherRef{
			ID:        *teacherID,
			Email:     *teacherEmail,
			FirstName: *teacherFirstName,
			LastName:  *teacherLastName,
		}
	}

	return class, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, class *Class) error {
	const query = `
		INSERT INTO class (id, name, guild_id, key)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := repository.db.QueryRow(ctx, query,
		class.ID, class.Name, class.GuildID, class.Key,
	).Scan(&class.CreatedAt)

	return dberr.Wrap(err, "Class")
}

func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Class, error) {
	class, err := scanClass(repository.db.QueryRow(ctx, classSelect+` WHERE c.name = $1`, name))
	if err != nil {
		return nil, dberr.Wrap(err, "Class")
	}
	return class, nil
}

func (repository *PostgresRepository) FindByKey(ctx context.Context, key string) (*Class, error) {
	class, err := scanClass(repository.db.QueryRow(ctx, classSelect+` WHERE c.key = $1`, key))
	if err != nil {
		return nil, dberr.Wrap(err, "Class")
	}
	return class, nil
}

func (repository *PostgresRepository) FindByGuildID(ctx context.Context, guildID string) (*Class, error) {
	class, err := scanClass(repository.db.QueryRow(ctx, classSelect+` WHERE c.guild_id = $1`, guildID))
	if err != nil {
		return nil, dberr.Wrap(err, "Class")
	}
	return class, nil
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Class, error) {
	rows, err := repository.db.Query(ctx, classSelect+` ORDER BY c.name`)
	if err != nil {
		return nil, dberr.Wrap(err, "Class")
	}
	defer rows.Close()

	classes := make([]*Class, 0)
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Class")
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

func (repository *PostgresRepository) Rename(ctx context.Context, classID, newName string) error {
	tag, err := repository.db.Exec(ctx,
		`UPDATE class SET name = $2 WHERE id = $1`, classID, newName)
	if err != nil {
		return dberr.Wrap(err, "Class")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Class")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, classID string) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "Class")
	}
	defer transaction.Rollback(ctx)

	// Explicit cascade, innermost first: messages hang off enrollments.
	if _, err := transaction.Exec(ctx, `
		DELETE FROM message
		WHERE class_subject_id IN (SELECT id FROM class_subject WHERE class_id = $1)`, classID); err != nil {
		return dberr.Wrap(err, "Class")
	}

	if _, err := transaction.Exec(ctx,
		`DELETE FROM class_subject WHERE class_id = $1`, classID); err != nil {
		return dberr.Wrap(err, "Class")
	}

	if _, err := transaction.Exec(ctx,
		`UPDATE account SET class_id = NULL WHERE class_id = $1`, classID); err != nil {
		return dberr.Wrap(err, "Class")
	}

	tag, err := transaction.Exec(ctx, `DELETE FROM class WHERE id = $1`, classID)
	if err != nil {
		return dberr.Wrap(err, "Class")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Class")
	}

	return dberr.Wrap(transaction.Commit(ctx), "Class")
}

func (repository *PostgresRepository) SetGuildID(ctx context.Context, classID string, guildID *string) error {
	tag, err := repository.db.Exec(ctx,
		`UPDATE class SET guild_id = $2 WHERE id = $1`, classID, guildID)
	if err != nil {
		return dberr.Wrap(err, "Class")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Class")
	}
	return nil
}

func (repository *PostgresRepository) CountInitialized(ctx context.Context) (int, error) {
	var count int
	err := repository.db.QueryRow(ctx,
		`SELECT count(*) FROM class WHERE guild_id IS NOT NULL`).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "Class")
	}
	return count, nil
}

func (repository *PostgresRepository) SetHeadTeacher(ctx context.Context, classID, userID string) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "Class")
	}
	defer transaction.Rollback(ctx)

	// Clear the current holder first so the UNIQUE(class_id) constraint
	// cannot trip on a handover.
	if _, err := transaction.Exec(ctx,
		`UPDATE account SET class_id = NULL WHERE class_id = $1`, classID); err != nil {
		return dberr.Wrap(err, "Class")
	}

	tag, err := transaction.Exec(ctx,
		`UPDATE account SET class_id = $1 WHERE id = $2`, classID, userID)
	if err != nil {
		// UNIQUE violation here means the user grabbed another class
		// concurrently; surfaces as Conflict.
		return dberr.Wrap(err, "Class teacher")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}

	return dberr.Wrap(transaction.Commit(ctx), "Class")
}

func (repository *PostgresRepository) RemoveHeadTeacher(ctx context.Context, classID string) error {
	tag, err := repository.db.Exec(ctx,
		`UPDATE account SET class_id = NULL WHERE class_id = $1`, classID)
	if err != nil {
		return dberr.Wrap(err, "Class teacher")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Class teacher")
	}
	return nil
}
