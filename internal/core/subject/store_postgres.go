package subject

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classcord/classcord/internal/platform/database/schema"
	"github.com/classcord/classcord/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(ctx context.Context, subject *Subject) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s`,
		schema.Subject.Table, schema.Subject.ID, schema.Subject.Name,
		schema.Subject.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query, subject.ID, subject.Name).Scan(&subject.CreatedAt)
	return dberr.Wrap(err, "Subject")
}

func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Subject, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Subject.ID, schema.Subject.Name, schema.Subject.CreatedAt,
		schema.Subject.Table, schema.Subject.Name,
	)

	subject := &Subject{}
	err := repository.db.QueryRow(ctx, query, name).Scan(&subject.ID, &subject.Name, &subject.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Subject")
	}

	return subject, nil
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Subject, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s`,
		schema.Subject.ID, schema.Subject.Name, schema.Subject.CreatedAt,
		schema.Subject.Table, schema.Subject.Name,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Subject")
	}
	defer rows.Close()

	subjects := make([]*Subject, 0)
	for rows.Next() {
		subject := &Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "Subject")
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

func (repository *PostgresRepository) Rename(ctx context.Context, subjectID, newName string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Subject.Table, schema.Subject.Name, schema.Subject.ID,
	)

	tag, err := repository.db.Exec(ctx, query, subjectID, newName)
	if err != nil {
		return dberr.Wrap(err, "Subject")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Subject")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, subjectID string) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "Subject")
	}
	defer transaction.Rollback(ctx)

	deleteMessages := fmt.Sprintf(`
		DELETE FROM message
		WHERE class_subject_id IN (SELECT %s FROM %s WHERE %s = $1)`,
		schema.ClassSubject.ID, schema.ClassSubject.Table, schema.ClassSubject.SubjectID,
	)
	if _, err := transaction.Exec(ctx, deleteMessages, subjectID); err != nil {
		return dberr.Wrap(err, "Subject")
	}

	deleteEnrollments := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ClassSubject.Table, schema.ClassSubject.SubjectID,
	)
	if _, err := transaction.Exec(ctx, deleteEnrollments, subjectID); err != nil {
		return dberr.Wrap(err, "Subject")
	}

	tag, err := transaction.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Subject.Table, schema.Subject.ID),
		subjectID)
	if err != nil {
		return dberr.Wrap(err, "Subject")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Subject")
	}

	return dberr.Wrap(transaction.Commit(ctx), "Subject")
}

func (repository *PostgresRepository) ListClasses(ctx context.Context, subjectID string) ([]*ClassRef, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s cs ON cs.%s = c.%s
		WHERE cs.%s = $1
		ORDER BY c.%s`,
		schema.Class.ID, schema.Class.Name, schema.Class.GuildID,
		schema.Class.Table,
		schema.ClassSubject.Table, schema.ClassSubject.ClassID, schema.Class.ID,
		schema.ClassSubject.SubjectID,
		schema.Class.Name,
	)

	rows, err := repository.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, dberr.Wrap(err, "Subject")
	}
	defer rows.Close()

	classes := make([]*ClassRef, 0)
	for rows.Next() {
		class := &ClassRef{}
		if err := rows.Scan(&class.ID, &class.Name, &class.GuildID); err != nil {
			return nil, dberr.Wrap(err, "Subject")
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}
