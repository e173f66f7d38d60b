package enrollment

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

// enrollmentSelect joins the subject for its name and the optional subject
// teacher in one round-trip.
func enrollmentSelect() string {
	return fmt.Sprintf(`
		SELECT cs.%s, cs.%s, cs.%s, s.%s, cs.%s,
		       a.%s, a.%s, a.%s, a.%s
		FROM %s cs
		JOIN %s s ON s.%s = cs.%s
		LEFT JOIN %s a ON a.%s = cs.%s`,
		schema.ClassSubject.ID, schema.ClassSubject.ClassID, schema.ClassSubject.SubjectID,
		schema.Subject.Name, schema.ClassSubject.CreatedAt,
		schema.Account.ID, schema.Account.Email, schema.Account.FirstName, schema.Account.LastName,
		schema.ClassSubject.Table,
		schema.Subject.Table, schema.Subject.ID, schema.ClassSubject.SubjectID,
		schema.Account.Table, schema.Account.ID, schema.ClassSubject.TeacherID,
	)
}

func scanEnrollment(row pgx.Row) (*Enrollment, error) {
	enrollment := &Enrollment{}
	var teacherID, teacherEmail, teacherFirstName, teacherLastName *string

	err := row.Scan(
		&enrollment.ID,
		&enrollment.ClassID,
		&enrollment.SubjectID,
		&enrollment.SubjectName,
		&enrollment.CreatedAt,
		&teacherID,
		&teacherEmail,
		&teacherFirstName,
		&teacherLastName,
	)
	if err != nil {
		return nil, err
	}

	if teacherID != nil {
		enrollment.Teacher = &TeacherRef{
			ID:        *teacherID,
			Email:     *teacherEmail,
			FirstName: *teacherFirstName,
			LastName:  *teacherLastName,
		}
	}

	return enrollment, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, enrollment *Enrollment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s`,
		schema.ClassSubject.Table,
		schema.ClassSubject.ID, schema.ClassSubject.ClassID, schema.ClassSubject.SubjectID,
		schema.ClassSubject.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		enrollment.ID, enrollment.ClassID, enrollment.SubjectID,
	).Scan(&enrollment.CreatedAt)

	return dberr.Wrap(err, "Enrollment")
}

func (repository *PostgresRepository) Find(ctx context.Context, classID, subjectID string) (*Enrollment, error) {
	query := enrollmentSelect() + fmt.Sprintf(` WHERE cs.%s = $1 AND cs.%s = $2`,
		schema.ClassSubject.ClassID, schema.ClassSubject.SubjectID)

	enrollment, err := scanEnrollment(repository.db.QueryRow(ctx, query, classID, subjectID))
	if err != nil {
		return nil, dberr.Wrap(err, "Enrollment")
	}

	return enrollment, nil
}

func (repository *PostgresRepository) ListForClass(ctx context.Context, classID string) ([]*Enrollment, error) {
	query := enrollmentSelect() + fmt.Sprintf(` WHERE cs.%s = $1 ORDER BY s.%s`,
		schema.ClassSubject.ClassID, schema.Subject.Name)

	rows, err := repository.db.Query(ctx, query, classID)
	if err != nil {
		return nil, dberr.Wrap(err, "Enrollment")
	}
	defer rows.Close()

	enrollments := make([]*Enrollment, 0)
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Enrollment")
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments, rows.Err()
}

func (repository *PostgresRepository) ListForTeacher(ctx context.Context, teacherID string) ([]*TeachingAssignment, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, s.%s
		FROM %s cs
		JOIN %s c ON c.%s = cs.%s
		JOIN %s s ON s.%s = cs.%s
		WHERE cs.%s = $1
		ORDER BY c.%s, s.%s`,
		schema.Class.Name, schema.Subject.Name,
		schema.ClassSubject.Table,
		schema.Class.Table, schema.Class.ID, schema.ClassSubject.ClassID,
		schema.Subject.Table, schema.Subject.ID, schema.ClassSubject.SubjectID,
		schema.ClassSubject.TeacherID,
		schema.Class.Name, schema.Subject.Name,
	)

	rows, err := repository.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, dberr.Wrap(err, "Enrollment")
	}
	defer rows.Close()

	assignments := make([]*TeachingAssignment, 0)
	for rows.Next() {
		assignment := &TeachingAssignment{}
		if err := rows.Scan(&assignment.ClassName, &assignment.SubjectName); err != nil {
			return nil, dberr.Wrap(err, "Enrollment")
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

func (repository *PostgresRepository) Delete(ctx context.Context, enrollmentID string) error {
	transaction, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "Enrollment")
	}
	defer transaction.Rollback(ctx)

	if _, err := transaction.Exec(ctx,
		`DELETE FROM message WHERE class_subject_id = $1`, enrollmentID); err != nil {
		return dberr.Wrap(err, "Enrollment")
	}

	tag, err := transaction.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.ClassSubject.Table, schema.ClassSubject.ID),
		enrollmentID)
	if err != nil {
		return dberr.Wrap(err, "Enrollment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Enrollment")
	}

	return dberr.Wrap(transaction.Commit(ctx), "Enrollment")
}

func (repository *PostgresRepository) SetTeacher(ctx context.Context, enrollmentID, teacherID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.ClassSubject.Table, schema.ClassSubject.TeacherID, schema.ClassSubject.ID)

	tag, err := repository.db.Exec(ctx, query, enrollmentID, teacherID)
	if err != nil {
		return dberr.Wrap(err, "Subject teacher")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Enrollment")
	}
	return nil
}

func (repository *PostgresRepository) RemoveTeacher(ctx context.Context, enrollmentID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.ClassSubject.Table, schema.ClassSubject.TeacherID, schema.ClassSubject.ID)

	tag, err := repository.db.Exec(ctx, query, enrollmentID)
	if err != nil {
		return dberr.Wrap(err, "Subject teacher")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Enrollment")
	}
	return nil
}
