package message

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

const messageSelect = `
	SELECT m.id, m.class_subject_id, m.author_id,
	       a.first_name || ' ' || a.last_name,
	       m.title, m.body, m.created_at
	FROM message m
	JOIN account a ON a.id = m.author_id`

func scanMessage(row pgx.Row) (*Message, error) {
	message := &Message{}
	err := row.Scan(
		&message.ID,
		&message.ClassSubjectID,
		&message.AuthorID,
		&message.AuthorName,
		&message.Title,
		&message.Body,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, message *Message) error {
	const query = `
		INSERT INTO message (id, class_subject_id, author_id, title, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := repository.db.QueryRow(ctx, query,
		message.ID,
		message.ClassSubjectID,
		message.AuthorID,
		message.Title,
		message.Body,
	).Scan(&message.CreatedAt)

	return dberr.Wrap(err, "Message")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, messageID string) (*Message, error) {
	message, err := scanMessage(repository.db.QueryRow(ctx, messageSelect+` WHERE m.id = $1`, messageID))
	if err != nil {
		return nil, dberr.Wrap(err, "Message")
	}
	return message, nil
}

func (repository *PostgresRepository) ListForEnrollment(ctx context.Context, enrollmentID string) ([]*Message, error) {
	rows, err := repository.db.Query(ctx,
		messageSelect+` WHERE m.class_subject_id = $1 ORDER BY m.created_at`, enrollmentID)
	if err != nil {
		return nil, dberr.Wrap(err, "Message")
	}
	defer rows.Close()

	messages := make([]*Message, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Message")
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func (repository *PostgresRepository) Delete(ctx context.Context, messageID string) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM message WHERE id = $1`, messageID)
	if err != nil {
		return dberr.Wrap(err, "Message")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Message")
	}
	return nil
}
