// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classcord/classcord/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// accountColumns is the SELECT list shared by all account reads. The LEFT
// JOIN on class hydrates the head-teacher back-reference in one round-trip.
const accountColumns = `
	a.id, a.email, a.password_hash, a.first_name, a.last_name,
	a.verified, a.admin, a.created_at, a.updated_at,
	c.id, c.name, c.guild_id`

// scanAccount hydrates a [User] (and its optional head-class) from a row.
func scanAccount(row pgx.Row) (*User, error) {
	user := &User{}
	var classID, className, classGuildID *string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Verified,
		&user.Admin,
		&user.CreatedAt,
		&user.UpdatedAt,
		&classID,
		&className,
		&classGuildID,
	)
	if err != nil {
		return nil, err
	}

	if classID != nil {
		user.Class = &ClassRef{ID: *classID, Name: *className, GuildID: classGuildID}
	}

	return user, nil
}

// Create persists a new account row.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO account (id, email, password_hash, first_name, last_name, verified, admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Verified,
		user.Admin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	// The email UNIQUE constraint is the backstop for concurrent duplicate
	// registrations that slipped past the service-level pre-check.
	return dberr.Wrap(err, "User")
}

// FindByEmail retrieves an account by its unique email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM account a
		LEFT JOIN class c ON a.class_id = c.id
		WHERE a.email = $1`, accountColumns)

	user, err := scanAccount(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

// FindByID retrieves an account by its primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM account a
		LEFT JOIN class c ON a.class_id = c.id
		WHERE a.id = $1`, accountColumns)

	user, err := scanAccount(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

// List returns every account ordered by email.
func (repository *PostgresUserRepository) List(ctx context.Context) ([]*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM account a
		LEFT JOIN class c ON a.class_id = c.id
		ORDER BY a.email`, accountColumns)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := scanAccount(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdateProfile persists changes to the mutable profile fields.
func (repository *PostgresUserRepository) UpdateProfile(ctx context.Context, user *User) error {
	const query = `
		UPDATE account
		SET email = $2, first_name = $3, last_name = $4, updated_at = $5
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "User")
}

// UpdateScope sets the verified/admin flags for an account.
func (repository *PostgresUserRepository) UpdateScope(ctx context.Context, userID string, verified, admin bool) error {
	const query = `
		UPDATE account
		SET verified = $2, admin = $3, updated_at = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query, userID, verified, admin, time.Now())
	return dberr.Wrap(err, "User")
}

// Delete removes an account and everything that references it.
//
// Subject-teacher references are cleared rather than deleted: the class keeps
// the subject, it just loses its teacher. Authored messages go with the
// account.
func (repository *PostgresUserRepository) Delete(ctx context.Context, userID string) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	defer transaction.Rollback(ctx)

	if _, err := transaction.Exec(ctx,
		`UPDATE class_subject SET teacher_id = NULL WHERE teacher_id = $1`, userID); err != nil {
		return dberr.Wrap(err, "User")
	}

	if _, err := transaction.Exec(ctx,
		`DELETE FROM message WHERE author_id = $1`, userID); err != nil {
		return dberr.Wrap(err, "User")
	}

	tag, err := transaction.Exec(ctx, `DELETE FROM account WHERE id = $1`, userID)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}

	return dberr.Wrap(transaction.Commit(ctx), "User")
}
