// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// ensure SQLStore implements Store at compile time.
var _ Store = (*SQLStore)(nil)

// SQLStore implements Store over a Postgres "users" table:
//
//	id BIGSERIAL PRIMARY KEY, name TEXT, email TEXT UNIQUE,
//	password_hash TEXT, role TEXT, created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a new SQLStore.
func NewSQLStore(
	db *sql.DB,
) *SQLStore {
	return &SQLStore{db: db}
}

// OpenPostgres opens a connection pool using the lib/pq driver and checks
// that the server is reachable.
func OpenPostgres(
	ctx context.Context,
	dsn string,
) (*sql.DB, error) {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

const selectColumns = `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users`

// FindByID loads a user by primary key.
func (s *SQLStore) FindByID(
	ctx context.Context,
	id int64,
) (*User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
}

// FindByEmail loads a user by email, case-insensitively.
func (s *SQLStore) FindByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	return s.scanOne(
		s.db.QueryRowContext(ctx, selectColumns+` WHERE lower(email) = lower($1)`, email),
	)
}

// List returns all users ordered by ID.
func (s *SQLStore) List(
	ctx context.Context,
) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// Create inserts u and reads back the generated ID.
func (s *SQLStore) Create(
	ctx context.Context,
	u *User,
) error {
	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, u.Name, u.Email, u.PasswordHash, string(u.Role), now, now).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	u.CreatedAt = now
	u.UpdatedAt = now

	return nil
}

// Update writes every mutable column of u.
func (s *SQLStore) Update(
	ctx context.Context,
	u *User,
) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5, updated_at = $6
		WHERE id = $1
	`, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}
	u.UpdatedAt = now

	return nil
}

// Delete removes the user by ID.
func (s *SQLStore) Delete(
	ctx context.Context,
	id int64,
) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return expectOneRow(result)
}

func (s *SQLStore) scanOne(
	row *sql.Row,
) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}

func expectOneRow(
	result sql.Result,
) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func isUniqueViolation(
	err error,
) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
