package database

import (
	"context"

	"github.com/google/uuid"
)

type CreateUserParams struct {
	Username       string
	HashedPassword string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO users (username, hashed_password)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at, username, hashed_password`,
		arg.Username, arg.HashedPassword,
	)
	var u User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Username, &u.HashedPassword)
	return u, err
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, username, hashed_password
		FROM users WHERE username = $1`,
		username,
	)
	var u User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Username, &u.HashedPassword)
	return u, err
}

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, username, hashed_password
		FROM users WHERE id = $1`,
		id,
	)
	var u User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Username, &u.HashedPassword)
	return u, err
}

func (q *Queries) GetUserCount(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`)
	var count int64
	err := row.Scan(&count)
	return count, err
}

func (q *Queries) DeleteUsers(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM users`)
	return err
}
