package database

import (
	"context"

	"github.com/google/uuid"
)

type CreateCategoryParams struct {
	Name        string
	Description string
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at, name, description`,
		arg.Name, arg.Description,
	)
	var c Category
	err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Description)
	return c, err
}

func (q *Queries) GetCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, created_at, updated_at, name, description
		FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (q *Queries) GetCategoryByID(ctx context.Context, id uuid.UUID) (Category, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, name, description
		FROM categories WHERE id = $1`,
		id,
	)
	var c Category
	err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Description)
	return c, err
}

func (q *Queries) GetCategoryCount(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`)
	var count int64
	err := row.Scan(&count)
	return count, err
}

func (q *Queries) DeleteCategoryByID(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
