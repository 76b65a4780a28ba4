package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CreateTaskParams struct {
	Text           string
	EndPlannedDate time.Time
	State          int32
	CategoryID     uuid.UUID
	UserID         uuid.UUID
}

func (q *Queries) CreateTask(ctx context.Context, arg CreateTaskParams) (Task, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO tasks (text, end_planned_date, state, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, text, end_planned_date, state, category_id, user_id`,
		arg.Text, arg.EndPlannedDate, arg.State, arg.CategoryID, arg.UserID,
	)
	return scanTask(row)
}

func (q *Queries) GetTaskByID(ctx context.Context, id uuid.UUID) (Task, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, created_at, updated_at, text, end_planned_date, state, category_id, user_id
		FROM tasks WHERE id = $1`,
		id,
	)
	return scanTask(row)
}

func (q *Queries) GetTasksByUserID(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, created_at, updated_at, text, end_planned_date, state, category_id, user_id
		FROM tasks WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt, &t.Text, &t.EndPlannedDate, &t.State, &t.CategoryID, &t.UserID); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

type UpdateTaskParams struct {
	ID             uuid.UUID
	Text           string
	EndPlannedDate time.Time
	State          int32
	CategoryID     uuid.UUID
}

func (q *Queries) UpdateTask(ctx context.Context, arg UpdateTaskParams) (Task, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET text = $2, end_planned_date = $3, state = $4, category_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, created_at, updated_at, text, end_planned_date, state, category_id, user_id`,
		arg.ID, arg.Text, arg.EndPlannedDate, arg.State, arg.CategoryID,
	)
	return scanTask(row)
}

func (q *Queries) DeleteTaskByID(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt, &t.Text, &t.EndPlannedDate, &t.State, &t.CategoryID, &t.UserID)
	return t, err
}
