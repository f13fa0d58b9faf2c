package db

import (
	"context"
	"database/sql"

	"github.com/chepyr/go-todo-web/internal/models"
)

// Every by-id query is scoped by owner: a task that exists but belongs to
// someone else surfaces as sql.ErrNoRows, same as a task that does not exist.
type TaskRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id, ownerID string) error
}

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query := `SELECT id, user_id, title, description, completed, created_at, updated_at
	 FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.UserID, &task.Title, &task.Description,
			&task.Completed, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (id, user_id, title, description, completed, created_at, updated_at)
	 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(
		ctx, query, task.ID, task.UserID, task.Title, task.Description,
		task.Completed, task.CreatedAt, task.UpdatedAt)
	return err
}

func (r *TaskRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Task, error) {
	query := `SELECT id, user_id, title, description, completed, created_at, updated_at
	 FROM tasks WHERE id = $1 AND user_id = $2`

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Completed, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `UPDATE tasks SET title = $1, description = $2, completed = $3, updated_at = $4
	 WHERE id = $5 AND user_id = $6`

	res, err := r.db.ExecContext(
		ctx, query, task.Title, task.Description, task.Completed, task.UpdatedAt,
		task.ID, task.UserID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
