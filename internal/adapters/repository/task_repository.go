package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/ports"
)

const taskColumns = `id, title, quadrant, due_date, completed, user_id, created_at, updated_at`

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db, now: time.Now}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := r.db.Rebind(`
		INSERT INTO tasks (title, quadrant, due_date, completed, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		task.Title, string(task.Quadrant), task.DueDate, int(task.Completed),
		task.UserID, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

// Update applies the set fields of update in one statement and returns the
// stored row. user_id is never part of the SET list.
func (r *TaskRepositoryImpl) Update(ctx context.Context, id int64, ownerID uuid.UUID, update ports.TaskUpdate) (*entities.Task, error) {
	assignments := update.Assignments()
	if len(assignments) == 0 {
		return nil, entities.ErrNoFieldsToUpdate
	}

	sets := make([]string, 0, len(assignments)+1)
	args := make([]interface{}, 0, len(assignments)+3)
	for _, a := range assignments {
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, r.now().UTC(), id, ownerID)

	query := r.db.Rebind(fmt.Sprintf(
		`UPDATE tasks SET %s WHERE id = ? AND user_id = ?`,
		strings.Join(sets, ", "),
	))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if rows == 0 {
		return nil, entities.ErrTaskNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id int64, ownerID uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`)

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

// List returns the owner's tasks ordered by due date with undated tasks last
func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	where := []string{"user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.Quadrant != nil {
		where = append(where, "quadrant = ?")
		args = append(args, string(*filter.Quadrant))
	}
	if filter.Completed != nil {
		where = append(where, "completed = ?")
		args = append(args, int(*filter.Completed))
	}

	query := r.db.Rebind(fmt.Sprintf(
		`SELECT %s FROM tasks WHERE %s ORDER BY due_date IS NULL, due_date ASC, id ASC`,
		taskColumns, strings.Join(where, " AND "),
	))

	tasks := []*entities.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}
