package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskmaster/matrix/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TaskRepository defines the interface for task data operations.
// Update and Delete are scoped by owner as well as id and return
// entities.ErrTaskNotFound when no row matches both.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	Update(ctx context.Context, id int64, ownerID uuid.UUID, update TaskUpdate) (*entities.Task, error)
	Delete(ctx context.Context, id int64, ownerID uuid.UUID) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
}

// TaskFilter narrows a task listing. UserID is mandatory.
type TaskFilter struct {
	UserID    uuid.UUID
	Quadrant  *entities.Quadrant
	Completed *entities.Flag
}
