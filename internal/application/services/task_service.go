package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/infrastructure/logger"
	"github.com/taskmaster/matrix/internal/ports"
)

// TaskService handles task-related operations on behalf of an authenticated caller.
// Single-task operations resolve in a fixed order: existence, ownership,
// payload validation, then the write.
type TaskService struct {
	taskRepo ports.TaskRepository
	validate *validator.Validate
	now      func() time.Time
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, validate *validator.Validate, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		validate: validate,
		now:      time.Now,
		logger:   logger.WithComponent("tasks"),
	}
}

// ListTasks returns the caller's tasks, earliest due date first
func (s *TaskService) ListTasks(ctx context.Context, claims *ports.Claims, query ports.TaskQuery) ([]*entities.Task, error) {
	if claims == nil {
		return nil, entities.ErrUnauthorized
	}
	if err := s.validate.Struct(query); err != nil {
		return nil, taskValidationError(err)
	}

	filter := ports.TaskFilter{UserID: claims.UserID}
	if query.Quadrant != "" {
		q := entities.Quadrant(query.Quadrant)
		filter.Quadrant = &q
	}
	if query.Completed != "" {
		done := entities.FlagOf(query.Completed == "true" || query.Completed == "1")
		filter.Completed = &done
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, entities.NewInternalError("Failed to fetch tasks", err)
	}

	return tasks, nil
}

// CreateTask creates a task owned by the caller
func (s *TaskService) CreateTask(ctx context.Context, claims *ports.Claims, req ports.CreateTaskRequest) (*entities.Task, error) {
	if claims == nil {
		return nil, entities.ErrUnauthorized
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, taskValidationError(err)
	}

	now := s.now().UTC()
	task := &entities.Task{
		Title:     req.Title,
		Quadrant:  req.Quadrant,
		DueDate:   req.DueDate,
		Completed: entities.FlagUnset,
		UserID:    claims.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, entities.NewInternalError("Failed to create task", err)
	}

	s.logger.WithUserID(claims.UserID.String()).Infow("Task created successfully", "task_id", task.ID, "quadrant", task.Quadrant)

	return task, nil
}

// GetTask retrieves one of the caller's tasks
func (s *TaskService) GetTask(ctx context.Context, claims *ports.Claims, id int64) (*entities.Task, error) {
	return s.authorize(ctx, claims, id, "Failed to fetch task")
}

// ReplaceTask overwrites every mutable field of a task. Missing completed
// resets it to 0 and missing due_date clears it.
func (s *TaskService) ReplaceTask(ctx context.Context, claims *ports.Claims, id int64, req ports.ReplaceTaskRequest) (*entities.Task, error) {
	if _, err := s.authorize(ctx, claims, id, "Failed to update task"); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, taskValidationError(err)
	}

	return s.update(ctx, claims, id, req.Update())
}

// PatchTask writes only the fields present in update
func (s *TaskService) PatchTask(ctx context.Context, claims *ports.Claims, id int64, update ports.TaskUpdate) (*entities.Task, error) {
	if _, err := s.authorize(ctx, claims, id, "Failed to update task"); err != nil {
		return nil, err
	}

	if update.IsEmpty() {
		return nil, entities.ErrNoFieldsToUpdate
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	return s.update(ctx, claims, id, update)
}

// DeleteTask removes one of the caller's tasks
func (s *TaskService) DeleteTask(ctx context.Context, claims *ports.Claims, id int64) error {
	if _, err := s.authorize(ctx, claims, id, "Failed to delete task"); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id, claims.UserID); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return entities.ErrTaskNotFound
		}
		return entities.NewInternalError("Failed to delete task", err)
	}

	s.logger.WithUserID(claims.UserID.String()).Infow("Task deleted successfully", "task_id", id)

	return nil
}

func (s *TaskService) update(ctx context.Context, claims *ports.Claims, id int64, update ports.TaskUpdate) (*entities.Task, error) {
	task, err := s.taskRepo.Update(ctx, id, claims.UserID, update)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, entities.NewInternalError("Failed to update task", err)
	}

	s.logger.WithUserID(claims.UserID.String()).Infow("Task updated successfully", "task_id", id)

	return task, nil
}

// authorize loads a task and checks that the caller owns it.
// A missing task is reported before a foreign one.
func (s *TaskService) authorize(ctx context.Context, claims *ports.Claims, id int64, op string) (*entities.Task, error) {
	if claims == nil {
		return nil, entities.ErrUnauthorized
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, entities.NewInternalError(op, err)
	}

	if err := AuthorizeTaskAccess(claims, task); err != nil {
		s.logger.LogSecurityEvent("task_access_denied", claims.UserID.String(), "", map[string]interface{}{"task_id": id})
		return nil, err
	}

	return task, nil
}
