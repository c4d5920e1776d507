package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/matrix/internal/domain/entities"
	"github.com/taskmaster/matrix/internal/infrastructure/logger"
	"github.com/taskmaster/matrix/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks godoc
// @Summary List tasks
// @Description List the caller's tasks ordered by due date, undated tasks last
// @Tags tasks
// @Produce json
// @Param quadrant query string false "Quadrant filter"
// @Param completed query string false "Completion filter (true, false, 1, 0)"
// @Success 200 {array} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Security CookieAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	query := ports.TaskQuery{
		Quadrant:  c.QueryParam("quadrant"),
		Completed: c.QueryParam("completed"),
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), claimsFromContext(c), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary Create a task
// @Description Create a task owned by the caller
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Security CookieAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), claimsFromContext(c), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security CookieAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), claimsFromContext(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// ReplaceTask godoc
// @Summary Replace a task
// @Description Overwrite title, quadrant, due_date and completed. Missing completed resets to 0.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body ports.ReplaceTaskRequest true "Task data"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security CookieAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) ReplaceTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req ports.ReplaceTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.ReplaceTask(c.Request().Context(), claimsFromContext(c), id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// PatchTask godoc
// @Summary Update task fields
// @Description Update only the supplied fields. A null due_date clears it.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body object true "Any of title, quadrant, due_date, completed"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security CookieAuth
// @Router /tasks/{id} [patch]
func (h *TaskHandler) PatchTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var update ports.TaskUpdate
	if err := bindBody(c, &update); err != nil {
		return err
	}

	task, err := h.taskService.PatchTask(c.Request().Context(), claimsFromContext(c), id, update)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Param id path int true "Task ID"
// @Success 204
// @Failure 403 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security CookieAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), claimsFromContext(c), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, entities.NewValidationError("Invalid task ID", "id must be a positive integer")
	}
	return id, nil
}
