package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"todoapp/internal/auth"
	"todoapp/internal/errors"
	"todoapp/internal/service"
)

// TodoHandler handles task CRUD endpoints. All routes sit behind the auth gate.
type TodoHandler struct {
	taskService service.TaskService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(taskService service.TaskService) *TodoHandler {
	return &TodoHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Task string `json:"task" validate:"required"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are left
// unchanged.
type UpdateTaskRequest struct {
	Task *string `json:"task"`
}

// List godoc
// @Summary List the caller's tasks
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthenticated()
	}

	tasks, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary Create a task
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task payload"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthenticated()
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	task, err := h.taskService.Create(c.Request().Context(), userID, req.Task)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Update a task
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthenticated()
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrTaskNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := h.taskService.Update(c.Request().Context(), userID, taskID, service.TaskUpdate{Task: req.Task})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return unauthenticated()
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrTaskNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.taskService.Delete(c.Request().Context(), userID, taskID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "task removed successfully",
	})
}

func unauthenticated() error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "authorization denied",
		Code:  "NO_TOKEN",
	})
}
