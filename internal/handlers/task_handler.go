package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/services"
)

// TaskHandler handles task requests.
type TaskHandler struct {
	plannerService services.PlannerServicer
	auditService   services.AuditServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(plannerService services.PlannerServicer, auditService services.AuditServicer) *TaskHandler {
	return &TaskHandler{plannerService: plannerService, auditService: auditService}
}

// CreateTaskRequest represents the request payload for creating a task.
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required,min=1,max=200"`
	Description string              `json:"description" binding:"max=2000"`
	DueDate     string              `json:"due_date" binding:"omitempty,calendar_date"`
	Priority    models.TaskPriority `json:"priority" binding:"omitempty,task_priority"`
	Status      models.TaskStatus   `json:"status" binding:"omitempty,task_status"`
}

// UpdateTaskRequest represents the request payload for updating a task.
type UpdateTaskRequest struct {
	Title       *string              `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string              `json:"description" binding:"omitempty,max=2000"`
	DueDate     *string              `json:"due_date" binding:"omitempty,calendar_date"`
	Priority    *models.TaskPriority `json:"priority" binding:"omitempty,task_priority"`
	Status      *models.TaskStatus   `json:"status" binding:"omitempty,task_status"`
}

// TaskQuery holds optional filters of a task listing.
type TaskQuery struct {
	DueDate  string `form:"due_date" binding:"omitempty,calendar_date"`
	Status   string `form:"status" binding:"omitempty,task_status"`
	Priority string `form:"priority" binding:"omitempty,task_priority"`
}

// CreateTask handles the creation of a new task.
// @Summary     Create a task
// @Description Create a task; status defaults to pending and priority to medium
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTaskRequest true "Task details"
// @Success     201 {object} models.Task "Task created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	task, err := h.plannerService.CreateTask(req.Title, req.Description, req.DueDate, req.Priority, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TASK", "task", task.ID, c.ClientIP(),
		map[string]interface{}{"title": task.Title, "due_date": task.DueDate})

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// GetTasks handles listing tasks.
// @Summary     Get tasks
// @Description List tasks. Filtering by due_date returns the daily view ordered by priority, then status.
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       due_date query string false "Day (YYYY-MM-DD)"
// @Param       status   query string false "pending, in-progress or completed"
// @Param       priority query string false "high, medium or low"
// @Success     200 {array}  models.Task "Tasks"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /tasks [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	var q TaskQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TaskFilter{DueDate: q.DueDate}
	if q.Status != "" {
		status := models.TaskStatus(q.Status)
		filter.Status = &status
	}
	if q.Priority != "" {
		priority := models.TaskPriority(q.Priority)
		filter.Priority = &priority
	}

	c.JSON(http.StatusOK, gin.H{"tasks": h.plannerService.GetTasks(filter)})
}

// GetTask handles retrieving a specific task.
// @Summary     Get task by ID
// @Description Get a specific task by ID
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Task ID"
// @Success     200 {object} models.Task "Task details"
// @Failure     400 {object} ErrorResponse "Invalid task ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Router      /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.plannerService.GetTaskByID(taskID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask handles updating an existing task.
// @Summary     Update task
// @Description Update fields of a task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Task ID"
// @Param       request body UpdateTaskRequest true "Updated task details"
// @Success     200 {object} models.Task "Updated task"
// @Failure     400 {object} ErrorResponse "Invalid input or task ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	task, err := h.plannerService.UpdateTask(taskID, services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TASK", "task", taskID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask handles deleting a task.
// @Summary     Delete task
// @Description Delete a task. Requires confirm=true.
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string true "Task ID"
// @Param       confirm query bool   true "Must be true"
// @Success     200 {object} MessageResponse "Task deleted"
// @Failure     400 {object} ErrorResponse "Invalid task ID or missing confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.plannerService.DeleteTask(taskID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TASK", "task", taskID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// CycleStatus handles advancing a task to its next status.
// @Summary     Cycle task status
// @Description Advance pending → in-progress → completed → pending
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Task ID"
// @Success     200 {object} models.Task "Updated task"
// @Failure     400 {object} ErrorResponse "Invalid task ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Task not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tasks/{id}/cycle [post]
func (h *TaskHandler) CycleStatus(c *gin.Context) {
	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.plannerService.CycleStatus(taskID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CYCLE_TASK_STATUS", "task", taskID, c.ClientIP(),
		map[string]interface{}{"status": task.Status})

	c.JSON(http.StatusOK, gin.H{"task": task})
}
