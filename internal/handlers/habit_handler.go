package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/services"
)

// HabitHandler handles habit and habit log requests.
type HabitHandler struct {
	habitService services.HabitServicer
	auditService services.AuditServicer
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService services.HabitServicer, auditService services.AuditServicer) *HabitHandler {
	return &HabitHandler{habitService: habitService, auditService: auditService}
}

// CreateHabitRequest represents the request payload for creating a habit.
type CreateHabitRequest struct {
	Name              string `json:"name" binding:"required,min=1,max=100"`
	Category          string `json:"category" binding:"max=50"`
	TargetDaysPerWeek int    `json:"target_days_per_week" binding:"omitempty,min=1,max=7"`
}

// UpdateHabitRequest represents the request payload for updating a habit.
type UpdateHabitRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=1,max=100"`
	Category          *string `json:"category" binding:"omitempty,max=50"`
	TargetDaysPerWeek *int    `json:"target_days_per_week" binding:"omitempty,min=1,max=7"`
}

// RecordLogRequest represents the request payload for setting a day's status.
type RecordLogRequest struct {
	Status models.HabitLogStatus `json:"status" binding:"required,habit_log_status"`
}

// ProgressQuery holds the query parameters of a progress request.
type ProgressQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=week month"`
	Date   string `form:"date" binding:"omitempty,calendar_date"`
}

// LogQuery holds the query parameters of a log listing.
type LogQuery struct {
	HabitID string `form:"habit_id" binding:"omitempty,uuid"`
	From    string `form:"from" binding:"omitempty,calendar_date"`
	To      string `form:"to" binding:"omitempty,calendar_date"`
}

// StreakResponse is the current streak of a habit.
type StreakResponse struct {
	HabitID string `json:"habit_id"`
	Streak  int    `json:"streak"`
}

// CreateHabit handles the creation of a new habit.
// @Summary     Create a habit
// @Description Create a habit with a weekly target (defaults to every day)
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateHabitRequest true "Habit details"
// @Success     201 {object} models.Habit "Habit created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits [post]
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	habit, err := h.habitService.CreateHabit(req.Name, req.Category, req.TargetDaysPerWeek)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_HABIT", "habit", habit.ID, c.ClientIP(),
		map[string]interface{}{"name": habit.Name, "target_days_per_week": habit.TargetDaysPerWeek})

	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

// GetHabits handles listing habits.
// @Summary     Get habits
// @Description List every habit in creation order
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Habit "Habits"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /habits [get]
func (h *HabitHandler) GetHabits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"habits": h.habitService.GetHabits()})
}

// GetHabit handles retrieving a specific habit.
// @Summary     Get habit by ID
// @Description Get a specific habit by ID
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Habit ID"
// @Success     200 {object} models.Habit "Habit details"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Router      /habits/{id} [get]
func (h *HabitHandler) GetHabit(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	habit, err := h.habitService.GetHabitByID(habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// UpdateHabit handles updating an existing habit.
// @Summary     Update habit
// @Description Update name, category or weekly target of a habit
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Habit ID"
// @Param       request body UpdateHabitRequest true "Updated habit details"
// @Success     200 {object} models.Habit "Updated habit"
// @Failure     400 {object} ErrorResponse "Invalid input or habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id} [put]
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	habit, err := h.habitService.UpdateHabit(habitID, services.HabitUpdate{
		Name:              req.Name,
		Category:          req.Category,
		TargetDaysPerWeek: req.TargetDaysPerWeek,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_HABIT", "habit", habitID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"habit": habit})
}

// DeleteHabit handles deleting a habit and its logs.
// @Summary     Delete habit
// @Description Delete a habit together with all its logs. Requires confirm=true.
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string true "Habit ID"
// @Param       confirm query bool   true "Must be true"
// @Success     200 {object} MessageResponse "Habit deleted"
// @Failure     400 {object} ErrorResponse "Invalid habit ID or missing confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id} [delete]
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.habitService.DeleteHabit(habitID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_HABIT", "habit", habitID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
}

// ToggleLog handles flipping a habit's completion for a day.
// @Summary     Toggle habit day
// @Description Remove the log for the day if present, otherwise mark the day done
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string true "Habit ID"
// @Param       date path string true "Day (YYYY-MM-DD)"
// @Success     200 {object} services.ToggleResult "State after the toggle"
// @Failure     400 {object} ErrorResponse "Invalid habit ID or date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/logs/{date}/toggle [post]
func (h *HabitHandler) ToggleLog(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.habitService.ToggleLog(habitID, c.Param("date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("TOGGLE_HABIT_LOG", "habit", habitID, c.ClientIP(),
		map[string]interface{}{"date": result.Date, "done": result.Done})

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// RecordLog handles setting an explicit status for a day.
// @Summary     Record habit day
// @Description Set a day to done or missed
// @Tags        habits
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Habit ID"
// @Param       date    path string           true "Day (YYYY-MM-DD)"
// @Param       request body RecordLogRequest true "Status"
// @Success     200 {object} models.HabitLog "Recorded log"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /habits/{id}/logs/{date} [put]
func (h *HabitHandler) RecordLog(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	log, err := h.habitService.RecordLog(habitID, c.Param("date"), req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("RECORD_HABIT_LOG", "habit", habitID, c.ClientIP(),
		map[string]interface{}{"date": log.Date, "status": log.Status})

	c.JSON(http.StatusOK, gin.H{"log": log})
}

// GetLogs handles listing habit logs.
// @Summary     Get habit logs
// @Description List logs, optionally for one habit and a date range
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Param       habit_id query string false "Habit ID"
// @Param       from     query string false "First day (YYYY-MM-DD)"
// @Param       to       query string false "Last day (YYYY-MM-DD)"
// @Success     200 {array}  models.HabitLog "Logs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /habit-logs [get]
func (h *HabitHandler) GetLogs(c *gin.Context) {
	var q LogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	logs := h.habitService.GetLogs(services.HabitLogFilter{HabitID: q.HabitID, From: q.From, To: q.To})
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetStreak handles retrieving the current streak of a habit.
// @Summary     Get habit streak
// @Description Consecutive done days ending today (or yesterday when today is not yet logged)
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Habit ID"
// @Success     200 {object} StreakResponse "Streak"
// @Failure     400 {object} ErrorResponse "Invalid habit ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Router      /habits/{id}/streak [get]
func (h *HabitHandler) GetStreak(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	streak, err := h.habitService.GetStreak(habitID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StreakResponse{HabitID: habitID, Streak: streak})
}

// GetProgress handles retrieving weekly or monthly progress of a habit.
// @Summary     Get habit progress
// @Description Done days against target for the week or month containing date
// @Tags        habits
// @Produce     json
// @Security    BearerAuth
// @Param       id     path  string true  "Habit ID"
// @Param       period query string false "week (default) or month"
// @Param       date   query string false "Anchor day (YYYY-MM-DD), defaults to today"
// @Success     200 {object} services.HabitProgress "Progress"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Habit not found"
// @Router      /habits/{id}/progress [get]
func (h *HabitHandler) GetProgress(c *gin.Context) {
	habitID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ProgressQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	progress, err := h.habitService.GetProgress(habitID, services.ProgressPeriod(q.Period), q.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
