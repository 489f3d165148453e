package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/services"
)

// GoalHandler handles yearly and monthly goal requests.
type GoalHandler struct {
	plannerService services.PlannerServicer
	auditService   services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(plannerService services.PlannerServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{plannerService: plannerService, auditService: auditService}
}

// CreateYearlyGoalRequest represents the request payload for a yearly goal.
type CreateYearlyGoalRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Year  int    `json:"year" binding:"omitempty,min=1970,max=9999"`
}

// CreateMonthlyGoalRequest represents the request payload for a monthly goal.
type CreateMonthlyGoalRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Month int    `json:"month" binding:"omitempty,min=1,max=12"`
	Year  int    `json:"year" binding:"omitempty,min=1970,max=9999"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
// Month is ignored for yearly goals.
type UpdateGoalRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=200"`
	Month     *int    `json:"month" binding:"omitempty,min=1,max=12"`
	Year      *int    `json:"year" binding:"omitempty,min=1970,max=9999"`
	Completed *bool   `json:"completed"`
}

// GoalQuery holds optional filters of a goal listing.
type GoalQuery struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=1970,max=9999"`
}

func (q GoalQuery) filters() (month, year *int) {
	if q.Month != 0 {
		month = &q.Month
	}
	if q.Year != 0 {
		year = &q.Year
	}
	return month, year
}

// CreateYearlyGoal handles the creation of a yearly goal.
// @Summary     Create a yearly goal
// @Description Create a goal for a year (defaults to the current year)
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateYearlyGoalRequest true "Goal details"
// @Success     201 {object} models.YearlyGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/yearly [post]
func (h *GoalHandler) CreateYearlyGoal(c *gin.Context) {
	var req CreateYearlyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.plannerService.CreateYearlyGoal(req.Title, req.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_GOAL", "yearly_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": goal.Title, "year": goal.Year})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetYearlyGoals handles listing yearly goals.
// @Summary     Get yearly goals
// @Description List yearly goals, optionally for one year
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year"
// @Success     200 {array}  models.YearlyGoal "Goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goals/yearly [get]
func (h *GoalHandler) GetYearlyGoals(c *gin.Context) {
	var q GoalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	_, year := q.filters()
	c.JSON(http.StatusOK, gin.H{"goals": h.plannerService.GetYearlyGoals(year)})
}

// UpdateYearlyGoal handles updating a yearly goal.
// @Summary     Update yearly goal
// @Description Update title, year or completion of a yearly goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Updated goal"
// @Success     200 {object} models.YearlyGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/yearly/{id} [put]
func (h *GoalHandler) UpdateYearlyGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.plannerService.UpdateYearlyGoal(goalID, services.GoalUpdate{
		Title:     req.Title,
		Year:      req.Year,
		Completed: req.Completed,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_GOAL", "yearly_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// ToggleYearlyGoal handles flipping completion of a yearly goal.
// @Summary     Toggle yearly goal
// @Description Flip the completed flag of a yearly goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.YearlyGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/yearly/{id}/toggle [post]
func (h *GoalHandler) ToggleYearlyGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.plannerService.ToggleYearlyGoal(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("TOGGLE_GOAL", "yearly_goal", goalID, c.ClientIP(),
		map[string]interface{}{"completed": goal.Completed})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteYearlyGoal handles deleting a yearly goal.
// @Summary     Delete yearly goal
// @Description Delete a yearly goal. Requires confirm=true.
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string true "Goal ID"
// @Param       confirm query bool   true "Must be true"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID or missing confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/yearly/{id} [delete]
func (h *GoalHandler) DeleteYearlyGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.plannerService.DeleteYearlyGoal(goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_GOAL", "yearly_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// CreateMonthlyGoal handles the creation of a monthly goal.
// @Summary     Create a monthly goal
// @Description Create a goal for a month (defaults to the current month)
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateMonthlyGoalRequest true "Goal details"
// @Success     201 {object} models.MonthlyGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/monthly [post]
func (h *GoalHandler) CreateMonthlyGoal(c *gin.Context) {
	var req CreateMonthlyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.plannerService.CreateMonthlyGoal(req.Title, req.Month, req.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_GOAL", "monthly_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"title": goal.Title, "month": goal.Month, "year": goal.Year})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetMonthlyGoals handles listing monthly goals.
// @Summary     Get monthly goals
// @Description List monthly goals, optionally for one month and year
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12)"
// @Param       year  query int false "Year"
// @Success     200 {array}  models.MonthlyGoal "Goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goals/monthly [get]
func (h *GoalHandler) GetMonthlyGoals(c *gin.Context) {
	var q GoalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, year := q.filters()
	c.JSON(http.StatusOK, gin.H{"goals": h.plannerService.GetMonthlyGoals(month, year)})
}

// UpdateMonthlyGoal handles updating a monthly goal.
// @Summary     Update monthly goal
// @Description Update title, month, year or completion of a monthly goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Updated goal"
// @Success     200 {object} models.MonthlyGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/monthly/{id} [put]
func (h *GoalHandler) UpdateMonthlyGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.plannerService.UpdateMonthlyGoal(goalID, services.GoalUpdate{
		Title:     req.Title,
		Month:     req.Month,
		Year:      req.Year,
		Completed: req.Completed,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_GOAL", "monthly_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// ToggleMonthlyGoal handles flipping completion of a monthly goal.
// @Summary     Toggle monthly goal
// @Description Flip the completed flag of a monthly goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.MonthlyGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid goal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/monthly/{id}/toggle [post]
func (h *GoalHandler) ToggleMonthlyGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.plannerService.ToggleMonthlyGoal(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("TOGGLE_GOAL", "monthly_goal", goalID, c.ClientIP(),
		map[string]interface{}{"completed": goal.Completed})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteMonthlyGoal handles deleting a monthly goal.
// @Summary     Delete monthly goal
// @Description Delete a monthly goal. Requires confirm=true.
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string true "Goal ID"
// @Param       confirm query bool   true "Must be true"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     400 {object} ErrorResponse "Invalid goal ID or missing confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/monthly/{id} [delete]
func (h *GoalHandler) DeleteMonthlyGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.plannerService.DeleteMonthlyGoal(goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_GOAL", "monthly_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
