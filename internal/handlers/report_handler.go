package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifeseed/internal/clock"
	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/services"
)

// ReportHandler serves the derived read-only views: finance charts and the
// home dashboard.
type ReportHandler struct {
	financeService   services.FinanceServicer
	dashboardService services.DashboardServicer
	clock            clock.Clock
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(financeService services.FinanceServicer, dashboardService services.DashboardServicer, clk clock.Clock) *ReportHandler {
	return &ReportHandler{financeService: financeService, dashboardService: dashboardService, clock: clk}
}

// MonthlyQuery holds the query parameters of the monthly chart.
type MonthlyQuery struct {
	Year int `form:"year" binding:"omitempty,min=1970,max=9999"`
}

// MonthlySeriesResponse is the income/expense chart for one year.
type MonthlySeriesResponse struct {
	Year   int                     `json:"year"`
	Months []services.MonthlyPoint `json:"months"`
}

// GetBalance handles retrieving balance and per-type totals.
// @Summary     Get balance
// @Description Income minus expenses minus invested money, with per-type totals
// @Tags        finance
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.FinanceTotals "Totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /finance/balance [get]
func (h *ReportHandler) GetBalance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"totals": h.financeService.GetTotals()})
}

// GetMonthlySeries handles retrieving the monthly income/expense chart.
// @Summary     Get monthly series
// @Description Twelve monthly buckets of income and expense for a year (defaults to the current year)
// @Tags        finance
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year"
// @Success     200 {object} MonthlySeriesResponse "Monthly series"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /finance/monthly [get]
func (h *ReportHandler) GetMonthlySeries(c *gin.Context) {
	var q MonthlyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if q.Year == 0 {
		q.Year = h.clock.Now().Year()
	}

	c.JSON(http.StatusOK, MonthlySeriesResponse{Year: q.Year, Months: h.financeService.GetMonthlySeries(q.Year)})
}

// GetExpenseBreakdown handles retrieving expenses per category.
// @Summary     Get expense breakdown
// @Description Expense sums per category, largest first
// @Tags        finance
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.CategoryAmount "Breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /finance/breakdown [get]
func (h *ReportHandler) GetExpenseBreakdown(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.financeService.GetExpenseBreakdown()})
}

// GetDashboard handles retrieving the home summary.
// @Summary     Get dashboard
// @Description Snapshot of today's habits, open tasks and finances
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DashboardSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dashboard": h.dashboardService.GetSummary()})
}
