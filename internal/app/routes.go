package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "lifeseed/internal/docs" // swagger docs
	"lifeseed/internal/middleware"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *gin.Engine, deps *Dependencies) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(middleware.NotFound())

	v1 := r.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", deps.AuthHandler.Login)
	auth.GET("/status", deps.AuthHandler.Status)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenManager))
	confirm := middleware.RequireConfirmation()

	protected.GET("/dashboard", deps.ReportHandler.GetDashboard)
	protected.GET("/events", deps.EventsHandler.Stream)

	// Habits
	habits := protected.Group("/habits")
	habits.POST("", deps.HabitHandler.CreateHabit)
	habits.GET("", deps.HabitHandler.GetHabits)
	habits.GET("/:id", deps.HabitHandler.GetHabit)
	habits.PUT("/:id", deps.HabitHandler.UpdateHabit)
	habits.DELETE("/:id", confirm, deps.HabitHandler.DeleteHabit)
	habits.POST("/:id/logs/:date/toggle", deps.HabitHandler.ToggleLog)
	habits.PUT("/:id/logs/:date", deps.HabitHandler.RecordLog)
	habits.GET("/:id/streak", deps.HabitHandler.GetStreak)
	habits.GET("/:id/progress", deps.HabitHandler.GetProgress)
	protected.GET("/habit-logs", deps.HabitHandler.GetLogs)

	// Tasks
	tasks := protected.Group("/tasks")
	tasks.POST("", deps.TaskHandler.CreateTask)
	tasks.GET("", deps.TaskHandler.GetTasks)
	tasks.GET("/:id", deps.TaskHandler.GetTask)
	tasks.PUT("/:id", deps.TaskHandler.UpdateTask)
	tasks.DELETE("/:id", confirm, deps.TaskHandler.DeleteTask)
	tasks.POST("/:id/cycle", deps.TaskHandler.CycleStatus)

	// Goals
	yearly := protected.Group("/goals/yearly")
	yearly.POST("", deps.GoalHandler.CreateYearlyGoal)
	yearly.GET("", deps.GoalHandler.GetYearlyGoals)
	yearly.PUT("/:id", deps.GoalHandler.UpdateYearlyGoal)
	yearly.POST("/:id/toggle", deps.GoalHandler.ToggleYearlyGoal)
	yearly.DELETE("/:id", confirm, deps.GoalHandler.DeleteYearlyGoal)

	monthly := protected.Group("/goals/monthly")
	monthly.POST("", deps.GoalHandler.CreateMonthlyGoal)
	monthly.GET("", deps.GoalHandler.GetMonthlyGoals)
	monthly.PUT("/:id", deps.GoalHandler.UpdateMonthlyGoal)
	monthly.POST("/:id/toggle", deps.GoalHandler.ToggleMonthlyGoal)
	monthly.DELETE("/:id", confirm, deps.GoalHandler.DeleteMonthlyGoal)

	// Finance
	finance := protected.Group("/finance")
	finance.GET("/balance", deps.ReportHandler.GetBalance)
	finance.GET("/monthly", deps.ReportHandler.GetMonthlySeries)
	finance.GET("/breakdown", deps.ReportHandler.GetExpenseBreakdown)
	finance.GET("/portfolio", deps.InvestmentHandler.GetPortfolio)

	transactions := finance.Group("/transactions")
	transactions.POST("", deps.TransactionHandler.CreateTransaction)
	transactions.GET("", deps.TransactionHandler.GetTransactions)
	transactions.GET("/:id", deps.TransactionHandler.GetTransactionByID)
	transactions.PUT("/:id", deps.TransactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", confirm, deps.TransactionHandler.DeleteTransaction)

	investments := finance.Group("/investments")
	investments.POST("", deps.InvestmentHandler.AddInvestment)
	investments.GET("", deps.InvestmentHandler.GetInvestments)
	investments.GET("/:id", deps.InvestmentHandler.GetInvestment)
	investments.PUT("/:id", deps.InvestmentHandler.UpdateInvestment)
	investments.DELETE("/:id", confirm, deps.InvestmentHandler.DeleteInvestment)
}
