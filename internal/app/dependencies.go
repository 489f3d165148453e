package app

import (
	"fmt"

	"lifeseed/internal/clock"
	"lifeseed/internal/config"
	"lifeseed/internal/handlers"
	"lifeseed/internal/middleware"
	"lifeseed/internal/services"
	"lifeseed/internal/storage"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock        clock.Clock
	TokenManager *middleware.TokenManager

	HabitService     services.HabitServicer
	PlannerService   services.PlannerServicer
	FinanceService   services.FinanceServicer
	DashboardService services.DashboardServicer
	AuthService      services.AuthServicer
	AuditService     services.AuditServicer

	AuthHandler        *handlers.AuthHandler
	HabitHandler       *handlers.HabitHandler
	TaskHandler        *handlers.TaskHandler
	GoalHandler        *handlers.GoalHandler
	TransactionHandler *handlers.TransactionHandler
	InvestmentHandler  *handlers.InvestmentHandler
	ReportHandler      *handlers.ReportHandler
	EventsHandler      *handlers.EventsHandler
}

// BuildDependencies loads the three stores from st and wires services and
// handlers around them. The token manager is nil when auth is disabled.
func BuildDependencies(cfg *config.Config, st storage.Storage, clk clock.Clock) (*Dependencies, error) {
	deps := &Dependencies{Clock: clk}

	var err error
	if deps.HabitService, err = services.NewHabitService(st, clk); err != nil {
		return nil, fmt.Errorf("failed to load habit store: %w", err)
	}
	if deps.PlannerService, err = services.NewPlannerService(st, clk); err != nil {
		return nil, fmt.Errorf("failed to load task store: %w", err)
	}
	if deps.FinanceService, err = services.NewFinanceService(st, clk); err != nil {
		return nil, fmt.Errorf("failed to load finance store: %w", err)
	}
	deps.DashboardService = services.NewDashboardService(deps.HabitService, deps.PlannerService, deps.FinanceService, clk)
	deps.AuditService = services.NewAuditService()

	var issuer services.TokenIssuer
	if cfg.AuthEnabled() {
		deps.TokenManager = middleware.NewTokenManager(cfg.JWTSecret, cfg.JWTExpirationDur)
		issuer = deps.TokenManager
	}
	deps.AuthService = services.NewAuthService(cfg.PasscodeHash, issuer)

	deps.AuthHandler = handlers.NewAuthHandler(deps.AuthService, deps.AuditService)
	deps.HabitHandler = handlers.NewHabitHandler(deps.HabitService, deps.AuditService)
	deps.TaskHandler = handlers.NewTaskHandler(deps.PlannerService, deps.AuditService)
	deps.GoalHandler = handlers.NewGoalHandler(deps.PlannerService, deps.AuditService)
	deps.TransactionHandler = handlers.NewTransactionHandler(deps.FinanceService, deps.AuditService)
	deps.InvestmentHandler = handlers.NewInvestmentHandler(deps.FinanceService, deps.AuditService)
	deps.ReportHandler = handlers.NewReportHandler(deps.FinanceService, deps.DashboardService, clk)
	deps.EventsHandler = handlers.NewEventsHandler(deps.HabitService, deps.PlannerService, deps.FinanceService)

	return deps, nil
}
