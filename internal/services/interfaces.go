package services

import (
	"time"

	"github.com/shopspring/decimal"

	"lifeseed/internal/models"
	"lifeseed/internal/pagination"
)

// ChangeNotifier is implemented by every persisted store.
type ChangeNotifier interface {
	Subscribe(fn func(Change)) (unsubscribe func())
}

// ProgressPeriod selects the window of a habit progress query.
type ProgressPeriod string

const (
	ProgressWeek  ProgressPeriod = "week"
	ProgressMonth ProgressPeriod = "month"
)

// HabitUpdate carries the fields of a partial habit update.
type HabitUpdate struct {
	Name              *string
	Category          *string
	TargetDaysPerWeek *int
}

// HabitLogFilter narrows a log listing. Empty fields match everything.
type HabitLogFilter struct {
	HabitID string
	From    string
	To      string
}

// ToggleResult reports the state of a (habit, date) pair after a toggle.
type ToggleResult struct {
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
	Done    bool   `json:"done"`
}

// HabitProgress is the completion of a habit over a week or month window.
type HabitProgress struct {
	HabitID    string         `json:"habit_id"`
	Period     ProgressPeriod `json:"period"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Done       int            `json:"done"`
	Target     int            `json:"target"`
	Percentage int            `json:"percentage"`
}

// HabitServicer defines the contract for the habit store.
type HabitServicer interface {
	ChangeNotifier
	CreateHabit(name, category string, targetDaysPerWeek int) (*models.Habit, error)
	GetHabits() []models.Habit
	GetHabitByID(id string) (*models.Habit, error)
	UpdateHabit(id string, update HabitUpdate) (*models.Habit, error)
	DeleteHabit(id string) error
	ToggleLog(habitID, date string) (*ToggleResult, error)
	RecordLog(habitID, date string, status models.HabitLogStatus) (*models.HabitLog, error)
	GetLogs(filter HabitLogFilter) []models.HabitLog
	GetStreak(habitID string) (int, error)
	GetProgress(habitID string, period ProgressPeriod, anchor string) (*HabitProgress, error)
}

// TaskUpdate carries the fields of a partial task update.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
}

// TaskFilter narrows a task listing. Nil or empty fields match everything.
type TaskFilter struct {
	DueDate  string
	Status   *models.TaskStatus
	Priority *models.TaskPriority
}

// TaskServicer defines the contract for task planning.
type TaskServicer interface {
	ChangeNotifier
	CreateTask(title, description, dueDate string, priority models.TaskPriority, status models.TaskStatus) (*models.Task, error)
	GetTasks(filter TaskFilter) []models.Task
	GetTaskByID(id string) (*models.Task, error)
	UpdateTask(id string, update TaskUpdate) (*models.Task, error)
	DeleteTask(id string) error
	CycleStatus(id string) (*models.Task, error)
}

// GoalUpdate carries the fields of a partial goal update. Month applies to
// monthly goals only.
type GoalUpdate struct {
	Title     *string
	Year      *int
	Month     *int
	Completed *bool
}

// GoalServicer defines the contract for yearly and monthly goals.
type GoalServicer interface {
	ChangeNotifier
	CreateYearlyGoal(title string, year int) (*models.YearlyGoal, error)
	GetYearlyGoals(year *int) []models.YearlyGoal
	UpdateYearlyGoal(id string, update GoalUpdate) (*models.YearlyGoal, error)
	ToggleYearlyGoal(id string) (*models.YearlyGoal, error)
	DeleteYearlyGoal(id string) error
	CreateMonthlyGoal(title string, month, year int) (*models.MonthlyGoal, error)
	GetMonthlyGoals(month, year *int) []models.MonthlyGoal
	UpdateMonthlyGoal(id string, update GoalUpdate) (*models.MonthlyGoal, error)
	ToggleMonthlyGoal(id string) (*models.MonthlyGoal, error)
	DeleteMonthlyGoal(id string) error
}

// PlannerServicer is the task store: tasks and goals share one document.
type PlannerServicer interface {
	TaskServicer
	GoalServicer
}

// TransactionUpdate carries the fields of a partial transaction update.
type TransactionUpdate struct {
	Type     *models.TransactionType
	Amount   *decimal.Decimal
	Date     *string
	Category *string
	Note     *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type     *models.TransactionType
	Year     *int
	Month    *int
	Category *string
}

// InvestmentUpdate carries the fields of a partial investment update.
type InvestmentUpdate struct {
	AssetTicker   *string
	AssetType     *models.AssetType
	BuyPrice      *decimal.Decimal
	Quantity      *decimal.Decimal
	DatePurchased *string
	Note          *string
}

// FinanceTotals sums every transaction by type.
type FinanceTotals struct {
	Income  decimal.Decimal `json:"income" swaggertype:"string"`
	Expense decimal.Decimal `json:"expense" swaggertype:"string"`
	Invest  decimal.Decimal `json:"invest" swaggertype:"string"`
	Balance decimal.Decimal `json:"balance" swaggertype:"string"`
}

// MonthlyPoint is one month of the income/expense chart series.
type MonthlyPoint struct {
	Month   int             `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income" swaggertype:"string"`
	Expense decimal.Decimal `json:"expense" swaggertype:"string"`
}

// CategoryAmount is one slice of the expense breakdown chart.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string"`
}

// AssetSummary contains the value and lot count of one asset type.
type AssetSummary struct {
	Value decimal.Decimal `json:"value" swaggertype:"string"`
	Count int             `json:"count"`
}

// PortfolioSummary aggregates investment lots at their purchase value.
type PortfolioSummary struct {
	TotalValue decimal.Decimal                    `json:"total_value" swaggertype:"string"`
	ByType     map[models.AssetType]AssetSummary `json:"by_type"`
}

// FinanceServicer defines the contract for the finance store.
type FinanceServicer interface {
	ChangeNotifier
	CreateTransaction(txType models.TransactionType, amount decimal.Decimal, date, category, note string) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) *pagination.PageResponse[models.Transaction]
	GetRecentTransactions(n int) []models.Transaction
	GetTransactionByID(id string) (*models.Transaction, error)
	UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id string) error
	CreateInvestment(ticker string, assetType models.AssetType, buyPrice, quantity decimal.Decimal, datePurchased, note string) (*models.Investment, error)
	GetInvestments(assetType *models.AssetType) []models.Investment
	GetInvestmentByID(id string) (*models.Investment, error)
	UpdateInvestment(id string, update InvestmentUpdate) (*models.Investment, error)
	DeleteInvestment(id string) error
	GetBalance() decimal.Decimal
	GetTotals() FinanceTotals
	GetMonthlySeries(year int) []MonthlyPoint
	GetExpenseBreakdown() []CategoryAmount
	GetPortfolio() PortfolioSummary
}

// HabitToday is a dashboard row for one habit.
type HabitToday struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Done   bool   `json:"done"`
	Streak int    `json:"streak"`
}

// DashboardSummary is the home page snapshot for today.
type DashboardSummary struct {
	Date               string               `json:"date"`
	HabitsTotal        int                  `json:"habits_total"`
	HabitsDoneToday    int                  `json:"habits_done_today"`
	BestStreak         int                  `json:"best_streak"`
	Habits             []HabitToday         `json:"habits"`
	PendingTasks       int                  `json:"pending_tasks"`
	CompletedToday     int                  `json:"completed_today"`
	UpcomingTasks      []models.Task        `json:"upcoming_tasks"`
	Balance            decimal.Decimal      `json:"balance" swaggertype:"string"`
	TotalIncome        decimal.Decimal      `json:"total_income" swaggertype:"string"`
	TotalExpense       decimal.Decimal      `json:"total_expense" swaggertype:"string"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// DashboardServicer defines the contract for the read-only home summary.
type DashboardServicer interface {
	GetSummary() *DashboardSummary
}

// AuthServicer defines the contract for passcode sessions.
type AuthServicer interface {
	Enabled() bool
	Login(passcode string) (token string, expiresAt time.Time, err error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
