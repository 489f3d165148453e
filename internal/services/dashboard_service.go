package services

import (
	"lifeseed/internal/clock"
	"lifeseed/internal/dates"
	"lifeseed/internal/models"
)

// dashboardPreviewSize caps the habit, task and transaction lists on the
// home summary.
const dashboardPreviewSize = 5

// dashboardService composes read-only views over the three stores.
type dashboardService struct {
	habits  HabitServicer
	planner PlannerServicer
	finance FinanceServicer
	clock   clock.Clock
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(habits HabitServicer, planner PlannerServicer, finance FinanceServicer, clk clock.Clock) DashboardServicer {
	return &dashboardService{habits: habits, planner: planner, finance: finance, clock: clk}
}

// GetSummary builds the snapshot for today in the configured time zone.
func (s *dashboardService) GetSummary() *DashboardSummary {
	today := dates.Today(s.clock.Now())
	summary := &DashboardSummary{
		Date:          today,
		Habits:        []HabitToday{},
		UpcomingTasks: []models.Task{},
	}

	doneToday := make(map[string]bool)
	for _, l := range s.habits.GetLogs(HabitLogFilter{From: today, To: today}) {
		if l.Status == models.HabitLogDone {
			doneToday[l.HabitID] = true
		}
	}

	habits := s.habits.GetHabits()
	summary.HabitsTotal = len(habits)
	for _, h := range habits {
		streak, err := s.habits.GetStreak(h.ID)
		if err != nil {
			// Deleted between the listing and the streak read.
			continue
		}
		if doneToday[h.ID] {
			summary.HabitsDoneToday++
		}
		if streak > summary.BestStreak {
			summary.BestStreak = streak
		}
		if len(summary.Habits) < dashboardPreviewSize {
			summary.Habits = append(summary.Habits, HabitToday{
				ID:     h.ID,
				Name:   h.Name,
				Done:   doneToday[h.ID],
				Streak: streak,
			})
		}
	}

	for _, t := range s.planner.GetTasks(TaskFilter{}) {
		if t.Status == models.TaskStatusCompleted {
			if t.DueDate == today {
				summary.CompletedToday++
			}
			continue
		}
		summary.PendingTasks++
		if len(summary.UpcomingTasks) < dashboardPreviewSize {
			summary.UpcomingTasks = append(summary.UpcomingTasks, t)
		}
	}

	totals := s.finance.GetTotals()
	summary.Balance = totals.Balance
	summary.TotalIncome = totals.Income
	summary.TotalExpense = totals.Expense
	summary.RecentTransactions = s.finance.GetRecentTransactions(dashboardPreviewSize)

	return summary
}
