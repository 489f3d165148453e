package models

import "time"

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Next returns the status that follows s in the
// pending → in-progress → completed → pending cycle.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskStatusPending:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusCompleted
	default:
		return TaskStatusPending
	}
}

// TaskPriority ranks tasks within a day.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Task is a dated to-do item.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     string       `json:"due_date"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
}

// YearlyGoal is an objective tagged to a year.
type YearlyGoal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Completed bool   `json:"completed"`
}

// MonthlyGoal is an objective tagged to a month (1-12) of a year.
type MonthlyGoal struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Completed bool   `json:"completed"`
}

// TasksDocument is the persisted state of the planner store.
type TasksDocument struct {
	Tasks        []Task        `json:"tasks"`
	Goals        []YearlyGoal  `json:"goals"`
	MonthlyGoals []MonthlyGoal `json:"monthly_goals"`
}
