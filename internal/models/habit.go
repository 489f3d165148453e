package models

import "time"

// HabitLogStatus is the completion state recorded for a habit on a day.
type HabitLogStatus string

const (
	HabitLogDone   HabitLogStatus = "done"
	HabitLogMissed HabitLogStatus = "missed"
)

// Habit is a recurring activity tracked against a weekly target.
type Habit struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	TargetDaysPerWeek int       `json:"target_days_per_week"`
	CreatedAt         time.Time `json:"created_at"`
}

// HabitLog marks a habit on a calendar day. There is at most one log per
// (HabitID, Date).
type HabitLog struct {
	ID      string         `json:"id"`
	HabitID string         `json:"habit_id"`
	Date    string         `json:"date"`
	Status  HabitLogStatus `json:"status"`
}

// HabitsDocument is the persisted state of the habit store.
type HabitsDocument struct {
	Habits []Habit    `json:"habits"`
	Logs   []HabitLog `json:"logs"`
}
