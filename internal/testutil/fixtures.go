package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Pallinder/go-randomdata"
	"github.com/shopspring/decimal"

	"lifeseed/internal/models"
	"lifeseed/internal/storage"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() string {
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", counter.Add(1))
}

// NewTestHabit returns a habit with a random name and a daily target.
func NewTestHabit() models.Habit {
	return models.Habit{
		ID:                nextID(),
		Name:              randomdata.SillyName(),
		Category:          "health",
		TargetDaysPerWeek: 7,
		CreatedAt:         time.Now(),
	}
}

// NewTestLog returns a done log for habitID on date.
func NewTestLog(habitID, date string) models.HabitLog {
	return models.HabitLog{
		ID:      nextID(),
		HabitID: habitID,
		Date:    date,
		Status:  models.HabitLogDone,
	}
}

// NewTestTask returns a pending medium-priority task due on dueDate.
func NewTestTask(dueDate string) models.Task {
	return models.Task{
		ID:        nextID(),
		Title:     randomdata.SillyName(),
		DueDate:   dueDate,
		Status:    models.TaskStatusPending,
		Priority:  models.TaskPriorityMedium,
		CreatedAt: time.Now(),
	}
}

// NewTestTransaction returns a transaction of the given type and amount.
func NewTestTransaction(txType models.TransactionType, amount int64, date string) models.Transaction {
	return models.Transaction{
		ID:        nextID(),
		Type:      txType,
		Amount:    decimal.NewFromInt(amount),
		Date:      date,
		Category:  randomdata.Noun(),
		CreatedAt: time.Now(),
	}
}

// SeedDocument stores doc as JSON under key before a store is opened.
func SeedDocument(t *testing.T, st storage.Storage, key string, doc any) {
	t.Helper()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal seed document: %v", err)
	}
	if err := st.Save(key, data); err != nil {
		t.Fatalf("failed to seed document %s: %v", key, err)
	}
}

// LoadDocument reads the persisted document under key into out.
func LoadDocument(t *testing.T, st storage.Storage, key string, out any) {
	t.Helper()

	data, err := st.Load(key)
	if err != nil {
		t.Fatalf("failed to load document %s: %v", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("failed to unmarshal document %s: %v", key, err)
	}
}
