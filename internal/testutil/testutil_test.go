package testutil_test

import (
	"testing"

	"lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	if err := db.Table("documents").Count(&count).Error; err != nil {
		t.Errorf("table documents should exist after migration: %v", err)
	}
}

func TestSeedAndLoadDocument(t *testing.T) {
	st := testutil.SetupTestStorage(t)
	habit := testutil.NewTestHabit()

	testutil.SeedDocument(t, st, models.HabitsDocumentKey, models.HabitsDocument{
		Habits: []models.Habit{habit},
		Logs:   []models.HabitLog{testutil.NewTestLog(habit.ID, "2026-01-01")},
	})

	var doc models.HabitsDocument
	testutil.LoadDocument(t, st, models.HabitsDocumentKey, &doc)
	if len(doc.Habits) != 1 || doc.Habits[0].Name != habit.Name {
		t.Errorf("expected seeded habit %q, got %+v", habit.Name, doc.Habits)
	}
	if len(doc.Logs) != 1 || doc.Logs[0].HabitID != habit.ID {
		t.Errorf("expected one log for the habit, got %+v", doc.Logs)
	}
}

func TestFixtureIDsAreUnique(t *testing.T) {
	a := testutil.NewTestHabit()
	b := testutil.NewTestHabit()
	if a.ID == b.ID {
		t.Errorf("expected unique fixture IDs, both were %s", a.ID)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrHabitNotFound, "custom message")
	testutil.AssertAppError(t, err, "HABIT_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
