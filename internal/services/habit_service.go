package services

import (
	"math"
	"sort"
	"strings"

	"lifeseed/internal/clock"
	"lifeseed/internal/dates"
	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/storage"
	"lifeseed/internal/uuid"
)

// streakLookbackDays bounds how far back a streak scan walks.
const streakLookbackDays = 365

// habitService handles habit and habit log business logic.
type habitService struct {
	store *documentStore[models.HabitsDocument]
	clock clock.Clock
}

// NewHabitService loads the habit document and returns a HabitServicer.
func NewHabitService(st storage.Storage, clk clock.Clock) (HabitServicer, error) {
	store, err := newDocumentStore[models.HabitsDocument](st, StoreHabits, models.HabitsDocumentKey)
	if err != nil {
		return nil, err
	}
	return &habitService{store: store, clock: clk}, nil
}

func (s *habitService) Subscribe(fn func(Change)) func() {
	return s.store.subscribe(fn)
}

// CreateHabit adds a habit with a weekly target between 1 and 7 days. A zero
// target means every day.
func (s *habitService) CreateHabit(name, category string, targetDaysPerWeek int) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Habit name is required")
	}
	if targetDaysPerWeek == 0 {
		targetDaysPerWeek = 7
	}
	if targetDaysPerWeek < 1 || targetDaysPerWeek > 7 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Target days per week must be between 1 and 7")
	}

	habit := models.Habit{
		ID:                uuid.New(),
		Name:              name,
		Category:          strings.TrimSpace(category),
		TargetDaysPerWeek: targetDaysPerWeek,
		CreatedAt:         s.clock.Now(),
	}

	err := s.store.update("create_habit", habit.ID, func(doc *models.HabitsDocument) error {
		doc.Habits = append(doc.Habits, habit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// GetHabits returns all habits in creation order.
func (s *habitService) GetHabits() []models.Habit {
	var habits []models.Habit
	s.store.view(func(doc *models.HabitsDocument) {
		habits = append([]models.Habit{}, doc.Habits...)
	})
	return habits
}

// GetHabitByID returns a habit by ID.
func (s *habitService) GetHabitByID(id string) (*models.Habit, error) {
	var (
		habit models.Habit
		found bool
	)
	s.store.view(func(doc *models.HabitsDocument) {
		if i := findHabit(doc, id); i >= 0 {
			habit, found = doc.Habits[i], true
		}
	})
	if !found {
		return nil, apperrors.ErrHabitNotFound
	}
	return &habit, nil
}

// UpdateHabit edits a habit in place.
func (s *habitService) UpdateHabit(id string, update HabitUpdate) (*models.Habit, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Habit name is required")
	}
	if t := update.TargetDaysPerWeek; t != nil && (*t < 1 || *t > 7) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Target days per week must be between 1 and 7")
	}

	var updated models.Habit
	err := s.store.update("update_habit", id, func(doc *models.HabitsDocument) error {
		i := findHabit(doc, id)
		if i < 0 {
			return apperrors.ErrHabitNotFound
		}
		h := &doc.Habits[i]
		if update.Name != nil {
			h.Name = strings.TrimSpace(*update.Name)
		}
		if update.Category != nil {
			h.Category = strings.TrimSpace(*update.Category)
		}
		if update.TargetDaysPerWeek != nil {
			h.TargetDaysPerWeek = *update.TargetDaysPerWeek
		}
		updated = *h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteHabit removes a habit together with every log that references it.
func (s *habitService) DeleteHabit(id string) error {
	return s.store.update("delete_habit", id, func(doc *models.HabitsDocument) error {
		i := findHabit(doc, id)
		if i < 0 {
			return apperrors.ErrHabitNotFound
		}
		doc.Habits = append(doc.Habits[:i], doc.Habits[i+1:]...)

		logs := doc.Logs[:0]
		for _, l := range doc.Logs {
			if l.HabitID != id {
				logs = append(logs, l)
			}
		}
		doc.Logs = logs
		return nil
	})
}

// ToggleLog removes the log of (habitID, date) when present and adds a done
// log otherwise, so two toggles leave the pair absent again.
func (s *habitService) ToggleLog(habitID, date string) (*ToggleResult, error) {
	if !dates.IsValid(date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be YYYY-MM-DD")
	}

	result := &ToggleResult{HabitID: habitID, Date: date}
	err := s.store.update("toggle_log", habitID, func(doc *models.HabitsDocument) error {
		if findHabit(doc, habitID) < 0 {
			return apperrors.ErrHabitNotFound
		}
		if i := findLog(doc, habitID, date); i >= 0 {
			doc.Logs = append(doc.Logs[:i], doc.Logs[i+1:]...)
			return nil
		}
		doc.Logs = append(doc.Logs, models.HabitLog{
			ID:      uuid.New(),
			HabitID: habitID,
			Date:    date,
			Status:  models.HabitLogDone,
		})
		result.Done = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordLog sets the status of (habitID, date), creating the log if needed.
func (s *habitService) RecordLog(habitID, date string, status models.HabitLogStatus) (*models.HabitLog, error) {
	if !dates.IsValid(date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be YYYY-MM-DD")
	}
	if status != models.HabitLogDone && status != models.HabitLogMissed {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Status must be 'done' or 'missed'")
	}

	var log models.HabitLog
	err := s.store.update("record_log", habitID, func(doc *models.HabitsDocument) error {
		if findHabit(doc, habitID) < 0 {
			return apperrors.ErrHabitNotFound
		}
		if i := findLog(doc, habitID, date); i >= 0 {
			doc.Logs[i].Status = status
			log = doc.Logs[i]
			return nil
		}
		log = models.HabitLog{ID: uuid.New(), HabitID: habitID, Date: date, Status: status}
		doc.Logs = append(doc.Logs, log)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetLogs returns logs matching the filter, ordered by date.
func (s *habitService) GetLogs(filter HabitLogFilter) []models.HabitLog {
	logs := []models.HabitLog{}
	s.store.view(func(doc *models.HabitsDocument) {
		for _, l := range doc.Logs {
			if filter.HabitID != "" && l.HabitID != filter.HabitID {
				continue
			}
			if !dates.InRange(l.Date, filter.From, filter.To) {
				continue
			}
			logs = append(logs, l)
		}
	})
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })
	return logs
}

// GetStreak counts consecutive done days walking back from today. A missing
// today does not end the scan; the first missing day before today does.
func (s *habitService) GetStreak(habitID string) (int, error) {
	if _, err := s.GetHabitByID(habitID); err != nil {
		return 0, err
	}
	return s.streak(habitID), nil
}

func (s *habitService) streak(habitID string) int {
	done := s.doneDates(habitID)
	if len(done) == 0 {
		return 0
	}

	today := dates.Day(s.clock.Now())
	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		if _, ok := done[dates.Format(today.AddDate(0, 0, -i))]; ok {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// GetProgress counts done logs in the week or month containing anchor
// (today when empty).
func (s *habitService) GetProgress(habitID string, period ProgressPeriod, anchor string) (*HabitProgress, error) {
	habit, err := s.GetHabitByID(habitID)
	if err != nil {
		return nil, err
	}

	day := dates.Day(s.clock.Now())
	if anchor != "" {
		if day, err = dates.Parse(anchor); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be YYYY-MM-DD")
		}
	}

	progress := &HabitProgress{HabitID: habitID, Period: period}
	switch period {
	case ProgressWeek, "":
		progress.Period = ProgressWeek
		start := dates.WeekStart(day)
		progress.From = dates.Format(start)
		progress.To = dates.Format(start.AddDate(0, 0, 6))
		progress.Target = habit.TargetDaysPerWeek
	case ProgressMonth:
		first, last := dates.MonthBounds(day.Year(), day.Month())
		progress.From = dates.Format(first)
		progress.To = dates.Format(last)
		progress.Target = int(math.Ceil(float64(habit.TargetDaysPerWeek) * float64(last.Day()) / 7))
	default:
		return nil, apperrors.ErrInvalidPeriod
	}

	for d := range s.doneDates(habitID) {
		if dates.InRange(d, progress.From, progress.To) {
			progress.Done++
		}
	}
	progress.Percentage = dates.Percent(progress.Done, progress.Target)
	return progress, nil
}

// doneDates returns the set of days with a done log for the habit.
func (s *habitService) doneDates(habitID string) map[string]struct{} {
	done := make(map[string]struct{})
	s.store.view(func(doc *models.HabitsDocument) {
		for _, l := range doc.Logs {
			if l.HabitID == habitID && l.Status == models.HabitLogDone {
				done[l.Date] = struct{}{}
			}
		}
	})
	return done
}

func findHabit(doc *models.HabitsDocument, id string) int {
	for i := range doc.Habits {
		if doc.Habits[i].ID == id {
			return i
		}
	}
	return -1
}

func findLog(doc *models.HabitsDocument, habitID, date string) int {
	for i := range doc.Logs {
		if doc.Logs[i].HabitID == habitID && doc.Logs[i].Date == date {
			return i
		}
	}
	return -1
}
