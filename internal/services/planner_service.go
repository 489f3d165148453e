package services

import (
	"sort"
	"strings"

	"lifeseed/internal/clock"
	"lifeseed/internal/dates"
	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/storage"
	"lifeseed/internal/uuid"
)

var (
	priorityOrder = map[models.TaskPriority]int{
		models.TaskPriorityHigh:   0,
		models.TaskPriorityMedium: 1,
		models.TaskPriorityLow:    2,
	}
	statusOrder = map[models.TaskStatus]int{
		models.TaskStatusInProgress: 0,
		models.TaskStatusPending:    1,
		models.TaskStatusCompleted:  2,
	}
)

// plannerService handles tasks, yearly goals and monthly goals. All three
// live in the same persisted document.
type plannerService struct {
	store *documentStore[models.TasksDocument]
	clock clock.Clock
}

// NewPlannerService loads the tasks document and returns a PlannerServicer.
func NewPlannerService(st storage.Storage, clk clock.Clock) (PlannerServicer, error) {
	store, err := newDocumentStore[models.TasksDocument](st, StoreTasks, models.TasksDocumentKey)
	if err != nil {
		return nil, err
	}
	return &plannerService{store: store, clock: clk}, nil
}

func (s *plannerService) Subscribe(fn func(Change)) func() {
	return s.store.subscribe(fn)
}

// CreateTask adds a task. Status defaults to pending and priority to medium.
func (s *plannerService) CreateTask(
	title, description, dueDate string,
	priority models.TaskPriority,
	status models.TaskStatus,
) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Task title is required")
	}
	if dueDate != "" && !dates.IsValid(dueDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Due date must be YYYY-MM-DD")
	}
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if status == "" {
		status = models.TaskStatusPending
	}
	if _, ok := priorityOrder[priority]; !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported priority")
	}
	if _, ok := statusOrder[status]; !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported status")
	}

	task := models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
		Priority:    priority,
		CreatedAt:   s.clock.Now(),
	}

	err := s.store.update("create_task", task.ID, func(doc *models.TasksDocument) error {
		doc.Tasks = append(doc.Tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasks returns tasks matching the filter. A due-date listing is the
// daily view and is ordered by priority, then status.
func (s *plannerService) GetTasks(filter TaskFilter) []models.Task {
	tasks := []models.Task{}
	s.store.view(func(doc *models.TasksDocument) {
		for _, t := range doc.Tasks {
			if filter.DueDate != "" && t.DueDate != filter.DueDate {
				continue
			}
			if filter.Status != nil && t.Status != *filter.Status {
				continue
			}
			if filter.Priority != nil && t.Priority != *filter.Priority {
				continue
			}
			tasks = append(tasks, t)
		}
	})

	if filter.DueDate != "" {
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i], tasks[j]
			if pa, pb := priorityOrder[a.Priority], priorityOrder[b.Priority]; pa != pb {
				return pa < pb
			}
			return statusOrder[a.Status] < statusOrder[b.Status]
		})
	}
	return tasks
}

// GetTaskByID returns a task by ID.
func (s *plannerService) GetTaskByID(id string) (*models.Task, error) {
	var (
		task  models.Task
		found bool
	)
	s.store.view(func(doc *models.TasksDocument) {
		if i := findTask(doc, id); i >= 0 {
			task, found = doc.Tasks[i], true
		}
	})
	if !found {
		return nil, apperrors.ErrTaskNotFound
	}
	return &task, nil
}

// UpdateTask edits a task in place. Due dates are not checked against today.
func (s *plannerService) UpdateTask(id string, update TaskUpdate) (*models.Task, error) {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Task title is required")
	}
	if update.DueDate != nil && *update.DueDate != "" && !dates.IsValid(*update.DueDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Due date must be YYYY-MM-DD")
	}
	if update.Status != nil {
		if _, ok := statusOrder[*update.Status]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported status")
		}
	}
	if update.Priority != nil {
		if _, ok := priorityOrder[*update.Priority]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported priority")
		}
	}

	var updated models.Task
	err := s.store.update("update_task", id, func(doc *models.TasksDocument) error {
		i := findTask(doc, id)
		if i < 0 {
			return apperrors.ErrTaskNotFound
		}
		t := &doc.Tasks[i]
		if update.Title != nil {
			t.Title = strings.TrimSpace(*update.Title)
		}
		if update.Description != nil {
			t.Description = *update.Description
		}
		if update.DueDate != nil {
			t.DueDate = *update.DueDate
		}
		if update.Status != nil {
			t.Status = *update.Status
		}
		if update.Priority != nil {
			t.Priority = *update.Priority
		}
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task.
func (s *plannerService) DeleteTask(id string) error {
	return s.store.update("delete_task", id, func(doc *models.TasksDocument) error {
		i := findTask(doc, id)
		if i < 0 {
			return apperrors.ErrTaskNotFound
		}
		doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
		return nil
	})
}

// CycleStatus advances pending → in-progress → completed → pending.
func (s *plannerService) CycleStatus(id string) (*models.Task, error) {
	var updated models.Task
	err := s.store.update("cycle_status", id, func(doc *models.TasksDocument) error {
		i := findTask(doc, id)
		if i < 0 {
			return apperrors.ErrTaskNotFound
		}
		doc.Tasks[i].Status = doc.Tasks[i].Status.Next()
		updated = doc.Tasks[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CreateYearlyGoal adds a goal tagged to year.
func (s *plannerService) CreateYearlyGoal(title string, year int) (*models.YearlyGoal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal title is required")
	}
	if year == 0 {
		year = s.clock.Now().Year()
	}

	goal := models.YearlyGoal{ID: uuid.New(), Title: title, Year: year}
	err := s.store.update("create_goal", goal.ID, func(doc *models.TasksDocument) error {
		doc.Goals = append(doc.Goals, goal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetYearlyGoals returns goals, narrowed to year when given.
func (s *plannerService) GetYearlyGoals(year *int) []models.YearlyGoal {
	goals := []models.YearlyGoal{}
	s.store.view(func(doc *models.TasksDocument) {
		for _, g := range doc.Goals {
			if year == nil || g.Year == *year {
				goals = append(goals, g)
			}
		}
	})
	return goals
}

// UpdateYearlyGoal edits a yearly goal in place.
func (s *plannerService) UpdateYearlyGoal(id string, update GoalUpdate) (*models.YearlyGoal, error) {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal title is required")
	}

	var updated models.YearlyGoal
	err := s.store.update("update_goal", id, func(doc *models.TasksDocument) error {
		i := findYearlyGoal(doc, id)
		if i < 0 {
			return apperrors.ErrGoalNotFound
		}
		g := &doc.Goals[i]
		if update.Title != nil {
			g.Title = strings.TrimSpace(*update.Title)
		}
		if update.Year != nil {
			g.Year = *update.Year
		}
		if update.Completed != nil {
			g.Completed = *update.Completed
		}
		updated = *g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ToggleYearlyGoal flips the completion flag.
func (s *plannerService) ToggleYearlyGoal(id string) (*models.YearlyGoal, error) {
	var updated models.YearlyGoal
	err := s.store.update("toggle_goal", id, func(doc *models.TasksDocument) error {
		i := findYearlyGoal(doc, id)
		if i < 0 {
			return apperrors.ErrGoalNotFound
		}
		doc.Goals[i].Completed = !doc.Goals[i].Completed
		updated = doc.Goals[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteYearlyGoal removes a yearly goal.
func (s *plannerService) DeleteYearlyGoal(id string) error {
	return s.store.update("delete_goal", id, func(doc *models.TasksDocument) error {
		i := findYearlyGoal(doc, id)
		if i < 0 {
			return apperrors.ErrGoalNotFound
		}
		doc.Goals = append(doc.Goals[:i], doc.Goals[i+1:]...)
		return nil
	})
}

// CreateMonthlyGoal adds a goal tagged to month (1-12) of year.
func (s *plannerService) CreateMonthlyGoal(title string, month, year int) (*models.MonthlyGoal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal title is required")
	}
	now := s.clock.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be between 1 and 12")
	}

	goal := models.MonthlyGoal{ID: uuid.New(), Title: title, Month: month, Year: year}
	err := s.store.update("create_monthly_goal", goal.ID, func(doc *models.TasksDocument) error {
		doc.MonthlyGoals = append(doc.MonthlyGoals, goal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetMonthlyGoals returns monthly goals, narrowed by month and/or year.
func (s *plannerService) GetMonthlyGoals(month, year *int) []models.MonthlyGoal {
	goals := []models.MonthlyGoal{}
	s.store.view(func(doc *models.TasksDocument) {
		for _, g := range doc.MonthlyGoals {
			if month != nil && g.Month != *month {
				continue
			}
			if year != nil && g.Year != *year {
				continue
			}
			goals = append(goals, g)
		}
	})
	return goals
}

// UpdateMonthlyGoal edits a monthly goal in place.
func (s *plannerService) UpdateMonthlyGoal(id string, update GoalUpdate) (*models.MonthlyGoal, error) {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Goal title is required")
	}
	if update.Month != nil && (*update.Month < 1 || *update.Month > 12) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be between 1 and 12")
	}

	var updated models.MonthlyGoal
	err := s.store.update("update_monthly_goal", id, func(doc *models.TasksDocument) error {
		i := findMonthlyGoal(doc, id)
		if i < 0 {
			return apperrors.ErrGoalNotFound
		}
		g := &doc.MonthlyGoals[i]
		if update.Title != nil {
			g.Title = strings.TrimSpace(*update.Title)
		}
		if update.Month != nil {
			g.Month = *update.Month
		}
		if update.Year != nil {
			g.Year = *update.Year
		}
		if update.Completed != nil {
			g.Completed = *update.Completed
		}
		updated = *g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ToggleMonthlyGoal flips the completion flag.
func (s *plannerService) ToggleMonthlyGoal(id string) (*models.MonthlyGoal, error) {
	var updated models.MonthlyGoal
	err := s.store.update("toggle_monthly_goal", id, func(doc *models.TasksDocument) error {
		i := findMonthlyGoal(doc, id)
		if i < 0 {
			return apperrors.ErrGoalNotFound
		}
		doc.MonthlyGoals[i].Completed = !doc.MonthlyGoals[i].Completed
		updated = doc.MonthlyGoals[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMonthlyGoal removes a monthly goal.
func (s *plannerService) DeleteMonthlyGoal(id string) error {
	return s.store.update("delete_monthly_goal", id, func(doc *models.TasksDocument) error {
		i := findMonthlyGoal(doc, id)
		if i < 0 {
			return apperrors.ErrGoalNotFound
		}
		doc.MonthlyGoals = append(doc.MonthlyGoals[:i], doc.MonthlyGoals[i+1:]...)
		return nil
	})
}

func findTask(doc *models.TasksDocument, id string) int {
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func findYearlyGoal(doc *models.TasksDocument, id string) int {
	for i := range doc.Goals {
		if doc.Goals[i].ID == id {
			return i
		}
	}
	return -1
}

func findMonthlyGoal(doc *models.TasksDocument, id string) int {
	for i := range doc.MonthlyGoals {
		if doc.MonthlyGoals[i].ID == id {
			return i
		}
	}
	return -1
}
