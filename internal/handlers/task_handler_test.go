package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/services"
)

// --- mock planner service ---

type mockPlannerService struct {
	createTaskFn        func(title, description, dueDate string, priority models.TaskPriority, status models.TaskStatus) (*models.Task, error)
	getTasksFn          func(filter services.TaskFilter) []models.Task
	getTaskByIDFn       func(id string) (*models.Task, error)
	updateTaskFn        func(id string, update services.TaskUpdate) (*models.Task, error)
	deleteTaskFn        func(id string) error
	cycleStatusFn       func(id string) (*models.Task, error)
	createYearlyGoalFn  func(title string, year int) (*models.YearlyGoal, error)
	getYearlyGoalsFn    func(year *int) []models.YearlyGoal
	updateYearlyGoalFn  func(id string, update services.GoalUpdate) (*models.YearlyGoal, error)
	toggleYearlyGoalFn  func(id string) (*models.YearlyGoal, error)
	deleteYearlyGoalFn  func(id string) error
	createMonthlyGoalFn func(title string, month, year int) (*models.MonthlyGoal, error)
	getMonthlyGoalsFn   func(month, year *int) []models.MonthlyGoal
	updateMonthlyGoalFn func(id string, update services.GoalUpdate) (*models.MonthlyGoal, error)
	toggleMonthlyFn     func(id string) (*models.MonthlyGoal, error)
	deleteMonthlyGoalFn func(id string) error
}

func (m *mockPlannerService) Subscribe(func(services.Change)) func() { return func() {} }

func (m *mockPlannerService) CreateTask(title, description, dueDate string, priority models.TaskPriority, status models.TaskStatus) (*models.Task, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(title, description, dueDate, priority, status)
	}
	return &models.Task{Title: title}, nil
}

func (m *mockPlannerService) GetTasks(filter services.TaskFilter) []models.Task {
	if m.getTasksFn != nil {
		return m.getTasksFn(filter)
	}
	return []models.Task{}
}

func (m *mockPlannerService) GetTaskByID(id string) (*models.Task, error) {
	if m.getTaskByIDFn != nil {
		return m.getTaskByIDFn(id)
	}
	return &models.Task{ID: id}, nil
}

func (m *mockPlannerService) UpdateTask(id string, update services.TaskUpdate) (*models.Task, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(id, update)
	}
	return &models.Task{ID: id}, nil
}

func (m *mockPlannerService) DeleteTask(id string) error {
	if m.deleteTaskFn != nil {
		return m.deleteTaskFn(id)
	}
	return nil
}

func (m *mockPlannerService) CycleStatus(id string) (*models.Task, error) {
	if m.cycleStatusFn != nil {
		return m.cycleStatusFn(id)
	}
	return &models.Task{ID: id}, nil
}

func (m *mockPlannerService) CreateYearlyGoal(title string, year int) (*models.YearlyGoal, error) {
	if m.createYearlyGoalFn != nil {
		return m.createYearlyGoalFn(title, year)
	}
	return &models.YearlyGoal{Title: title, Year: year}, nil
}

func (m *mockPlannerService) GetYearlyGoals(year *int) []models.YearlyGoal {
	if m.getYearlyGoalsFn != nil {
		return m.getYearlyGoalsFn(year)
	}
	return []models.YearlyGoal{}
}

func (m *mockPlannerService) UpdateYearlyGoal(id string, update services.GoalUpdate) (*models.YearlyGoal, error) {
	if m.updateYearlyGoalFn != nil {
		return m.updateYearlyGoalFn(id, update)
	}
	return &models.YearlyGoal{ID: id}, nil
}

func (m *mockPlannerService) ToggleYearlyGoal(id string) (*models.YearlyGoal, error) {
	if m.toggleYearlyGoalFn != nil {
		return m.toggleYearlyGoalFn(id)
	}
	return &models.YearlyGoal{ID: id}, nil
}

func (m *mockPlannerService) DeleteYearlyGoal(id string) error {
	if m.deleteYearlyGoalFn != nil {
		return m.deleteYearlyGoalFn(id)
	}
	return nil
}

func (m *mockPlannerService) CreateMonthlyGoal(title string, month, year int) (*models.MonthlyGoal, error) {
	if m.createMonthlyGoalFn != nil {
		return m.createMonthlyGoalFn(title, month, year)
	}
	return &models.MonthlyGoal{Title: title, Month: month, Year: year}, nil
}

func (m *mockPlannerService) GetMonthlyGoals(month, year *int) []models.MonthlyGoal {
	if m.getMonthlyGoalsFn != nil {
		return m.getMonthlyGoalsFn(month, year)
	}
	return []models.MonthlyGoal{}
}

func (m *mockPlannerService) UpdateMonthlyGoal(id string, update services.GoalUpdate) (*models.MonthlyGoal, error) {
	if m.updateMonthlyGoalFn != nil {
		return m.updateMonthlyGoalFn(id, update)
	}
	return &models.MonthlyGoal{ID: id}, nil
}

func (m *mockPlannerService) ToggleMonthlyGoal(id string) (*models.MonthlyGoal, error) {
	if m.toggleMonthlyFn != nil {
		return m.toggleMonthlyFn(id)
	}
	return &models.MonthlyGoal{ID: id}, nil
}

func (m *mockPlannerService) DeleteMonthlyGoal(id string) error {
	if m.deleteMonthlyGoalFn != nil {
		return m.deleteMonthlyGoalFn(id)
	}
	return nil
}

var _ services.PlannerServicer = (*mockPlannerService)(nil)

func setupTaskRouter(handler *TaskHandler) *gin.Engine {
	r := gin.New()
	r.POST("/tasks", handler.CreateTask)
	r.GET("/tasks", handler.GetTasks)
	r.GET("/tasks/:id", handler.GetTask)
	r.PUT("/tasks/:id", handler.UpdateTask)
	r.DELETE("/tasks/:id", handler.DeleteTask)
	r.POST("/tasks/:id/cycle", handler.CycleStatus)
	return r
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotPriority models.TaskPriority
		svc := &mockPlannerService{
			createTaskFn: func(title, _, dueDate string, priority models.TaskPriority, _ models.TaskStatus) (*models.Task, error) {
				gotPriority = priority
				return &models.Task{ID: testID, Title: title, DueDate: dueDate, Priority: priority, Status: models.TaskStatusPending}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTaskRouter(NewTaskHandler(svc, audit))

		rec := doRequest(r, "POST", "/tasks", `{"title":"Ship","due_date":"2025-06-18","priority":"high"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPriority != models.TaskPriorityHigh {
			t.Errorf("expected high priority, got %q", gotPriority)
		}
		task := parseJSON(t, rec)["task"].(map[string]interface{})
		if task["status"] != "pending" {
			t.Errorf("expected pending, got %v", task["status"])
		}
		if len(audit.entries) != 1 || audit.entries[0].resourceID != testID {
			t.Errorf("expected audit entry for %s, got %+v", testID, audit.entries)
		}
	})

	t.Run("returns 400 on unknown priority", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockPlannerService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/tasks", `{"title":"Ship","priority":"urgent"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed due date", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockPlannerService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/tasks", `{"title":"Ship","due_date":"18/06/2025"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_GetTasks(t *testing.T) {
	t.Run("builds filter from query", func(t *testing.T) {
		var got services.TaskFilter
		svc := &mockPlannerService{
			getTasksFn: func(filter services.TaskFilter) []models.Task {
				got = filter
				return []models.Task{{ID: testID}, {ID: otherTestID}}
			},
		}
		r := setupTaskRouter(NewTaskHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/tasks?due_date=2025-06-18&status=in-progress", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.DueDate != "2025-06-18" {
			t.Errorf("expected due date filter, got %q", got.DueDate)
		}
		if got.Status == nil || *got.Status != models.TaskStatusInProgress {
			t.Errorf("expected in-progress status filter, got %v", got.Status)
		}
		if got.Priority != nil {
			t.Errorf("expected no priority filter, got %v", *got.Priority)
		}
		if tasks := parseJSON(t, rec)["tasks"].([]interface{}); len(tasks) != 2 {
			t.Errorf("expected 2 tasks, got %d", len(tasks))
		}
	})

	t.Run("returns 400 on unknown status", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockPlannerService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/tasks?status=done", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockPlannerService{
			getTaskByIDFn: func(string) (*models.Task, error) { return nil, apperrors.ErrTaskNotFound },
		}
		r := setupTaskRouter(NewTaskHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/tasks/"+testID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TASK_NOT_FOUND")
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("passes status change", func(t *testing.T) {
		var got services.TaskUpdate
		svc := &mockPlannerService{
			updateTaskFn: func(id string, update services.TaskUpdate) (*models.Task, error) {
				got = update
				return &models.Task{ID: id, Status: *update.Status}, nil
			},
		}
		r := setupTaskRouter(NewTaskHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/tasks/"+testID, `{"status":"completed"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Status == nil || *got.Status != models.TaskStatusCompleted || got.Title != nil {
			t.Errorf("unexpected update %+v", got)
		}
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockPlannerService{
			deleteTaskFn: func(string) error { return apperrors.ErrTaskNotFound },
		}
		audit := &mockAuditService{}
		r := setupTaskRouter(NewTaskHandler(svc, audit))

		rec := doRequest(r, "DELETE", "/tasks/"+testID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if len(audit.entries) != 0 {
			t.Errorf("expected no audit entry, got %+v", audit.entries)
		}
	})
}

func TestTaskHandler_CycleStatus(t *testing.T) {
	t.Run("returns the advanced task", func(t *testing.T) {
		svc := &mockPlannerService{
			cycleStatusFn: func(id string) (*models.Task, error) {
				return &models.Task{ID: id, Status: models.TaskStatusPending.Next()}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTaskRouter(NewTaskHandler(svc, audit))

		rec := doRequest(r, "POST", "/tasks/"+testID+"/cycle", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		task := parseJSON(t, rec)["task"].(map[string]interface{})
		if task["status"] != "in-progress" {
			t.Errorf("expected in-progress, got %v", task["status"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CYCLE_TASK_STATUS" {
			t.Errorf("unexpected audit entries %+v", audit.entries)
		}
	})
}
