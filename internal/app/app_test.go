package app

import (
	"net/http"
	"path/filepath"
	"testing"

	"lifeseed/internal/config"
	"lifeseed/internal/storage"
	"lifeseed/internal/testutil"
)

func TestRouter_Health(t *testing.T) {
	app := setupApp(t)

	result := app.mustRequest(t, "GET", "/api/health", "", http.StatusOK)
	if result["status"] != "ok" {
		t.Errorf("expected ok, got %v", result["status"])
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/nothing-here", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(parseJSON(t, rec)); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %q", code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	app := setupApp(t)

	rec := app.request("OPTIONS", "/api/v1/habits", "", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}

func TestDashboardFlow(t *testing.T) {
	app := setupApp(t)

	empty := app.mustRequest(t, "GET", "/api/v1/dashboard", "", http.StatusOK)["dashboard"].(map[string]interface{})
	if empty["habits_total"].(float64) != 0 || empty["balance"] != "0" {
		t.Fatalf("unexpected empty dashboard %v", empty)
	}

	readID := app.createHabit(t, "Read", 7)
	app.createHabit(t, "Walk", 7)
	app.mustRequest(t, "POST", "/api/v1/habits/"+readID+"/logs/2025-06-17/toggle", "", http.StatusOK)
	app.mustRequest(t, "POST", "/api/v1/habits/"+readID+"/logs/2025-06-18/toggle", "", http.StatusOK)
	app.mustRequest(t, "POST", "/api/v1/tasks", `{"title":"Open","due_date":"2025-06-18"}`, http.StatusCreated)
	app.mustRequest(t, "POST", "/api/v1/tasks", `{"title":"Done","due_date":"2025-06-18","status":"completed"}`, http.StatusCreated)
	app.createTransaction(t, "income", "200", "2025-06-01", "salary")
	app.createTransaction(t, "expense", "50", "2025-06-02", "food")

	summary := app.mustRequest(t, "GET", "/api/v1/dashboard", "", http.StatusOK)["dashboard"].(map[string]interface{})
	checks := map[string]float64{
		"habits_total":      2,
		"habits_done_today": 1,
		"best_streak":       2,
		"pending_tasks":     1,
		"completed_today":   1,
	}
	for field, want := range checks {
		if got := summary[field].(float64); got != want {
			t.Errorf("%s: expected %v, got %v", field, want, got)
		}
	}
	if summary["balance"] != "150" {
		t.Errorf("expected balance 150, got %v", summary["balance"])
	}
	if recent := summary["recent_transactions"].([]interface{}); len(recent) != 2 {
		t.Errorf("expected 2 recent transactions, got %d", len(recent))
	}
}

func TestPersistence_SurvivesRestart(t *testing.T) {
	backends := []struct {
		name string
		open func(t *testing.T) (storage.Storage, func() storage.Storage)
	}{
		{
			name: "bolt",
			open: func(t *testing.T) (storage.Storage, func() storage.Storage) {
				path := filepath.Join(t.TempDir(), "lifeseed.db")
				reopen := func() storage.Storage {
					st, err := storage.NewBolt(path)
					if err != nil {
						t.Fatalf("failed to open bolt: %v", err)
					}
					return st
				}
				return reopen(), reopen
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) (storage.Storage, func() storage.Storage) {
				db := testutil.SetupTestDB(t)
				t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
				// Both instances share the connection; closing is left to cleanup.
				return nopClose{storage.NewSQL(db)}, func() storage.Storage { return nopClose{storage.NewSQL(db)} }
			},
		},
	}

	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			st, reopen := backend.open(t)
			cfg := testConfig()
			cfg.StorageDriver = backend.name

			first := setupAppWith(t, cfg, st)
			habitID := first.createHabit(t, "Journal", 5)
			first.mustRequest(t, "POST", "/api/v1/habits/"+habitID+"/logs/2025-06-18/toggle", "", http.StatusOK)
			first.mustRequest(t, "POST", "/api/v1/tasks", `{"title":"Persist me"}`, http.StatusCreated)
			first.createTransaction(t, "income", "10.05", "2025-06-18", "")
			if err := st.Close(); err != nil {
				t.Fatalf("failed to close storage: %v", err)
			}

			second := setupAppWith(t, cfg, reopen())
			defer second.Storage.Close()

			habit := second.mustRequest(t, "GET", "/api/v1/habits/"+habitID, "", http.StatusOK)["habit"].(map[string]interface{})
			if habit["name"] != "Journal" {
				t.Errorf("expected Journal, got %v", habit["name"])
			}
			streak := second.mustRequest(t, "GET", "/api/v1/habits/"+habitID+"/streak", "", http.StatusOK)
			if streak["streak"].(float64) != 1 {
				t.Errorf("expected streak 1, got %v", streak["streak"])
			}
			tasks := second.mustRequest(t, "GET", "/api/v1/tasks", "", http.StatusOK)["tasks"].([]interface{})
			if len(tasks) != 1 {
				t.Errorf("expected 1 task, got %d", len(tasks))
			}
			totals := second.mustRequest(t, "GET", "/api/v1/finance/balance", "", http.StatusOK)["totals"].(map[string]interface{})
			if totals["balance"] != "10.05" {
				t.Errorf("expected balance 10.05, got %v", totals["balance"])
			}
		})
	}
}

func TestOpenStorage(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		st, err := OpenStorage(&config.Config{StorageDriver: config.StorageMemory})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := st.(*storage.Memory); !ok {
			t.Errorf("expected memory storage, got %T", st)
		}
	})

	t.Run("bolt", func(t *testing.T) {
		st, err := OpenStorage(&config.Config{
			StorageDriver: config.StorageBolt,
			BoltPath:      filepath.Join(t.TempDir(), "open.db"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer st.Close()
		if _, ok := st.(*storage.Bolt); !ok {
			t.Errorf("expected bolt storage, got %T", st)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		if _, err := OpenStorage(&config.Config{StorageDriver: "mongo"}); err == nil {
			t.Error("expected error for unknown driver")
		}
	})
}

// nopClose keeps a shared SQL connection open across simulated restarts.
type nopClose struct {
	storage.Storage
}

func (nopClose) Close() error { return nil }
