package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lifeseed/internal/clock"
	"lifeseed/internal/config"
	"lifeseed/internal/logger"
	"lifeseed/internal/storage"
)

// testNow is a Wednesday.
var testNow = time.Date(2025, time.June, 18, 10, 30, 0, 0, time.UTC)

// testApp holds the full application stack for flow tests.
type testApp struct {
	Router  *gin.Engine
	Deps    *Dependencies
	Storage storage.Storage
	Clock   *clock.MockClock
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "")
}

func testConfig() *config.Config {
	return &config.Config{
		Env:              "test",
		CORSOrigin:       "*",
		Location:         time.UTC,
		StorageDriver:    config.StorageMemory,
		JWTSecret:        "test-secret",
		JWTExpirationDur: time.Hour,
	}
}

// setupApp builds the router over an empty in-memory storage with auth off.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWith(t, testConfig(), storage.NewMemory())
}

func setupAppWith(t *testing.T, cfg *config.Config, st storage.Storage) *testApp {
	t.Helper()

	clk := &clock.MockClock{FixedNow: testNow}
	router, deps, err := NewRouter(cfg, st, clk)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	return &testApp{Router: router, Deps: deps, Storage: st, Clock: clk}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// mustRequest is request with a status check.
func (app *testApp) mustRequest(t *testing.T, method, path, body string, want int) map[string]interface{} {
	t.Helper()
	rec := app.request(method, path, body, "")
	if rec.Code != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(result map[string]interface{}) string {
	errObj, _ := result["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

// createHabit creates a habit and returns its ID.
func (app *testApp) createHabit(t *testing.T, name string, target int) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"target_days_per_week":%d}`, name, target)
	habit := app.mustRequest(t, "POST", "/api/v1/habits", body, http.StatusCreated)["habit"].(map[string]interface{})
	return habit["id"].(string)
}

// createTransaction records a transaction and returns its ID.
func (app *testApp) createTransaction(t *testing.T, txType, amount, date, category string) string {
	t.Helper()
	body := fmt.Sprintf(`{"type":%q,"amount":%q,"date":%q,"category":%q}`, txType, amount, date, category)
	tx := app.mustRequest(t, "POST", "/api/v1/finance/transactions", body, http.StatusCreated)["transaction"].(map[string]interface{})
	return tx["id"].(string)
}
