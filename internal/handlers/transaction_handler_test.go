package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/pagination"
	"lifeseed/internal/services"
)

// --- mock finance service ---

type mockFinanceService struct {
	createTransactionFn  func(txType models.TransactionType, amount decimal.Decimal, date, category, note string) (*models.Transaction, error)
	getTransactionsFn    func(page pagination.PageRequest, filter services.TransactionFilter) *pagination.PageResponse[models.Transaction]
	getTransactionByIDFn func(id string) (*models.Transaction, error)
	updateTransactionFn  func(id string, update services.TransactionUpdate) (*models.Transaction, error)
	deleteTransactionFn  func(id string) error
	createInvestmentFn   func(ticker string, assetType models.AssetType, buyPrice, quantity decimal.Decimal, datePurchased, note string) (*models.Investment, error)
	getInvestmentsFn     func(assetType *models.AssetType) []models.Investment
	getInvestmentByIDFn  func(id string) (*models.Investment, error)
	updateInvestmentFn   func(id string, update services.InvestmentUpdate) (*models.Investment, error)
	deleteInvestmentFn   func(id string) error
	getTotalsFn          func() services.FinanceTotals
	getMonthlySeriesFn   func(year int) []services.MonthlyPoint
	getBreakdownFn       func() []services.CategoryAmount
	getPortfolioFn       func() services.PortfolioSummary
}

func (m *mockFinanceService) Subscribe(func(services.Change)) func() { return func() {} }

func (m *mockFinanceService) CreateTransaction(txType models.TransactionType, amount decimal.Decimal, date, category, note string) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(txType, amount, date, category, note)
	}
	return &models.Transaction{Type: txType, Amount: amount}, nil
}

func (m *mockFinanceService) GetTransactions(page pagination.PageRequest, filter services.TransactionFilter) *pagination.PageResponse[models.Transaction] {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(page, filter)
	}
	result := pagination.Paginate([]models.Transaction{}, page)
	return &result
}

func (m *mockFinanceService) GetRecentTransactions(int) []models.Transaction {
	return []models.Transaction{}
}

func (m *mockFinanceService) GetTransactionByID(id string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(id)
	}
	return &models.Transaction{ID: id}, nil
}

func (m *mockFinanceService) UpdateTransaction(id string, update services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, update)
	}
	return &models.Transaction{ID: id}, nil
}

func (m *mockFinanceService) DeleteTransaction(id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

func (m *mockFinanceService) CreateInvestment(ticker string, assetType models.AssetType, buyPrice, quantity decimal.Decimal, datePurchased, note string) (*models.Investment, error) {
	if m.createInvestmentFn != nil {
		return m.createInvestmentFn(ticker, assetType, buyPrice, quantity, datePurchased, note)
	}
	return &models.Investment{AssetTicker: ticker, AssetType: assetType, BuyPrice: buyPrice, Quantity: quantity}, nil
}

func (m *mockFinanceService) GetInvestments(assetType *models.AssetType) []models.Investment {
	if m.getInvestmentsFn != nil {
		return m.getInvestmentsFn(assetType)
	}
	return []models.Investment{}
}

func (m *mockFinanceService) GetInvestmentByID(id string) (*models.Investment, error) {
	if m.getInvestmentByIDFn != nil {
		return m.getInvestmentByIDFn(id)
	}
	return &models.Investment{ID: id}, nil
}

func (m *mockFinanceService) UpdateInvestment(id string, update services.InvestmentUpdate) (*models.Investment, error) {
	if m.updateInvestmentFn != nil {
		return m.updateInvestmentFn(id, update)
	}
	return &models.Investment{ID: id}, nil
}

func (m *mockFinanceService) DeleteInvestment(id string) error {
	if m.deleteInvestmentFn != nil {
		return m.deleteInvestmentFn(id)
	}
	return nil
}

func (m *mockFinanceService) GetBalance() decimal.Decimal {
	return m.GetTotals().Balance
}

func (m *mockFinanceService) GetTotals() services.FinanceTotals {
	if m.getTotalsFn != nil {
		return m.getTotalsFn()
	}
	return services.FinanceTotals{}
}

func (m *mockFinanceService) GetMonthlySeries(year int) []services.MonthlyPoint {
	if m.getMonthlySeriesFn != nil {
		return m.getMonthlySeriesFn(year)
	}
	return []services.MonthlyPoint{}
}

func (m *mockFinanceService) GetExpenseBreakdown() []services.CategoryAmount {
	if m.getBreakdownFn != nil {
		return m.getBreakdownFn()
	}
	return []services.CategoryAmount{}
}

func (m *mockFinanceService) GetPortfolio() services.PortfolioSummary {
	if m.getPortfolioFn != nil {
		return m.getPortfolioFn()
	}
	return services.PortfolioSummary{ByType: map[models.AssetType]services.AssetSummary{}}
}

var _ services.FinanceServicer = (*mockFinanceService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransactionByID)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 with exact amount", func(t *testing.T) {
		var gotAmount decimal.Decimal
		svc := &mockFinanceService{
			createTransactionFn: func(txType models.TransactionType, amount decimal.Decimal, date, category, note string) (*models.Transaction, error) {
				gotAmount = amount
				return &models.Transaction{ID: testID, Type: txType, Amount: amount, Date: "2025-06-18", Category: category}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(svc, audit))

		rec := doRequest(r, "POST", "/transactions", `{"type":"expense","amount":"12.10","category":"food"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(decimal.RequireFromString("12.1")) {
			t.Errorf("expected 12.1, got %s", gotAmount)
		}
		tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
		if tx["amount"] != "12.1" {
			t.Errorf("expected amount string 12.1, got %v", tx["amount"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_TRANSACTION" {
			t.Errorf("unexpected audit entries %+v", audit.entries)
		}
	})

	t.Run("accepts numeric amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockFinanceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"income","amount":100}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockFinanceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"income"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockFinanceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"transfer","amount":"5"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("propagates service validation", func(t *testing.T) {
		svc := &mockFinanceService{
			createTransactionFn: func(models.TransactionType, decimal.Decimal, string, string, string) (*models.Transaction, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"expense","amount":"-3"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if msg := result["error"].(map[string]interface{})["message"]; msg != "Amount must be positive" {
			t.Errorf("unexpected message %v", msg)
		}
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes page and filter", func(t *testing.T) {
		var gotPage pagination.PageRequest
		var gotFilter services.TransactionFilter
		svc := &mockFinanceService{
			getTransactionsFn: func(page pagination.PageRequest, filter services.TransactionFilter) *pagination.PageResponse[models.Transaction] {
				gotPage, gotFilter = page, filter
				result := pagination.Paginate([]models.Transaction{{ID: testID}}, page)
				return &result
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions?page=1&page_size=10&type=expense&year=2025&month=3&category=food", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.PageSize != 10 {
			t.Errorf("expected page size 10, got %d", gotPage.PageSize)
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeExpense {
			t.Errorf("expected expense filter, got %v", gotFilter.Type)
		}
		if gotFilter.Year == nil || *gotFilter.Year != 2025 || gotFilter.Month == nil || *gotFilter.Month != 3 {
			t.Errorf("unexpected period filter %v %v", gotFilter.Year, gotFilter.Month)
		}
		if gotFilter.Category == nil || *gotFilter.Category != "food" {
			t.Errorf("unexpected category filter %v", gotFilter.Category)
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 1 {
			t.Errorf("expected 1 item, got %v", result["total_items"])
		}
	})

	tests := []struct {
		name  string
		query string
	}{
		{"returns 400 on unknown type", "type=transfer"},
		{"returns 400 on non-numeric year", "year=last"},
		{"returns 400 on month 0", "month=0"},
		{"returns 400 on oversized page", "page_size=500"},
		{"returns 400 on huge page number", "page=4611686018427387904&page_size=4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupTransactionRouter(NewTransactionHandler(&mockFinanceService{}, &mockAuditService{}))

			rec := doRequest(r, "GET", "/transactions?"+tt.query, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockFinanceService{
			getTransactionByIDFn: func(string) (*models.Transaction, error) { return nil, apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/"+testID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("passes amount only", func(t *testing.T) {
		var got services.TransactionUpdate
		svc := &mockFinanceService{
			updateTransactionFn: func(id string, update services.TransactionUpdate) (*models.Transaction, error) {
				got = update
				return &models.Transaction{ID: id, Amount: *update.Amount}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/transactions/"+testID, `{"amount":"40.25"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount == nil || got.Amount.String() != "40.25" {
			t.Errorf("expected amount 40.25, got %v", got.Amount)
		}
		if got.Type != nil || got.Date != nil {
			t.Errorf("expected untouched fields nil, got %+v", got)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	deleted := ""
	svc := &mockFinanceService{
		deleteTransactionFn: func(id string) error {
			deleted = id
			return nil
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "DELETE", "/transactions/"+testID, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != testID {
		t.Errorf("expected %s deleted, got %q", testID, deleted)
	}
}
