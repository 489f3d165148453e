package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/services"
)

func setupInvestmentRouter(handler *InvestmentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/investments", handler.AddInvestment)
	r.GET("/investments", handler.GetInvestments)
	r.GET("/investments/:id", handler.GetInvestment)
	r.PUT("/investments/:id", handler.UpdateInvestment)
	r.DELETE("/investments/:id", handler.DeleteInvestment)
	r.GET("/portfolio", handler.GetPortfolio)
	return r
}

func TestInvestmentHandler_AddInvestment(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotPrice, gotQty decimal.Decimal
		svc := &mockFinanceService{
			createInvestmentFn: func(ticker string, assetType models.AssetType, buyPrice, quantity decimal.Decimal, _, _ string) (*models.Investment, error) {
				gotPrice, gotQty = buyPrice, quantity
				return &models.Investment{ID: testID, AssetTicker: ticker, AssetType: assetType, BuyPrice: buyPrice, Quantity: quantity}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, audit))

		rec := doRequest(r, "POST", "/investments", `{"asset_ticker":"VOO","asset_type":"us-stock","buy_price":"450.20","quantity":"2"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPrice.String() != "450.2" || gotQty.String() != "2" {
			t.Errorf("unexpected decimals %s x %s", gotPrice, gotQty)
		}
		inv := parseJSON(t, rec)["investment"].(map[string]interface{})
		if inv["asset_ticker"] != "VOO" {
			t.Errorf("expected VOO, got %v", inv["asset_ticker"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_INVESTMENT" {
			t.Errorf("unexpected audit entries %+v", audit.entries)
		}
	})

	t.Run("returns 400 on missing quantity", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockFinanceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/investments", `{"asset_ticker":"VOO","buy_price":"450"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown asset type", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockFinanceService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/investments", `{"asset_ticker":"GLD","asset_type":"gold","buy_price":"1","quantity":"1"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestInvestmentHandler_GetInvestments(t *testing.T) {
	t.Run("filters by asset type", func(t *testing.T) {
		var got *models.AssetType
		svc := &mockFinanceService{
			getInvestmentsFn: func(assetType *models.AssetType) []models.Investment {
				got = assetType
				return []models.Investment{{ID: testID, AssetType: models.AssetTypeCrypto}}
			},
		}
		r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/investments?asset_type=crypto", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got == nil || *got != models.AssetTypeCrypto {
			t.Errorf("expected crypto filter, got %v", got)
		}
	})

	t.Run("returns 400 on unknown asset type", func(t *testing.T) {
		r := setupInvestmentRouter(NewInvestmentHandler(&mockFinanceService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/investments?asset_type=bonds", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestInvestmentHandler_GetInvestment(t *testing.T) {
	svc := &mockFinanceService{
		getInvestmentByIDFn: func(string) (*models.Investment, error) { return nil, apperrors.ErrInvestmentNotFound },
	}
	r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/investments/"+testID, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "INVESTMENT_NOT_FOUND")
}

func TestInvestmentHandler_UpdateInvestment(t *testing.T) {
	var got services.InvestmentUpdate
	svc := &mockFinanceService{
		updateInvestmentFn: func(id string, update services.InvestmentUpdate) (*models.Investment, error) {
			got = update
			return &models.Investment{ID: id}, nil
		},
	}
	r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "PUT", "/investments/"+testID, `{"quantity":"0.5","note":"trimmed"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Quantity == nil || got.Quantity.String() != "0.5" {
		t.Errorf("expected quantity 0.5, got %v", got.Quantity)
	}
	if got.Note == nil || *got.Note != "trimmed" || got.BuyPrice != nil {
		t.Errorf("unexpected update %+v", got)
	}
}

func TestInvestmentHandler_DeleteInvestment(t *testing.T) {
	svc := &mockFinanceService{
		deleteInvestmentFn: func(string) error { return apperrors.ErrInvestmentNotFound },
	}
	r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "DELETE", "/investments/"+testID, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestInvestmentHandler_GetPortfolio(t *testing.T) {
	svc := &mockFinanceService{
		getPortfolioFn: func() services.PortfolioSummary {
			return services.PortfolioSummary{
				TotalValue: decimal.NewFromInt(1060),
				ByType: map[models.AssetType]services.AssetSummary{
					models.AssetTypeUSStock: {Value: decimal.NewFromInt(1000), Count: 2},
					models.AssetTypeCrypto:  {Value: decimal.NewFromInt(60), Count: 1},
				},
			}
		},
	}
	r := setupInvestmentRouter(NewInvestmentHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/portfolio", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	portfolio := parseJSON(t, rec)["portfolio"].(map[string]interface{})
	if portfolio["total_value"] != "1060" {
		t.Errorf("expected total 1060, got %v", portfolio["total_value"])
	}
	byType := portfolio["by_type"].(map[string]interface{})
	if stock := byType["us-stock"].(map[string]interface{}); stock["count"].(float64) != 2 {
		t.Errorf("expected 2 stock lots, got %v", stock["count"])
	}
}
