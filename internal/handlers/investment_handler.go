package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/services"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	financeService services.FinanceServicer
	auditService   services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(financeService services.FinanceServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{financeService: financeService, auditService: auditService}
}

// AddInvestmentRequest represents the request payload for adding an investment.
type AddInvestmentRequest struct {
	AssetTicker   string           `json:"asset_ticker" binding:"required,min=1,max=20"`
	AssetType     models.AssetType `json:"asset_type" binding:"omitempty,asset_type"`
	BuyPrice      *decimal.Decimal `json:"buy_price" binding:"required" swaggertype:"string" example:"182.40"`
	Quantity      *decimal.Decimal `json:"quantity" binding:"required" swaggertype:"string" example:"3"`
	DatePurchased string           `json:"date_purchased" binding:"omitempty,calendar_date"`
	Note          string           `json:"note" binding:"max=500"`
}

// UpdateInvestmentRequest represents the request payload for updating an investment.
type UpdateInvestmentRequest struct {
	AssetTicker   *string           `json:"asset_ticker" binding:"omitempty,min=1,max=20"`
	AssetType     *models.AssetType `json:"asset_type" binding:"omitempty,asset_type"`
	BuyPrice      *decimal.Decimal  `json:"buy_price" swaggertype:"string" example:"182.40"`
	Quantity      *decimal.Decimal  `json:"quantity" swaggertype:"string" example:"3"`
	DatePurchased *string           `json:"date_purchased" binding:"omitempty,calendar_date"`
	Note          *string           `json:"note" binding:"omitempty,max=500"`
}

// AddInvestment handles adding a new investment lot.
// @Summary     Add investment
// @Description Record a purchased lot. Repeated buys of one ticker are separate lots.
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /finance/investments [post]
func (h *InvestmentHandler) AddInvestment(c *gin.Context) {
	var req AddInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.financeService.CreateInvestment(
		req.AssetTicker, req.AssetType, *req.BuyPrice, *req.Quantity, req.DatePurchased, req.Note,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{"asset_ticker": investment.AssetTicker, "quantity": investment.Quantity.String()})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles listing investment lots.
// @Summary     Get investments
// @Description List investment lots, optionally of one asset type
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       asset_type query string false "us-stock, forex, crypto or other"
// @Success     200 {array}  models.Investment "Investments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /finance/investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	var assetType *models.AssetType
	if v := c.Query("asset_type"); v != "" {
		t := models.AssetType(v)
		switch t {
		case models.AssetTypeUSStock, models.AssetTypeForex, models.AssetTypeCrypto, models.AssetTypeOther:
			assetType = &t
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid asset_type"))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"investments": h.financeService.GetInvestments(assetType)})
}

// GetInvestment handles retrieving a specific investment lot.
// @Summary     Get investment by ID
// @Description Get a specific investment lot by ID
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment "Investment details"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /finance/investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.financeService.GetInvestmentByID(investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// UpdateInvestment handles updating an investment lot.
// @Summary     Update investment
// @Description Update fields of an investment lot
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Updated investment"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     400 {object} ErrorResponse "Invalid input or investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /finance/investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.financeService.UpdateInvestment(investmentID, services.InvestmentUpdate{
		AssetTicker:   req.AssetTicker,
		AssetType:     req.AssetType,
		BuyPrice:      req.BuyPrice,
		Quantity:      req.Quantity,
		DatePurchased: req.DatePurchased,
		Note:          req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment handles deleting an investment lot.
// @Summary     Delete investment
// @Description Delete an investment lot. Requires confirm=true.
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string true "Investment ID"
// @Param       confirm query bool   true "Must be true"
// @Success     200 {object} MessageResponse "Investment deleted"
// @Failure     400 {object} ErrorResponse "Invalid investment ID or missing confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /finance/investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.financeService.DeleteInvestment(investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_INVESTMENT", "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}

// GetPortfolio handles retrieving the portfolio summary.
// @Summary     Get portfolio summary
// @Description Total purchase value of all lots, split by asset type
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PortfolioSummary "Portfolio summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /finance/portfolio [get]
func (h *InvestmentHandler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"portfolio": h.financeService.GetPortfolio()})
}
