package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lifeseed/internal/clock"
	"lifeseed/internal/dates"
	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/models"
	"lifeseed/internal/pagination"
	"lifeseed/internal/storage"
	"lifeseed/internal/uuid"
)

// uncategorized labels expenses recorded without a category.
const uncategorized = "uncategorized"

// financeService handles transactions, investments and the derived
// balance and chart series.
type financeService struct {
	store *documentStore[models.FinanceDocument]
	clock clock.Clock
}

// NewFinanceService loads the finance document and returns a FinanceServicer.
func NewFinanceService(st storage.Storage, clk clock.Clock) (FinanceServicer, error) {
	store, err := newDocumentStore[models.FinanceDocument](st, StoreFinance, models.FinanceDocumentKey)
	if err != nil {
		return nil, err
	}
	return &financeService{store: store, clock: clk}, nil
}

func (s *financeService) Subscribe(fn func(Change)) func() {
	return s.store.subscribe(fn)
}

// CreateTransaction records a transaction. Date defaults to today.
func (s *financeService) CreateTransaction(
	txType models.TransactionType,
	amount decimal.Decimal,
	date, category, note string,
) (*models.Transaction, error) {
	if !validTransactionType(txType) {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	if date == "" {
		date = dates.Today(s.clock.Now())
	} else if !dates.IsValid(date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be YYYY-MM-DD")
	}

	txn := models.Transaction{
		ID:        uuid.New(),
		Type:      txType,
		Amount:    amount,
		Date:      date,
		Category:  strings.TrimSpace(category),
		Note:      note,
		CreatedAt: s.clock.Now(),
	}

	err := s.store.update("create_transaction", txn.ID, func(doc *models.FinanceDocument) error {
		doc.Transactions = append(doc.Transactions, txn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetTransactions returns a page of transactions matching the filter,
// newest date first.
func (s *financeService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) *pagination.PageResponse[models.Transaction] {
	var matched []models.Transaction
	s.store.view(func(doc *models.FinanceDocument) {
		for _, t := range doc.Transactions {
			if matchesTransaction(t, filter) {
				matched = append(matched, t)
			}
		}
	})

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date > matched[j].Date
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	result := pagination.Paginate(matched, page)
	return &result
}

func matchesTransaction(t models.Transaction, filter TransactionFilter) bool {
	if filter.Type != nil && t.Type != *filter.Type {
		return false
	}
	if filter.Category != nil && !strings.EqualFold(t.Category, *filter.Category) {
		return false
	}
	if filter.Year != nil || filter.Month != nil {
		day, err := dates.Parse(t.Date)
		if err != nil {
			return false
		}
		if filter.Year != nil && day.Year() != *filter.Year {
			return false
		}
		if filter.Month != nil && int(day.Month()) != *filter.Month {
			return false
		}
	}
	return true
}

// GetRecentTransactions returns the last n recorded transactions, most
// recently recorded first.
func (s *financeService) GetRecentTransactions(n int) []models.Transaction {
	recent := []models.Transaction{}
	s.store.view(func(doc *models.FinanceDocument) {
		for i := len(doc.Transactions) - 1; i >= 0 && len(recent) < n; i-- {
			recent = append(recent, doc.Transactions[i])
		}
	})
	return recent
}

// GetTransactionByID returns a transaction by ID.
func (s *financeService) GetTransactionByID(id string) (*models.Transaction, error) {
	var (
		txn   models.Transaction
		found bool
	)
	s.store.view(func(doc *models.FinanceDocument) {
		if i := findTransaction(doc, id); i >= 0 {
			txn, found = doc.Transactions[i], true
		}
	})
	if !found {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &txn, nil
}

// UpdateTransaction edits a transaction in place.
func (s *financeService) UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error) {
	if update.Type != nil && !validTransactionType(*update.Type) {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if update.Amount != nil && !update.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	if update.Date != nil && !dates.IsValid(*update.Date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be YYYY-MM-DD")
	}

	var updated models.Transaction
	err := s.store.update("update_transaction", id, func(doc *models.FinanceDocument) error {
		i := findTransaction(doc, id)
		if i < 0 {
			return apperrors.ErrTransactionNotFound
		}
		t := &doc.Transactions[i]
		if update.Type != nil {
			t.Type = *update.Type
		}
		if update.Amount != nil {
			t.Amount = *update.Amount
		}
		if update.Date != nil {
			t.Date = *update.Date
		}
		if update.Category != nil {
			t.Category = strings.TrimSpace(*update.Category)
		}
		if update.Note != nil {
			t.Note = *update.Note
		}
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction removes a transaction.
func (s *financeService) DeleteTransaction(id string) error {
	return s.store.update("delete_transaction", id, func(doc *models.FinanceDocument) error {
		i := findTransaction(doc, id)
		if i < 0 {
			return apperrors.ErrTransactionNotFound
		}
		doc.Transactions = append(doc.Transactions[:i], doc.Transactions[i+1:]...)
		return nil
	})
}

// CreateInvestment records a purchased lot. Date defaults to today.
func (s *financeService) CreateInvestment(
	ticker string,
	assetType models.AssetType,
	buyPrice, quantity decimal.Decimal,
	datePurchased, note string,
) (*models.Investment, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	if assetType == "" {
		assetType = models.AssetTypeUSStock
	}
	if !validAssetType(assetType) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported asset type")
	}
	if !buyPrice.IsPositive() || !quantity.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Buy price and quantity must be greater than zero")
	}
	if datePurchased == "" {
		datePurchased = dates.Today(s.clock.Now())
	} else if !dates.IsValid(datePurchased) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be YYYY-MM-DD")
	}

	inv := models.Investment{
		ID:            uuid.New(),
		AssetTicker:   ticker,
		AssetType:     assetType,
		BuyPrice:      buyPrice,
		Quantity:      quantity,
		DatePurchased: datePurchased,
		Note:          note,
	}

	err := s.store.update("create_investment", inv.ID, func(doc *models.FinanceDocument) error {
		doc.Investments = append(doc.Investments, inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInvestments returns investment lots, narrowed to an asset type when given.
func (s *financeService) GetInvestments(assetType *models.AssetType) []models.Investment {
	investments := []models.Investment{}
	s.store.view(func(doc *models.FinanceDocument) {
		for _, inv := range doc.Investments {
			if assetType == nil || inv.AssetType == *assetType {
				investments = append(investments, inv)
			}
		}
	})
	return investments
}

// GetInvestmentByID returns an investment by ID.
func (s *financeService) GetInvestmentByID(id string) (*models.Investment, error) {
	var (
		inv   models.Investment
		found bool
	)
	s.store.view(func(doc *models.FinanceDocument) {
		if i := findInvestment(doc, id); i >= 0 {
			inv, found = doc.Investments[i], true
		}
	})
	if !found {
		return nil, apperrors.ErrInvestmentNotFound
	}
	return &inv, nil
}

// UpdateInvestment edits an investment in place.
func (s *financeService) UpdateInvestment(id string, update InvestmentUpdate) (*models.Investment, error) {
	if update.AssetTicker != nil && strings.TrimSpace(*update.AssetTicker) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	if update.AssetType != nil && !validAssetType(*update.AssetType) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unsupported asset type")
	}
	if (update.BuyPrice != nil && !update.BuyPrice.IsPositive()) || (update.Quantity != nil && !update.Quantity.IsPositive()) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Buy price and quantity must be greater than zero")
	}
	if update.DatePurchased != nil && !dates.IsValid(*update.DatePurchased) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Date must be YYYY-MM-DD")
	}

	var updated models.Investment
	err := s.store.update("update_investment", id, func(doc *models.FinanceDocument) error {
		i := findInvestment(doc, id)
		if i < 0 {
			return apperrors.ErrInvestmentNotFound
		}
		inv := &doc.Investments[i]
		if update.AssetTicker != nil {
			inv.AssetTicker = strings.ToUpper(strings.TrimSpace(*update.AssetTicker))
		}
		if update.AssetType != nil {
			inv.AssetType = *update.AssetType
		}
		if update.BuyPrice != nil {
			inv.BuyPrice = *update.BuyPrice
		}
		if update.Quantity != nil {
			inv.Quantity = *update.Quantity
		}
		if update.DatePurchased != nil {
			inv.DatePurchased = *update.DatePurchased
		}
		if update.Note != nil {
			inv.Note = *update.Note
		}
		updated = *inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteInvestment removes an investment lot.
func (s *financeService) DeleteInvestment(id string) error {
	return s.store.update("delete_investment", id, func(doc *models.FinanceDocument) error {
		i := findInvestment(doc, id)
		if i < 0 {
			return apperrors.ErrInvestmentNotFound
		}
		doc.Investments = append(doc.Investments[:i], doc.Investments[i+1:]...)
		return nil
	})
}

// GetBalance is income minus expenses minus invested money, over all time.
func (s *financeService) GetBalance() decimal.Decimal {
	return s.GetTotals().Balance
}

// GetTotals sums every transaction by type.
func (s *financeService) GetTotals() FinanceTotals {
	totals := FinanceTotals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Invest:  decimal.Zero,
	}
	s.store.view(func(doc *models.FinanceDocument) {
		for _, t := range doc.Transactions {
			switch t.Type {
			case models.TransactionTypeIncome:
				totals.Income = totals.Income.Add(t.Amount)
			case models.TransactionTypeExpense:
				totals.Expense = totals.Expense.Add(t.Amount)
			case models.TransactionTypeInvest:
				totals.Invest = totals.Invest.Add(t.Amount)
			}
		}
	})
	totals.Balance = totals.Income.Sub(totals.Expense).Sub(totals.Invest)
	return totals
}

// GetMonthlySeries buckets income and expense by calendar month of year.
// Invest transactions are not charted.
func (s *financeService) GetMonthlySeries(year int) []MonthlyPoint {
	series := make([]MonthlyPoint, 12)
	for i := range series {
		month := time.Month(i + 1)
		series[i] = MonthlyPoint{
			Month:   int(month),
			Label:   month.String()[:3],
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	s.store.view(func(doc *models.FinanceDocument) {
		for _, t := range doc.Transactions {
			day, err := dates.Parse(t.Date)
			if err != nil || day.Year() != year {
				continue
			}
			p := &series[day.Month()-1]
			switch t.Type {
			case models.TransactionTypeIncome:
				p.Income = p.Income.Add(t.Amount)
			case models.TransactionTypeExpense:
				p.Expense = p.Expense.Add(t.Amount)
			}
		}
	})
	return series
}

// GetExpenseBreakdown sums expenses per category, largest first.
func (s *financeService) GetExpenseBreakdown() []CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	s.store.view(func(doc *models.FinanceDocument) {
		for _, t := range doc.Transactions {
			if t.Type != models.TransactionTypeExpense {
				continue
			}
			category := t.Category
			if category == "" {
				category = uncategorized
			}
			sums[category] = sums[category].Add(t.Amount)
		}
	})

	breakdown := make([]CategoryAmount, 0, len(sums))
	for category, amount := range sums {
		breakdown = append(breakdown, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if c := breakdown[i].Amount.Cmp(breakdown[j].Amount); c != 0 {
			return c > 0
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// GetPortfolio totals investment lots at purchase value, per asset type.
func (s *financeService) GetPortfolio() PortfolioSummary {
	summary := PortfolioSummary{
		TotalValue: decimal.Zero,
		ByType:     make(map[models.AssetType]AssetSummary),
	}
	s.store.view(func(doc *models.FinanceDocument) {
		for _, inv := range doc.Investments {
			value := inv.Value()
			summary.TotalValue = summary.TotalValue.Add(value)
			ts := summary.ByType[inv.AssetType]
			ts.Value = ts.Value.Add(value)
			ts.Count++
			summary.ByType[inv.AssetType] = ts
		}
	})
	return summary
}

func validTransactionType(t models.TransactionType) bool {
	switch t {
	case models.TransactionTypeIncome, models.TransactionTypeExpense, models.TransactionTypeInvest:
		return true
	}
	return false
}

func validAssetType(t models.AssetType) bool {
	switch t {
	case models.AssetTypeUSStock, models.AssetTypeForex, models.AssetTypeCrypto, models.AssetTypeOther:
		return true
	}
	return false
}

func findTransaction(doc *models.FinanceDocument, id string) int {
	for i := range doc.Transactions {
		if doc.Transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func findInvestment(doc *models.FinanceDocument, id string) int {
	for i := range doc.Investments {
		if doc.Investments[i].ID == id {
			return i
		}
	}
	return -1
}
