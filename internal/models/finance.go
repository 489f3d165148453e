package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeInvest  TransactionType = "invest"
)

// Transaction is a single money movement. Amounts are always positive; the
// type decides the sign when computing a balance.
type Transaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	Date      string          `json:"date"`
	Category  string          `json:"category"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

// AssetType tags an investment holding.
type AssetType string

const (
	AssetTypeUSStock AssetType = "us-stock"
	AssetTypeForex   AssetType = "forex"
	AssetTypeCrypto  AssetType = "crypto"
	AssetTypeOther   AssetType = "other"
)

// Investment is a purchased lot. Repeated entries for one ticker are how
// dollar-cost averaging shows up; nothing is computed from them.
type Investment struct {
	ID            string          `json:"id"`
	AssetTicker   string          `json:"asset_ticker"`
	AssetType     AssetType       `json:"asset_type"`
	BuyPrice      decimal.Decimal `json:"buy_price" swaggertype:"string"`
	Quantity      decimal.Decimal `json:"quantity" swaggertype:"string"`
	DatePurchased string          `json:"date_purchased"`
	Note          string          `json:"note"`
}

// Value is the cost of the lot. There is no live pricing.
func (i Investment) Value() decimal.Decimal {
	return i.BuyPrice.Mul(i.Quantity)
}

// FinanceDocument is the persisted state of the finance store.
type FinanceDocument struct {
	Transactions []Transaction `json:"transactions"`
	Investments  []Investment  `json:"investments"`
}
