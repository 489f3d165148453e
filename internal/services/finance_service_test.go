package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"lifeseed/internal/models"
	"lifeseed/internal/pagination"
	"lifeseed/internal/storage"
	"lifeseed/internal/testutil"
)

func newTestFinanceService(t *testing.T, st storage.Storage) FinanceServicer {
	t.Helper()
	svc, err := NewFinanceService(st, newTestClock())
	testutil.AssertNoError(t, err)
	return svc
}

func seedTransactions(t *testing.T, st storage.Storage, txns ...models.Transaction) {
	t.Helper()
	testutil.SeedDocument(t, st, models.FinanceDocumentKey, models.FinanceDocument{Transactions: txns})
}

func testDecimal(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("%s = %s, want %d", name, got, want)
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		st := testutil.SetupTestStorage(t)
		svc := newTestFinanceService(t, st)

		txn, err := svc.CreateTransaction(models.TransactionTypeExpense, decimal.RequireFromString("12.50"), "", " food ", "lunch")
		testutil.AssertNoError(t, err)

		if txn.Date != "2025-06-18" {
			t.Errorf("expected date to default to today, got %s", txn.Date)
		}
		if txn.Category != "food" {
			t.Errorf("expected trimmed category, got %q", txn.Category)
		}

		var doc models.FinanceDocument
		testutil.LoadDocument(t, st, models.FinanceDocumentKey, &doc)
		if len(doc.Transactions) != 1 || !doc.Transactions[0].Amount.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("expected exact amount to be persisted, got %+v", doc.Transactions)
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))

		_, err := svc.CreateTransaction("transfer", decimal.NewFromInt(1), "", "", "")
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))

		_, err := svc.CreateTransaction(models.TransactionTypeIncome, decimal.Zero, "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("income_minus_expense", func(t *testing.T) {
		st := testutil.SetupTestStorage(t)
		seedTransactions(t, st,
			testutil.NewTestTransaction(models.TransactionTypeIncome, 100, "2025-06-01"),
			testutil.NewTestTransaction(models.TransactionTypeExpense, 40, "2025-06-02"),
		)
		svc := newTestFinanceService(t, st)

		assertDecimal(t, "balance", svc.GetBalance(), 60)
	})

	t.Run("invest_reduces_balance", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))
		_, _ = svc.CreateTransaction(models.TransactionTypeIncome, decimal.NewFromInt(100), "2025-06-01", "", "")
		_, _ = svc.CreateTransaction(models.TransactionTypeExpense, decimal.NewFromInt(40), "2025-06-02", "", "")
		_, _ = svc.CreateTransaction(models.TransactionTypeInvest, decimal.NewFromInt(10), "2025-06-03", "", "")

		assertDecimal(t, "balance", svc.GetBalance(), 50)

		totals := svc.GetTotals()
		assertDecimal(t, "income", totals.Income, 100)
		assertDecimal(t, "expense", totals.Expense, 40)
		assertDecimal(t, "invest", totals.Invest, 10)
	})

	t.Run("empty", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))
		assertDecimal(t, "balance", svc.GetBalance(), 0)
	})
}

func TestGetMonthlySeries(t *testing.T) {
	t.Run("march_transaction_lands_in_march_only", func(t *testing.T) {
		st := testutil.SetupTestStorage(t)
		seedTransactions(t, st,
			testutil.NewTestTransaction(models.TransactionTypeIncome, 300, "2025-03-14"),
			testutil.NewTestTransaction(models.TransactionTypeExpense, 20, "2025-03-31"),
			testutil.NewTestTransaction(models.TransactionTypeIncome, 999, "2024-03-14"),
			testutil.NewTestTransaction(models.TransactionTypeInvest, 50, "2025-03-15"),
		)
		svc := newTestFinanceService(t, st)

		series := svc.GetMonthlySeries(2025)
		if len(series) != 12 {
			t.Fatalf("expected 12 buckets, got %d", len(series))
		}
		for i, p := range series {
			if p.Month != i+1 {
				t.Errorf("bucket %d has month %d", i, p.Month)
			}
			if p.Month == 3 {
				assertDecimal(t, "march income", p.Income, 300)
				assertDecimal(t, "march expense", p.Expense, 20)
				continue
			}
			assertDecimal(t, p.Label+" income", p.Income, 0)
			assertDecimal(t, p.Label+" expense", p.Expense, 0)
		}
		if series[0].Label != "Jan" || series[11].Label != "Dec" {
			t.Errorf("unexpected labels %s..%s", series[0].Label, series[11].Label)
		}
	})
}

func TestGetTransactions(t *testing.T) {
	t.Run("newest_first_with_pagination", func(t *testing.T) {
		st := testutil.SetupTestStorage(t)
		seedTransactions(t, st,
			testutil.NewTestTransaction(models.TransactionTypeIncome, 1, "2025-01-10"),
			testutil.NewTestTransaction(models.TransactionTypeIncome, 2, "2025-03-10"),
			testutil.NewTestTransaction(models.TransactionTypeIncome, 3, "2025-02-10"),
		)
		svc := newTestFinanceService(t, st)

		page := svc.GetTransactions(pagination.PageRequest{Page: 1, PageSize: 2}, TransactionFilter{})
		if page.TotalItems != 3 || page.TotalPages != 2 {
			t.Errorf("expected 3 items over 2 pages, got %d over %d", page.TotalItems, page.TotalPages)
		}
		if len(page.Data) != 2 || page.Data[0].Date != "2025-03-10" || page.Data[1].Date != "2025-02-10" {
			t.Errorf("unexpected first page %+v", page.Data)
		}
	})

	t.Run("filter_by_type_and_month", func(t *testing.T) {
		st := testutil.SetupTestStorage(t)
		seedTransactions(t, st,
			testutil.NewTestTransaction(models.TransactionTypeExpense, 1, "2025-03-10"),
			testutil.NewTestTransaction(models.TransactionTypeIncome, 2, "2025-03-11"),
			testutil.NewTestTransaction(models.TransactionTypeExpense, 3, "2025-04-10"),
		)
		svc := newTestFinanceService(t, st)

		txType := models.TransactionTypeExpense
		month, year := 3, 2025
		page := svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{Type: &txType, Month: &month, Year: &year})
		if len(page.Data) != 1 || page.Data[0].Date != "2025-03-10" {
			t.Errorf("unexpected result %+v", page.Data)
		}
	})
}

func TestGetRecentTransactions(t *testing.T) {
	svc := newTestFinanceService(t, testutil.SetupTestStorage(t))
	for i := 1; i <= 7; i++ {
		_, _ = svc.CreateTransaction(models.TransactionTypeIncome, decimal.NewFromInt(int64(i)), "", "", "")
	}

	recent := svc.GetRecentTransactions(5)
	if len(recent) != 5 {
		t.Fatalf("expected 5, got %d", len(recent))
	}
	assertDecimal(t, "most recent", recent[0].Amount, 7)
	assertDecimal(t, "oldest shown", recent[4].Amount, 3)
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	t.Run("update_amount", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))
		txn, _ := svc.CreateTransaction(models.TransactionTypeIncome, decimal.NewFromInt(10), "", "", "")

		amount := decimal.NewFromInt(25)
		updated, err := svc.UpdateTransaction(txn.ID, TransactionUpdate{Amount: &amount})
		testutil.AssertNoError(t, err)
		assertDecimal(t, "amount", updated.Amount, 25)
		assertDecimal(t, "balance", svc.GetBalance(), 25)
	})

	t.Run("delete_not_found", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))

		err := svc.DeleteTransaction("missing")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestGetExpenseBreakdown(t *testing.T) {
	svc := newTestFinanceService(t, testutil.SetupTestStorage(t))
	_, _ = svc.CreateTransaction(models.TransactionTypeExpense, decimal.NewFromInt(30), "", "food", "")
	_, _ = svc.CreateTransaction(models.TransactionTypeExpense, decimal.NewFromInt(15), "", "food", "")
	_, _ = svc.CreateTransaction(models.TransactionTypeExpense, decimal.NewFromInt(60), "", "", "")
	_, _ = svc.CreateTransaction(models.TransactionTypeExpense, decimal.NewFromInt(5), "", "transport", "")
	_, _ = svc.CreateTransaction(models.TransactionTypeIncome, decimal.NewFromInt(500), "", "salary", "")

	breakdown := svc.GetExpenseBreakdown()
	if len(breakdown) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(breakdown))
	}
	if breakdown[0].Category != uncategorized {
		t.Errorf("expected %s first, got %s", uncategorized, breakdown[0].Category)
	}
	if breakdown[1].Category != "food" {
		t.Errorf("expected food second, got %s", breakdown[1].Category)
	}
	assertDecimal(t, "food", breakdown[1].Amount, 45)
}

func TestInvestments(t *testing.T) {
	t.Run("create_and_portfolio", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))

		inv, err := svc.CreateInvestment(" aapl ", "", decimal.NewFromInt(150), decimal.NewFromInt(2), "2025-05-01", "")
		testutil.AssertNoError(t, err)
		if inv.AssetTicker != "AAPL" || inv.AssetType != models.AssetTypeUSStock {
			t.Errorf("unexpected investment %+v", inv)
		}
		_, _ = svc.CreateInvestment("AAPL", models.AssetTypeUSStock, decimal.NewFromInt(160), decimal.NewFromInt(1), "2025-06-01", "dca")
		_, _ = svc.CreateInvestment("BTC", models.AssetTypeCrypto, decimal.RequireFromString("60000"), decimal.RequireFromString("0.01"), "", "")

		portfolio := svc.GetPortfolio()
		assertDecimal(t, "total", portfolio.TotalValue, 1060)
		stocks := portfolio.ByType[models.AssetTypeUSStock]
		assertDecimal(t, "us-stock", stocks.Value, 460)
		if stocks.Count != 2 {
			t.Errorf("expected 2 stock lots, got %d", stocks.Count)
		}

		crypto := models.AssetTypeCrypto
		if got := svc.GetInvestments(&crypto); len(got) != 1 {
			t.Errorf("expected 1 crypto lot, got %d", len(got))
		}
	})

	t.Run("invalid_quantity", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))

		_, err := svc.CreateInvestment("AAPL", models.AssetTypeUSStock, decimal.NewFromInt(1), decimal.Zero, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("update_and_delete", func(t *testing.T) {
		svc := newTestFinanceService(t, testutil.SetupTestStorage(t))
		inv, _ := svc.CreateInvestment("EURUSD", models.AssetTypeForex, decimal.NewFromInt(1), decimal.NewFromInt(1000), "", "")

		note := "hedge"
		updated, err := svc.UpdateInvestment(inv.ID, InvestmentUpdate{Note: &note})
		testutil.AssertNoError(t, err)
		if updated.Note != "hedge" {
			t.Errorf("expected note hedge, got %q", updated.Note)
		}

		testutil.AssertNoError(t, svc.DeleteInvestment(inv.ID))
		_, err = svc.GetInvestmentByID(inv.ID)
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")
	})
}
