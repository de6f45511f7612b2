package services

import (
	"context"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestSummarize(t *testing.T) {
	ctx := context.Background()

	t.Run("zero_transactions_yield_zero_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.Summarize(ctx, user.ID, TransactionFilter{})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "0", summary.TotalIncome)
		testutil.AssertDecimalEqual(t, "0", summary.TotalExpenses)
		testutil.AssertDecimalEqual(t, "0", summary.Balance)
	})

	t.Run("balance_is_income_minus_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)
		incomeCat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
		expenseCat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, incomeCat.ID, models.TransactionTypeIncome, "100")
		testutil.CreateTestTransaction(t, db, user.ID, expenseCat.ID, models.TransactionTypeExpense, "40")

		summary, err := svc.Summarize(ctx, user.ID, TransactionFilter{})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "100", summary.TotalIncome)
		testutil.AssertDecimalEqual(t, "40", summary.TotalExpenses)
		testutil.AssertDecimalEqual(t, "60", summary.Balance)
	})

	t.Run("decimal_amounts_sum_without_drift", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)
		expenseCat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		// 0.10 summed a hundred times must be exactly 10.00.
		for i := 0; i < 100; i++ {
			testutil.CreateTestTransaction(t, db, user.ID, expenseCat.ID, models.TransactionTypeExpense, "0.10")
		}

		summary, err := svc.Summarize(ctx, user.ID, TransactionFilter{})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "10.00", summary.TotalExpenses)
	})

	t.Run("unknown_user_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db, NewUserService(db))

		_, err := svc.Summarize(ctx, "auth0|nobody", TransactionFilter{})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("respects_date_range_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)
		incomeCat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		testutil.CreateTestTransactionOn(t, db, user.ID, incomeCat.ID, models.TransactionTypeIncome, "100", date("2024-06-15"))
		testutil.CreateTestTransactionOn(t, db, user.ID, incomeCat.ID, models.TransactionTypeIncome, "200", date("2024-07-15"))

		start := date("2024-07-01")
		end := date("2024-07-31")
		summary, err := svc.Summarize(ctx, user.ID, TransactionFilter{StartDate: &start, EndDate: &end})
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "200", summary.TotalIncome)
		testutil.AssertDecimalEqual(t, "200", summary.Balance)
	})

	t.Run("excludes_other_users_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db, NewUserService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeIncome)
		cat2 := testutil.CreateTestCategory(t, db, user2.ID, models.CategoryTypeIncome)

		testutil.CreateTestTransaction(t, db, user1.ID, cat1.ID, models.TransactionTypeIncome, "100")
		testutil.CreateTestTransaction(t, db, user2.ID, cat2.ID, models.TransactionTypeIncome, "999")

		summary, err := svc.Summarize(ctx, user1.ID, TransactionFilter{})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "100", summary.TotalIncome)
	})
}
