package services

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// summaryService computes income/expense aggregations. Summation happens in
// SQL over the decimal column; no float arithmetic is involved at any point.
type summaryService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB, userService UserServicer) SummaryServicer {
	return &summaryService{db: db, userService: userService}
}

// Summarize computes total income, total expenses, and balance for a user
// over the optional filter set. An unknown user is an error; a known user
// with no matching transactions yields zero totals.
func (s *summaryService) Summarize(ctx context.Context, userID string, filter TransactionFilter) (*Summary, error) {
	if _, err := s.userService.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	totalIncome, err := s.sumByType(ctx, userID, models.TransactionTypeIncome, filter)
	if err != nil {
		return nil, err
	}

	totalExpenses, err := s.sumByType(ctx, userID, models.TransactionTypeExpense, filter)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		Balance:       totalIncome.Sub(totalExpenses),
	}, nil
}

// sumByType sums transaction amounts of one type. COALESCE turns the
// empty-sum case into zero rather than NULL.
func (s *summaryService) sumByType(ctx context.Context, userID string, transactionType models.TransactionType, filter TransactionFilter) (decimal.Decimal, error) {
	q := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND type = ?", userID, transactionType)
	q = ApplyTransactionFilters(q, filter)

	var row struct {
		Total decimal.Decimal
	}
	if err := q.Scan(&row).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row.Total, nil
}
