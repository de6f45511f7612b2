package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	UpsertUser(ctx context.Context, id, email, name string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, userID, name string, categoryType models.CategoryType) (*models.Category, error)
	GetUserCategories(ctx context.Context, userID string) ([]models.Category, error)
	EnsureDefaultCategories(ctx context.Context, userID string) ([]models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters shared by transaction
// listing and summary aggregation. The date range is inclusive on both ends.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *models.TransactionType
	CategoryID *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, userID, categoryID string, transactionType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, amount decimal.Decimal, description string, date time.Time, categoryID string) (*models.Transaction, error)
	GetUserTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// Summary contains aggregated income/expense totals for a user. It is never
// persisted; it is a pure function of the user's transaction set.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// SummaryServicer defines the contract for income/expense aggregation.
type SummaryServicer interface {
	Summarize(ctx context.Context, userID string, filter TransactionFilter) (*Summary, error)
}
