package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction creates a new transaction. The referenced category must
// belong to the user and its type must match the transaction type; a
// mismatch would corrupt the aggregation totals and the UI sign.
func (s *transactionService) CreateTransaction(
	ctx context.Context,
	userID string,
	categoryID string,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category ID is required")
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	category, err := s.getOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if models.TransactionType(category.Type) != transactionType {
		return nil, apperrors.ErrCategoryTypeMismatch
	}

	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(transaction).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction.Category = *category
	return transaction, nil
}

// UpdateTransaction updates amount, description, date, and category of a
// transaction owned by the user. The type is re-derived from the (possibly
// new) category so that transaction.type == category.type holds after every
// mutation.
func (s *transactionService) UpdateTransaction(
	ctx context.Context,
	userID string,
	transactionID string,
	amount decimal.Decimal,
	description string,
	date time.Time,
	categoryID string,
) (*models.Transaction, error) {
	if amount.IsNegative() {
		return nil, apperrors.ErrNegativeAmount
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	transaction, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if categoryID == "" {
		categoryID = transaction.CategoryID
	}
	category, err := s.getOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(transaction).Updates(map[string]interface{}{
			"amount":      amount,
			"description": description,
			"date":        date,
			"category_id": categoryID,
			"type":        models.TransactionType(category.Type),
		}).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transaction.Amount = amount
	transaction.Description = description
	transaction.Date = date
	transaction.CategoryID = categoryID
	transaction.Type = models.TransactionType(category.Type)
	transaction.Category = *category
	return transaction, nil
}

// GetUserTransactions retrieves a user's transactions ordered by date
// descending, with the owning category embedded.
func (s *transactionService) GetUserTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ?", userID)
	q = ApplyTransactionFilters(q, filter)

	var transactions []models.Transaction
	if err := q.Preload("Category").
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// DeleteTransaction deletes a transaction owned by the user. A missing or
// foreign record reads as not found, never a silent no-op.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	transaction, err := s.getOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// getOwnedTransaction fetches a transaction scoped to its owner. Ownership
// mismatch is reported as not found to avoid leaking record existence.
func (s *transactionService) getOwnedTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// getOwnedCategory fetches a category scoped to its owner.
func (s *transactionService) getOwnedCategory(ctx context.Context, userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// ApplyTransactionFilters narrows a transaction query by the optional
// filter set shared between listing and aggregation. The date range is
// inclusive on both ends.
func ApplyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}
