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
)

// Transaction represents a financial transaction. Amount is a non-negative
// decimal; the sign is implied by Type. Invariant: Type always equals the
// referenced category's type.
type Transaction struct {
	Base
	UserID      string          `gorm:"not null;index" json:"userId"`
	CategoryID  string          `gorm:"type:uuid;not null" json:"categoryId"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
