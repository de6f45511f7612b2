package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. The composite unique index on
// (user_id, name) makes the default-category bootstrap idempotent under
// concurrent callers: a racing insert hits the constraint instead of
// seeding a second set.
type Category struct {
	Base
	UserID string       `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"userId"`
	Name   string       `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"name"`
	Type   CategoryType `gorm:"not null" json:"type"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
