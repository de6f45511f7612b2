package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// defaultCategories is the canonical seed set created for every new user.
// This is seed data, not configuration.
var defaultCategories = []struct {
	Name string
	Type models.CategoryType
}{
	{"Food & Dining", models.CategoryTypeExpense},
	{"Rent", models.CategoryTypeExpense},
	{"Utilities", models.CategoryTypeExpense},
	{"Transportation", models.CategoryTypeExpense},
	{"Entertainment", models.CategoryTypeExpense},
	{"Shopping", models.CategoryTypeExpense},
	{"Healthcare", models.CategoryTypeExpense},
	{"Education", models.CategoryTypeExpense},
	{"Other Expense", models.CategoryTypeExpense},
	{"Salary", models.CategoryTypeIncome},
	{"Freelance", models.CategoryTypeIncome},
	{"Investment", models.CategoryTypeIncome},
	{"Gift", models.CategoryTypeIncome},
	{"Other Income", models.CategoryTypeIncome},
}

// categoryService handles category-related business logic.
type categoryService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, userService UserServicer) CategoryServicer {
	return &categoryService{db: db, userService: userService}
}

// CreateCategory creates a new category for a user
func (s *categoryService) CreateCategory(ctx context.Context, userID, name string, categoryType models.CategoryType) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if categoryType != models.CategoryTypeIncome && categoryType != models.CategoryTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income or expense")
	}

	if _, err := s.userService.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}

	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves all categories for a user ordered by name ascending.
func (s *categoryService) GetUserCategories(ctx context.Context, userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// EnsureDefaultCategories seeds the canonical category set for a user,
// exactly once. The bulk insert rides on the unique (user_id, name) index:
// rows that already exist are skipped via ON CONFLICT DO NOTHING, so a
// repeat call, or a concurrent racer, converges on the same 14-category
// set instead of appending duplicates. Returns the user's full category
// set ordered by name ascending.
func (s *categoryService) EnsureDefaultCategories(ctx context.Context, userID string) ([]models.Category, error) {
	// Precondition: the user must exist before seeding.
	if _, err := s.userService.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	seed := make([]models.Category, 0, len(defaultCategories))
	for _, dc := range defaultCategories {
		seed = append(seed, models.Category{
			UserID: userID,
			Name:   dc.Name,
			Type:   dc.Type,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetUserCategories(ctx, userID)
}

// DeleteCategory deletes a category owned by the user. A category that is
// referenced by existing transactions is protected: financial history must
// not lose its labels, so the delete is rejected rather than cascaded.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	var category models.Category
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var refCount int64
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&refCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.WithContext(ctx).Delete(&category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
