package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// UpsertUser creates the user on first login and refreshes email/name on
// subsequent logins, keyed by the identity provider's ID. The conflict path
// is intentional: a concurrent first login is treated as success.
func (s *userService) UpsertUser(ctx context.Context, id, email, name string) (*models.User, error) {
	if id == "" || email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user id and email are required")
	}

	user := &models.User{
		ID:    id,
		Email: strings.ToLower(email),
		Name:  name,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Read back so the caller sees timestamps as stored.
	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
