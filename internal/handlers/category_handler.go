package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name   string              `json:"name" binding:"required"`
	Type   models.CategoryType `json:"type" binding:"required,category_type"`
	UserID string              `json:"userId" binding:"required"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new transaction category for a user
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} map[string]interface{} "Invalid input"
// @Failure     404 {object} map[string]interface{} "User not found"
// @Failure     409 {object} map[string]interface{} "Duplicate category name"
// @Router      /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.UserID, req.Name, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetUserCategories handles the retrieval of all categories for a user
// @Summary     List categories
// @Description List all categories for a user, ordered by name ascending
// @Tags        categories
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {array} models.Category "List of categories"
// @Router      /api/categories/{userId} [get]
func (h *CategoryHandler) GetUserCategories(c *gin.Context) {
	categories, err := h.categoryService.GetUserCategories(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CreateDefaultCategories handles the idempotent default-category bootstrap
// @Summary     Bootstrap default categories
// @Description Seed the canonical default category set for a user. Safe to call repeatedly: existing categories are never duplicated.
// @Tags        categories
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {array} models.Category "The user's full category set, name-ascending"
// @Failure     404 {object} map[string]interface{} "User not found"
// @Router      /api/categories/default/{userId} [post]
func (h *CategoryHandler) CreateDefaultCategories(c *gin.Context) {
	categories, err := h.categoryService.EnsureDefaultCategories(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a category owned by the calling user. Categories referenced by transactions cannot be deleted.
// @Tags        categories
// @Produce     json
// @Param       id path string true "Category ID"
// @Param       userId query string true "Owning user ID"
// @Success     200 {object} map[string]string "Deletion message"
// @Failure     404 {object} map[string]interface{} "Category not found"
// @Failure     409 {object} map[string]interface{} "Category in use"
// @Router      /api/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "userId query parameter is required"))
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
