package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	summaryService     services.SummaryServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, summaryService services.SummaryServicer) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		summaryService:     summaryService,
	}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Amount accepts both JSON numbers and numeric strings.
type CreateTransactionRequest struct {
	UserID      string                 `json:"userId" binding:"required"`
	CategoryID  string                 `json:"categoryId" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      *decimal.Decimal       `json:"amount" binding:"required"`
	Description string                 `json:"description" binding:"max=500"`
	Date        string                 `json:"date" binding:"required"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. The type is not settable: it is re-derived from the category.
type UpdateTransactionRequest struct {
	UserID      string           `json:"userId" binding:"required"`
	CategoryID  string           `json:"categoryId"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"max=500"`
	Date        string           `json:"date" binding:"required"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new income or expense transaction. The category must belong to the user and its type must match.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created, category embedded"
// @Failure     400 {object} map[string]interface{} "Invalid input or category type mismatch"
// @Failure     404 {object} map[string]interface{} "Category not found"
// @Router      /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		c.Request.Context(),
		req.UserID,
		req.CategoryID,
		req.Type,
		*req.Amount,
		req.Description,
		date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction handles updating a transaction
// @Summary     Update a transaction
// @Description Update amount, description, date, and category of a transaction owned by the user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Updated transaction details"
// @Success     200 {object} models.Transaction "Updated transaction, category embedded"
// @Failure     400 {object} map[string]interface{} "Invalid input"
// @Failure     404 {object} map[string]interface{} "Transaction not found"
// @Router      /api/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(
		c.Request.Context(),
		req.UserID,
		c.Param("id"),
		*req.Amount,
		req.Description,
		date,
		req.CategoryID,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete a transaction
// @Description Delete a transaction owned by the calling user
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Param       userId query string true "Owning user ID"
// @Success     200 {object} map[string]string "Deletion message"
// @Failure     404 {object} map[string]interface{} "Transaction not found"
// @Router      /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "userId query parameter is required"))
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// GetTransactionRoutes dispatches GET /api/transactions/{userId} and
// GET /api/transactions/summary/{userId}. Gin's router cannot register a
// static "summary" segment next to the ":userId" wildcard, so both paths
// share one catch-all route and split on the tail here.
func (h *TransactionHandler) GetTransactionRoutes(c *gin.Context) {
	tail := strings.Trim(c.Param("path"), "/")
	parts := strings.Split(tail, "/")

	switch {
	case len(parts) == 2 && parts[0] == "summary":
		h.getSummary(c, parts[1])
	case len(parts) == 1 && parts[0] != "":
		h.getUserTransactions(c, parts[0])
	default:
		respondWithError(c, apperrors.ErrNotFound)
	}
}

// getUserTransactions lists a user's transactions, date-descending, with
// the owning category embedded
// @Summary     List transactions
// @Description List transactions for a user, filterable by startDate, endDate, type, categoryId
// @Tags        transactions
// @Produce     json
// @Param       userId path string true "User ID"
// @Param       startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       type query string false "Transaction type (income/expense)"
// @Param       categoryId query string false "Category ID"
// @Success     200 {array} models.Transaction "Transactions, newest first"
// @Router      /api/transactions/{userId} [get]
func (h *TransactionHandler) getUserTransactions(c *gin.Context, userID string) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetUserTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// getSummary aggregates income and expenses into a balance
// @Summary     Transaction summary
// @Description Total income, total expenses, and balance for a user over an optional filter set
// @Tags        transactions
// @Produce     json
// @Param       userId path string true "User ID"
// @Param       startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       type query string false "Transaction type (income/expense)"
// @Param       categoryId query string false "Category ID"
// @Success     200 {object} services.Summary "Aggregated totals"
// @Failure     404 {object} map[string]interface{} "User not found"
// @Router      /api/transactions/summary/{userId} [get]
func (h *TransactionHandler) getSummary(c *gin.Context, userID string) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
