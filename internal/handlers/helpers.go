package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. A deadline
// exceeded on the request context maps to the store-timeout error. Anything
// else is logged and returned as a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.Wrap(apperrors.ErrStoreTimeout, err)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// parseDate parses a calendar date, accepting plain dates and RFC 3339
// timestamps (the time of day is not meaningful and is discarded).
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be YYYY-MM-DD or RFC 3339")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseTransactionFilter builds the shared filter set from the query string:
// startDate, endDate (inclusive), type, categoryId.
func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &t
	}
	if v := c.Query("type"); v != "" {
		if v != string(models.TransactionTypeIncome) && v != string(models.TransactionTypeExpense) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
		}
		t := models.TransactionType(v)
		filter.Type = &t
	}
	if v := c.Query("categoryId"); v != "" {
		filter.CategoryID = &v
	}

	return filter, nil
}
