package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridianlend/ledger/internal/apperrors"
	"github.com/meridianlend/ledger/internal/core/services"
)

// respondError maps service errors to HTTP responses. Unrecognised errors become
// an opaque 500 so internals never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var balanceErr *services.BalanceError
	if errors.As(err, &balanceErr) {
		logger.Warn("Unbalanced entry rejected",
			slog.String("debit_total", balanceErr.DebitTotal.String()),
			slog.String("credit_total", balanceErr.CreditTotal.String()),
			slog.String("delta", balanceErr.Delta.String()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       balanceErr.Error(),
			"debitTotal":  balanceErr.DebitTotal,
			"creditTotal": balanceErr.CreditTotal,
			"delta":       balanceErr.Delta,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSelfApproval),
		errors.Is(err, services.ErrSystemAccountRestricted),
		errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden operation", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrParentNotFound),
		errors.Is(err, services.ErrCurrencyNotFound),
		errors.Is(err, services.ErrPeriodNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateCode),
		errors.Is(err, services.ErrFiscalYearExists),
		errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnresolvedEntries),
		errors.Is(err, services.ErrPeriodLocked),
		errors.Is(err, services.ErrPeriodNotPostable),
		errors.Is(err, services.ErrInvalidPeriodTransition),
		errors.Is(err, services.ErrInvalidEntryTransition),
		errors.Is(err, services.ErrAlreadyReversed),
		errors.Is(err, services.ErrNotPosted),
		errors.Is(err, services.ErrHasPostedTransactions),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("State conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoOpenPeriod),
		errors.Is(err, services.ErrAccountUnusable),
		errors.Is(err, services.ErrRetainedEarningsMissing),
		errors.Is(err, services.ErrMaxDepthExceeded):
		logger.Warn("Posting precondition failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
