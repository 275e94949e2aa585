package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_pos/internal/catalog"
	"api_pos/internal/sales"
	"api_pos/internal/storage"
)

// statusFor maps a domain error to an HTTP status and a stable error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, sales.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, sales.ErrCustomerNotFound):
		return http.StatusNotFound, "customer_not_found"
	case errors.Is(err, sales.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, storage.ErrDuplicateID):
		return http.StatusConflict, "duplicate_id"
	case errors.Is(err, sales.ErrConcurrentModification):
		return http.StatusConflict, "concurrent_modification"
	case errors.Is(err, sales.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	case errors.Is(err, sales.ErrCreditLimitExceeded):
		return http.StatusConflict, "credit_limit_exceeded"
	case errors.Is(err, catalog.ErrStockWouldBeNegative):
		return http.StatusConflict, "stock_would_be_negative"
	case errors.Is(err, sales.ErrEmptySale):
		return http.StatusBadRequest, "empty_sale"
	case errors.Is(err, sales.ErrCustomerRequired):
		return http.StatusBadRequest, "customer_required"
	case errors.Is(err, sales.ErrInvalidLineItem):
		return http.StatusBadRequest, "invalid_line_item"
	case errors.Is(err, sales.ErrInvalidPaymentMethod):
		return http.StatusBadRequest, "invalid_payment_method"
	case errors.Is(err, sales.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid_status"
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, storage.ErrEmptyID):
		return http.StatusBadRequest, "invalid_input"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeError(ctx *gin.Context, logger *zap.Logger, msg string, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(status, gin.H{"error": "internal error", "code": code})
		return
	}
	logger.Warn(msg, zap.String("path", ctx.FullPath()), zap.Int("status", status), zap.Error(err))
	ctx.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func badRequest(ctx *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("failed to bind JSON request", zap.String("path", ctx.FullPath()), zap.Error(err))
	ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "code": "invalid_payload"})
}
