package adaptor

import (
	"errors"
	"io"

	"storefront/pkg/apperr"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// Process exit codes.
const (
	ExitOK                = 0
	ExitInternal          = 1
	ExitValidation        = 2
	ExitConflict          = 3
	ExitNotFound          = 4
	ExitInsufficientStock = 5
	ExitUnauthorized      = 6
	ExitForbidden         = 7
)

// HandleError renders err to w and returns the matching exit code.
func HandleError(w io.Writer, format string, err error, log *zap.Logger) int {
	if err == nil {
		return ExitOK
	}
	if format != utils.FormatJSON {
		format = utils.FormatText
	}

	var validationErr *apperr.ValidationError
	var stockErr *apperr.InsufficientStockError

	switch {
	case errors.As(err, &validationErr):
		log.Warn("Validation failed", zap.Error(err))
		writeError(w, format, "Validation failed", validationErr.Fields, log)
		return ExitValidation

	case errors.As(err, &stockErr):
		log.Warn("Insufficient stock",
			zap.Int64("product_id", stockErr.ProductID),
			zap.Int("requested", stockErr.Requested),
			zap.Int("available", stockErr.Available))
		writeError(w, format, stockErr.Error(), nil, log)
		return ExitInsufficientStock

	case errors.Is(err, apperr.ErrConflict):
		log.Warn("Conflict", zap.Error(err))
		writeError(w, format, err.Error(), nil, log)
		return ExitConflict

	case errors.Is(err, apperr.ErrNotFound):
		log.Warn("Not found", zap.Error(err))
		writeError(w, format, err.Error(), nil, log)
		return ExitNotFound

	case errors.Is(err, apperr.ErrInvalidCredentials):
		log.Warn("Unauthorized", zap.Error(err))
		writeError(w, format, err.Error(), nil, log)
		return ExitUnauthorized

	case errors.Is(err, apperr.ErrForbidden):
		log.Warn("Forbidden", zap.Error(err))
		writeError(w, format, err.Error(), nil, log)
		return ExitForbidden

	case errors.Is(err, apperr.ErrStorage):
		log.Error("Storage failure", zap.Error(err))
		writeError(w, format, "Storage error", nil, log)
		return ExitInternal

	default:
		log.Error("Command error", zap.Error(err))
		writeError(w, format, err.Error(), nil, log)
		return ExitInternal
	}
}

func writeError(w io.Writer, format, message string, fields map[string]string, log *zap.Logger) {
	if err := utils.ResponseError(w, format, message, fields); err != nil {
		log.Error("Failed to write error response", zap.Error(err))
	}
}
