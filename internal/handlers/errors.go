package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CodeDataIntegrity tags responses caused by inconsistent stored data.
const CodeDataIntegrity = "DATA_INTEGRITY"

// respondError maps a service error to its HTTP status. fallback is the message
// used for unexpected failures so internals are not leaked to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrIntegrity):
		attrs := []any{slog.String("error", err.Error())}
		var integrityErr *apperrors.IntegrityError
		if errors.As(err, &integrityErr) {
			attrs = append(attrs,
				slog.String("partner_id", integrityErr.PartnerID),
				slog.String("transaction_id", integrityErr.TransactionID))
		}
		logger.Error("Data integrity violation", attrs...)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Stored data is inconsistent", Code: CodeDataIntegrity})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// bindError answers a request whose body or query failed binding.
func bindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}
