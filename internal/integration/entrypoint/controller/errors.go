// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/dto"
)

// handleLedgerError maps ledger errors to HTTP responses.
func handleLedgerError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(statusForLedgerError(ledgerErr.Code), dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusForLedgerError maps ledger error codes to HTTP status codes.
func statusForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound,
		domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAccountNameRequired,
		domainerror.ErrCodeCategoryNameRequired,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeTransferMissingDestination,
		domainerror.ErrCodeTransferSameAccount,
		domainerror.ErrCodeTransferWithCategory,
		domainerror.ErrCodeMissingLedgerFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryTypeMismatch,
		domainerror.ErrCodeAccountAlreadyExists,
		domainerror.ErrCodeDuplicateTransactionID:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleSnapshotError maps import/export errors to HTTP responses.
func handleSnapshotError(ctx *gin.Context, err error) {
	var snapErr *domainerror.SnapshotError
	if errors.As(err, &snapErr) {
		status := http.StatusBadRequest
		if snapErr.Code == domainerror.ErrCodeImportNotConfirmed {
			status = http.StatusPreconditionRequired
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: snapErr.Message,
			Code:  string(snapErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// unauthenticated writes the standard response for a missing user key.
func unauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
