package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/application/usecase/transaction"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/dto"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	recordUseCase *transaction.RecordTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	recordUseCase *transaction.RecordTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		recordUseCase: recordUseCase,
		listUseCase:   listUseCase,
	}
}

// Record handles POST /transactions requests.
func (c *TransactionController) Record(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.RecordTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingLedgerFields),
		})
		return
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return
	}

	input := transaction.RecordTransactionInput{
		UserKey:     userKey,
		Type:        entity.TransactionType(req.Type),
		Amount:      decimal.NewFromFloat(req.Amount),
		Date:        date,
		Description: req.Description,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		ToAccountID: req.ToAccountID,
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	input := transaction.ListTransactionsInput{UserKey: userKey}

	if monthStr := ctx.Query("month"); monthStr != "" {
		month, err := time.Parse("2006-01", monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month filter. Use YYYY-MM",
				Code:  string(domainerror.ErrCodeInvalidTransactionDate),
			})
			return
		}
		input.Year = month.Year()
		input.Month = month.Month()
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve transactions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}
