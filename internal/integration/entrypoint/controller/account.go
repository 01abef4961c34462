package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/application/usecase/account"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/dto"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/middleware"
)

// AccountController handles account endpoints.
type AccountController struct {
	createUseCase *account.CreateAccountUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(createUseCase *account.CreateAccountUseCase) *AccountController {
	return &AccountController{createUseCase: createUseCase}
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeAccountNameRequired),
		})
		return
	}

	input := account.CreateAccountInput{
		UserKey: userKey,
		Name:    req.Name,
		Balance: decimal.NewFromFloat(req.Balance),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}
