package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestor-gastos/backend/internal/application/usecase/category"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/dto"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	createUseCase *category.CreateCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(createUseCase *category.CreateCategoryUseCase) *CategoryController {
	return &CategoryController{createUseCase: createUseCase}
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeCategoryNameRequired),
		})
		return
	}

	input := category.CreateCategoryInput{
		UserKey: userKey,
		Name:    req.Name,
		Type:    entity.CategoryType(req.Type),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}
