package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gestor-gastos/backend/internal/application/usecase/dashboard"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/dto"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	summaryUseCase *dashboard.GetSummaryUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(summaryUseCase *dashboard.GetSummaryUseCase) *DashboardController {
	return &DashboardController{summaryUseCase: summaryUseCase}
}

// Summary handles GET /dashboard/summary requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	input := dashboard.GetSummaryInput{UserKey: userKey}

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

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute summary",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(output))
}
