package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestor-gastos/backend/internal/application/usecase/session"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/dto"
)

// SessionController handles session endpoints.
type SessionController struct {
	openUseCase *session.OpenSessionUseCase
}

// NewSessionController creates a new session controller instance.
func NewSessionController(openUseCase *session.OpenSessionUseCase) *SessionController {
	return &SessionController{openUseCase: openUseCase}
}

// Create handles POST /session requests.
func (c *SessionController) Create(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "A valid email is required",
			Code:  string(domainerror.ErrCodeInvalidEmail),
		})
		return
	}

	output, err := c.openUseCase.Execute(ctx.Request.Context(), session.OpenSessionInput{
		Email: req.Email,
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidEmail) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "A valid email is required",
				Code:  string(domainerror.ErrCodeInvalidEmail),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusCreated, dto.SessionResponse{
		Token: output.Token,
		Email: output.UserKey,
	})
}
