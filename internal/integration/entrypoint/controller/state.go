package controller

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/application/usecase/statefile"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/dto"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/middleware"
)

// maxImportDocumentSize caps uploaded import documents.
const maxImportDocumentSize = 8 << 20 // 8 MiB

// StateController handles whole-state endpoints: read, export, import and
// the live change feed.
type StateController struct {
	store         adapter.StateStore
	exportUseCase *statefile.ExportStateUseCase
	importUseCase *statefile.ImportStateUseCase
}

// NewStateController creates a new state controller instance.
func NewStateController(
	store adapter.StateStore,
	exportUseCase *statefile.ExportStateUseCase,
	importUseCase *statefile.ImportStateUseCase,
) *StateController {
	return &StateController{
		store:         store,
		exportUseCase: exportUseCase,
		importUseCase: importUseCase,
	}
}

// Get handles GET /state requests.
func (c *StateController) Get(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	state, err := c.store.GetState(ctx.Request.Context(), userKey)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to read state",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStateResponse(state))
}

// Export handles GET /state/export requests. The response is the whole state
// as a downloadable JSON document.
func (c *StateController) Export(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), statefile.ExportStateInput{
		UserKey: userKey,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to export state",
		})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, "application/json", output.Document)
}

// Import handles POST /state/import requests. The body is a previously
// exported document; confirm=true acknowledges that all current data is
// replaced.
func (c *StateController) Import(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	document, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportDocumentSize))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read request body",
		})
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), statefile.ImportStateInput{
		UserKey:   userKey,
		Document:  document,
		Confirmed: ctx.Query("confirm") == "true",
	})
	if err != nil {
		handleSnapshotError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStateResponse(output.State))
}

// Events handles GET /state/events requests. It streams the current state
// and every committed transition as server-sent events until the client
// disconnects.
func (c *StateController) Events(ctx *gin.Context) {
	userKey, ok := middleware.GetUserKeyFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	updates, cancel, err := c.store.Subscribe(ctx.Request.Context(), userKey)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to subscribe to state changes",
		})
		return
	}
	defer cancel()

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	// Send the current snapshot first so late subscribers start consistent.
	current, err := c.store.GetState(ctx.Request.Context(), userKey)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to read state",
		})
		return
	}
	ctx.SSEvent("state", dto.ToStateResponse(current))
	ctx.Writer.Flush()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case state, open := <-updates:
			if !open {
				return false
			}
			ctx.SSEvent("state", dto.ToStateResponse(state))
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
