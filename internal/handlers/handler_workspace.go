package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoalu/hoalu-backend/internal/core/ports/services"
	"github.com/hoalu/hoalu-backend/internal/dto"
	"github.com/hoalu/hoalu-backend/internal/middleware"
)

// workspaceHandler handles HTTP requests for workspace summaries.
type workspaceHandler struct {
	summaryService portssvc.SummarySvcFacade
}

func registerWorkspaceRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade, expenseService portssvc.ExpenseSvcFacade) {
	h := &workspaceHandler{summaryService: summaryService}

	workspaces := rg.Group("/workspaces")
	{
		workspaces.GET("/summaries", h.getAllWorkspaceSummaries)
		workspaces.GET("/:workspaceID/summary", h.getWorkspaceSummary)
	}
	registerExpenseRoutes(workspaces, expenseService)
}

// getWorkspaceSummary godoc
// @Summary Get a workspace summary
// @Description Returns the dashboard summary for one workspace, denominated in its primary currency
// @Tags workspaces
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Success 200 {object} map[string]dto.WorkspaceSummaryResponse
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Failure 404 {object} map[string]string "Workspace not found or caller is not a member"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/summary [get]
func (h *workspaceHandler) getWorkspaceSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workspaceID := c.Param("workspaceID")

	summary, err := h.summaryService.GetWorkspaceSummary(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToWorkspaceSummaryResponse(summary)})
}

// getAllWorkspaceSummaries godoc
// @Summary Get summaries for all of the caller's workspaces
// @Tags workspaces
// @Produce json
// @Success 200 {object} map[string][]dto.WorkspaceSummaryResponse
// @Failure 401 {object} map[string]string "Unauthenticated"
// @Security BearerAuth
// @Router /workspaces/summaries [get]
func (h *workspaceHandler) getAllWorkspaceSummaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summaries, err := h.summaryService.GetAllWorkspaceSummaries(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Workspace summaries listed", slog.Int("count", len(summaries)))
	c.JSON(http.StatusOK, gin.H{"data": dto.ToListWorkspaceSummaryResponse(summaries)})
}
