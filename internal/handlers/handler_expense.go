package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoalu/hoalu-backend/internal/core/ports/services"
	"github.com/hoalu/hoalu-backend/internal/dto"
	"github.com/hoalu/hoalu-backend/internal/middleware"
)

// expenseHandler handles HTTP requests for expenses and wallets.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func registerExpenseRoutes(workspaces *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := &expenseHandler{expenseService: expenseService}

	workspaces.POST("/:workspaceID/expenses", h.createExpense)
	workspaces.GET("/:workspaceID/expenses", h.listExpenses)
	workspaces.GET("/:workspaceID/wallets", h.listWallets)
}

// createExpense godoc
// @Summary Record a new expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} map[string]dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Read-only member"
// @Failure 404 {object} map[string]string "Workspace or wallet not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind expense payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Expense recorded", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, gin.H{"data": dto.ToExpenseResponse(expense)})
}

// listExpenses godoc
// @Summary List recent expenses
// @Tags expenses
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param limit query int false "Maximum rows to return"
// @Success 200 {object} map[string][]dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), c.Param("workspaceID"), userID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToListExpenseResponse(expenses)})
}

// listWallets godoc
// @Summary List workspace wallets
// @Tags expenses
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Success 200 {object} map[string][]dto.WalletResponse
// @Failure 404 {object} map[string]string "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/wallets [get]
func (h *expenseHandler) listWallets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	wallets, err := h.expenseService.ListWallets(c.Request.Context(), c.Param("workspaceID"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToListWalletResponse(wallets)})
}
