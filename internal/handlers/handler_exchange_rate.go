package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hoalu/hoalu-backend/internal/core/ports/services"
	"github.com/hoalu/hoalu-backend/internal/dto"
	"github.com/hoalu/hoalu-backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	fxService portssvc.FxRateSvcFacade
}

func registerExchangeRateRoutes(rg *gin.RouterGroup, fxService portssvc.FxRateSvcFacade) {
	h := &exchangeRateHandler{fxService: fxService}
	rg.GET("/exchange-rates", h.getExchangeRate)
}

// getExchangeRate godoc
// @Summary Resolve an exchange rate
// @Description Resolves the rate between two currencies for a date, directly or bridged through USD
// @Tags exchange rates
// @Produce json
// @Param from query string true "From currency code (3 letters)"
// @Param to query string true "To currency code (3 letters)"
// @Param date query string false "Lookup date (yyyy-MM-dd), defaults to today"
// @Success 200 {object} map[string]dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 404 {object} map[string]string "No rate resolvable for the pair"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GetExchangeRateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	at := time.Now()
	if req.Date != "" {
		// Format already validated by binding.
		at, _ = time.Parse("2006-01-02", req.Date)
	}

	rate, err := h.fxService.GetExchangeRate(c.Request.Context(), req.From, req.To, at)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Exchange rate resolved",
		slog.String("from", rate.FromCurrency),
		slog.String("to", rate.ToCurrency))
	c.JSON(http.StatusOK, gin.H{"data": dto.ToExchangeRateResponse(rate, at)})
}
