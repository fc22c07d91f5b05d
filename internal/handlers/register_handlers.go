package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hoalu/hoalu-backend/internal/apperrors"
	portssvc "github.com/hoalu/hoalu-backend/internal/core/ports/services"
	"github.com/hoalu/hoalu-backend/internal/middleware"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// RegisterValidators installs custom binding validators. Call once at startup
// before any request binding happens.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// currency: a 3-letter uppercase ISO 4217 code.
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return currencyCodePattern.MatchString(fl.Field().String())
		})
	}
}

// RegisterAPIRoutes wires all authenticated v1 routes.
func RegisterAPIRoutes(v1 *gin.RouterGroup, fxService portssvc.FxRateSvcFacade, summaryService portssvc.SummarySvcFacade, expenseService portssvc.ExpenseSvcFacade) {
	registerExchangeRateRoutes(v1, fxService)
	registerWorkspaceRoutes(v1, summaryService, expenseService)
}

// requireUserID pulls the authenticated user ID from the request context,
// aborting with 401 when the auth middleware did not set one.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// respondServiceError maps service-layer errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
