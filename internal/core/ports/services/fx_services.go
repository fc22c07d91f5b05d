package services

import (
	"context"
	"time"

	"github.com/hoalu/hoalu-backend/internal/core/domain"
)

// FxRateSvcFacade exposes exchange-rate resolution to other services and to
// the HTTP layer.
type FxRateSvcFacade interface {
	// LookupRate resolves the best-known rate for a pair as of a date, using
	// the same/direct/cross strategy. A zero `at` means now. Returns
	// (nil, nil) when no rate is resolvable; the caller decides whether that
	// is a 404 or a skipped conversion.
	LookupRate(ctx context.Context, from, to string, at time.Time) (*domain.ExchangeRate, error)

	// GetExchangeRate is the HTTP-facing wrapper around LookupRate: it
	// validates currency codes (ErrValidation) and maps an unresolvable pair
	// to ErrNotFound.
	GetExchangeRate(ctx context.Context, from, to string, at time.Time) (*domain.ExchangeRate, error)
}
