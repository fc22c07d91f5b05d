package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hoalu/hoalu-backend/internal/apperrors"
	"github.com/hoalu/hoalu-backend/internal/core/domain"
	portsrepo "github.com/hoalu/hoalu-backend/internal/core/ports/repositories"
	portssvc "github.com/hoalu/hoalu-backend/internal/core/ports/services"
)

// fxRateService resolves exchange rates through the three-tier
// same/direct/cross strategy on top of a RateProvider.
type fxRateService struct {
	BaseService
	provider portsrepo.RateProvider
}

// NewFxRateService creates a new exchange-rate resolution service.
func NewFxRateService(provider portsrepo.RateProvider) portssvc.FxRateSvcFacade {
	return &fxRateService{provider: provider}
}

var _ portssvc.FxRateSvcFacade = (*fxRateService)(nil)

// LookupRate resolves the best-known rate for a pair as of a date.
//
// Same-currency pairs synthesize a 1:1 rate without touching the provider, so
// self-conversion is always defined and costs no store I/O. Pairs with a USD
// side use the stored direct rate, normalized so the returned Rate always
// means from->to regardless of which direction the store holds. Non-USD pairs
// are bridged through USD by the provider. An unresolvable pair returns
// (nil, nil).
func (s *fxRateService) LookupRate(ctx context.Context, from, to string, at time.Time) (*domain.ExchangeRate, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if at.IsZero() {
		at = time.Now()
	}
	pair := domain.CurrencyPair{From: from, To: to}

	switch domain.StrategyFor(from, to) {
	case domain.StrategySame:
		return domain.IdentityRate(from, at), nil

	case domain.StrategyDirect:
		record, err := s.provider.FindDirect(ctx, pair, at)
		if err != nil || record == nil {
			return nil, err
		}
		if record.FromCurrency != from {
			// Stored in the opposite direction to the request; swap the legs
			// so the caller can always multiply by Rate.
			record = &domain.ExchangeRate{
				FromCurrency: from,
				ToCurrency:   to,
				Rate:         record.InverseRate,
				InverseRate:  record.Rate,
				ValidFrom:    record.ValidFrom,
				ValidTo:      record.ValidTo,
			}
		}
		return record, nil

	case domain.StrategyCross:
		return s.provider.FindCrossRate(ctx, pair, at)
	}

	return nil, fmt.Errorf("unhandled rate strategy for pair %s/%s", from, to)
}

// GetExchangeRate is the HTTP-facing lookup: it validates currency codes and
// maps an unresolvable pair to ErrNotFound.
func (s *fxRateService) GetExchangeRate(ctx context.Context, from, to string, at time.Time) (*domain.ExchangeRate, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if !isCurrencyCode(from) || !isCurrencyCode(to) {
		return nil, apperrors.NewValidationError("currency codes must be 3 letters")
	}

	rate, err := s.LookupRate(ctx, from, to, at)
	if err != nil {
		return nil, fmt.Errorf("failed to look up exchange rate: %w", err)
	}
	if rate == nil {
		return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + from + " to " + to)
	}
	return rate, nil
}

// isCurrencyCode reports whether code is a 3-letter uppercase ISO code.
func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
