package repositories

import (
	"context"
	"time"

	"github.com/hoalu/hoalu-backend/internal/core/domain"
)

// RateProvider is the store-side contract consumed by the rate resolver.
// Both lookups return (nil, nil) when no rate is resolvable for the pair and
// date; errors are reserved for store failures. The resolver turns the nil
// into either a 404 or a skipped conversion, never an exception.
type RateProvider interface {
	// FindDirect retrieves the stored rate valid on the given day whose pair
	// matches (pair.From, pair.To) in either direction. When several validity
	// windows overlap the most recent valid_from wins.
	FindDirect(ctx context.Context, pair domain.CurrencyPair, on time.Time) (*domain.ExchangeRate, error)

	// FindCrossRate computes the USD-bridged rate for a non-USD pair from the
	// USD-anchored legs valid on the given day.
	FindCrossRate(ctx context.Context, pair domain.CurrencyPair, on time.Time) (*domain.ExchangeRate, error)
}
