package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoalu/hoalu-backend/internal/apperrors"
	"github.com/hoalu/hoalu-backend/internal/core/domain"
	portsrepo "github.com/hoalu/hoalu-backend/internal/core/ports/repositories"
)

// PgxExchangeRateRepository implements the RateProvider contract against the
// exchange_rates table. The table is populated by the external rate-ingestion
// job; this repository only reads it.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RateProvider = (*PgxExchangeRateRepository)(nil)

const rateColumns = `from_currency, to_currency, rate, inverse_rate, valid_from, valid_to`

// FindDirect retrieves the stored rate valid on the given day whose pair
// matches in either direction. Overlapping validity windows are resolved
// deterministically: the most recent valid_from wins.
func (r *PgxExchangeRateRepository) FindDirect(ctx context.Context, pair domain.CurrencyPair, on time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE valid_from <= $3 AND valid_to >= $3
		  AND ((from_currency = $1 AND to_currency = $2)
		    OR (from_currency = $2 AND to_currency = $1))
		ORDER BY valid_from DESC
		LIMIT 1;
	`

	rows, err := r.Pool.Query(ctx, query, pair.From, pair.To, dateOnly(on))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query direct exchange rate", err)
	}
	rate, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.ExchangeRate])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to scan direct exchange rate", err)
	}
	return &rate, nil
}

// FindCrossRate bridges a non-USD pair through the USD-anchored rates valid
// on the given day. Returns (nil, nil) when either leg is absent.
func (r *PgxExchangeRateRepository) FindCrossRate(ctx context.Context, pair domain.CurrencyPair, on time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE valid_from <= $2 AND valid_to >= $2
		  AND from_currency = $3
		  AND to_currency = ANY($1)
		ORDER BY valid_from DESC;
	`

	rows, err := r.Pool.Query(ctx, query, []string{pair.From, pair.To}, dateOnly(on), domain.BridgeCurrency)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query anchor exchange rates", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ExchangeRate])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan anchor exchange rates", err)
	}

	// Rows are ordered most-recent-first; keep the first record per leg.
	var usdToFrom, usdToTo *domain.ExchangeRate
	for i := range records {
		switch records[i].ToCurrency {
		case pair.From:
			if usdToFrom == nil {
				usdToFrom = &records[i]
			}
		case pair.To:
			if usdToTo == nil {
				usdToTo = &records[i]
			}
		}
	}

	return domain.CalculateCrossRate(pair, usdToFrom, usdToTo), nil
}

// dateOnly truncates a timestamp to its calendar day for comparison against
// the DATE-typed validity columns.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
