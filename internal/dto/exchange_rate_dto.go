package dto

import (
	"time"

	"github.com/hoalu/hoalu-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GetExchangeRateRequest binds the query parameters of the rate lookup
// endpoint. Date is optional and defaults to today.
type GetExchangeRateRequest struct {
	From string `form:"from" binding:"required,currency"`
	To   string `form:"to" binding:"required,currency"`
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ExchangeRateResponse is the wire shape of a resolved rate. Rate always
// means "multiply 1 unit of from to get to", whichever direction the store
// held the record in.
type ExchangeRateResponse struct {
	Date        string          `json:"date"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Rate        decimal.Decimal `json:"rate"`
	InverseRate decimal.Decimal `json:"inverse_rate"`
}

// ToExchangeRateResponse converts a resolved domain rate, stamping the
// lookup date normalized to yyyy-MM-dd.
func ToExchangeRateResponse(rate *domain.ExchangeRate, on time.Time) ExchangeRateResponse {
	return ExchangeRateResponse{
		Date:        on.Format("2006-01-02"),
		From:        rate.FromCurrency,
		To:          rate.ToCurrency,
		Rate:        rate.Rate,
		InverseRate: rate.InverseRate,
	}
}
