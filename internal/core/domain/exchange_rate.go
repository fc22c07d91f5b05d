package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BridgeCurrency is the common anchor for cross-rate computation. Rates are
// ingested USD-anchored, so any non-USD pair is bridged through it.
const BridgeCurrency = "USD"

// ExchangeRate represents one bilateral rate authoritative over an inclusive
// date window. Rate converts 1 unit of FromCurrency into ToCurrency;
// InverseRate is the reciprocal conversion. Rows are written by the external
// rate-ingestion job and are read-only here.
type ExchangeRate struct {
	FromCurrency string          `json:"fromCurrency" db:"from_currency"`
	ToCurrency   string          `json:"toCurrency" db:"to_currency"`
	Rate         decimal.Decimal `json:"rate" db:"rate"`
	InverseRate  decimal.Decimal `json:"inverseRate" db:"inverse_rate"`
	ValidFrom    time.Time       `json:"validFrom" db:"valid_from"`
	ValidTo      time.Time       `json:"validTo" db:"valid_to"`
}

// CurrencyPair is an ordered (from, to) currency pair.
type CurrencyPair struct {
	From string
	To   string
}

// RateStrategy selects how a rate for a pair is resolved.
type RateStrategy int

const (
	// StrategySame resolves identical currencies to a synthetic 1:1 rate.
	StrategySame RateStrategy = iota
	// StrategyDirect resolves a stored rate where one side of the pair is USD.
	StrategyDirect
	// StrategyCross resolves two non-USD currencies by bridging through USD.
	StrategyCross
)

func (s RateStrategy) String() string {
	switch s {
	case StrategySame:
		return "same"
	case StrategyDirect:
		return "direct"
	case StrategyCross:
		return "cross"
	}
	return "unknown"
}

// StrategyFor decides the resolution strategy for a pair. Same-currency wins
// over everything else, so identity conversion never touches the store.
func StrategyFor(from, to string) RateStrategy {
	switch {
	case from == to:
		return StrategySame
	case from != BridgeCurrency && to != BridgeCurrency:
		return StrategyCross
	default:
		return StrategyDirect
	}
}

// IdentityRate builds the synthetic 1:1 rate for a currency on a given day.
func IdentityRate(currency string, on time.Time) *ExchangeRate {
	one := decimal.NewFromInt(1)
	day := on.Truncate(24 * time.Hour)
	return &ExchangeRate{
		FromCurrency: currency,
		ToCurrency:   currency,
		Rate:         one,
		InverseRate:  one,
		ValidFrom:    day,
		ValidTo:      day,
	}
}

// CalculateCrossRate bridges a non-USD pair through two USD-anchored rates.
// usdToFrom converts USD into pair.From, usdToTo converts USD into pair.To.
// Returns nil when either anchor is missing: a one-legged bridge cannot be
// computed and the caller treats the pair as unresolvable.
//
// usdToFrom.InverseRate equals From->USD, so chaining From->USD->To gives
// From->To.
func CalculateCrossRate(pair CurrencyPair, usdToFrom, usdToTo *ExchangeRate) *ExchangeRate {
	if usdToFrom == nil || usdToTo == nil {
		return nil
	}

	validFrom := usdToFrom.ValidFrom
	if usdToTo.ValidFrom.After(validFrom) {
		validFrom = usdToTo.ValidFrom
	}
	validTo := usdToFrom.ValidTo
	if usdToTo.ValidTo.Before(validTo) {
		validTo = usdToTo.ValidTo
	}

	return &ExchangeRate{
		FromCurrency: pair.From,
		ToCurrency:   pair.To,
		Rate:         usdToFrom.InverseRate.Mul(usdToTo.Rate),
		InverseRate:  usdToTo.InverseRate.Mul(usdToFrom.Rate),
		ValidFrom:    validFrom,
		ValidTo:      validTo,
	}
}
