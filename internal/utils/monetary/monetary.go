// Package monetary converts between minor-unit and major-unit amounts using
// per-currency decimal-place rules.
package monetary

import "github.com/shopspring/decimal"

// defaultExponent is the ISO 4217 decimal-place count used for currencies not
// listed in exponents.
const defaultExponent = 2

// exponents lists the currencies whose minor unit is not 1/100 of the major
// unit. Zero-decimal and three-decimal currencies per ISO 4217.
var exponents = map[string]int32{
	"BIF": 0,
	"CLP": 0,
	"DJF": 0,
	"GNF": 0,
	"ISK": 0,
	"JPY": 0,
	"KMF": 0,
	"KRW": 0,
	"PYG": 0,
	"RWF": 0,
	"UGX": 0,
	"VND": 0,
	"VUV": 0,
	"XAF": 0,
	"XOF": 0,
	"XPF": 0,

	"BHD": 3,
	"IQD": 3,
	"JOD": 3,
	"KWD": 3,
	"LYD": 3,
	"OMR": 3,
	"TND": 3,
}

// Exponent returns the number of minor-unit decimal places for a currency.
func Exponent(currency string) int32 {
	if exp, ok := exponents[currency]; ok {
		return exp
	}
	return defaultExponent
}

// FromMinorUnits converts a minor-unit amount into the major-unit value.
// Example: 1550 USD minor units -> 15.50.
func FromMinorUnits(minor decimal.Decimal, currency string) decimal.Decimal {
	return minor.Shift(-Exponent(currency))
}

// ToMinorUnits converts a major-unit value into minor units of the currency.
// The result keeps fractional minor units; callers round once at the end of
// their accumulation so per-expense rounding error does not compound.
func ToMinorUnits(major decimal.Decimal, currency string) decimal.Decimal {
	return major.Shift(Exponent(currency))
}
