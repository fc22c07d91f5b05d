package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionResult is the outcome of converting a batch of expenses into a
// single target currency. Total is in rounded minor units of the target.
// HasMissingRates marks a best-effort partial total: expenses whose currency
// had no resolvable rate were skipped, not zero-filled.
type ConversionResult struct {
	Total           int64
	HasMissingRates bool
}

// Expense is a single spend record. Amount is stored in minor units of
// Currency (cents for USD, whole dong for VND), kept as a decimal so that
// conversion math never round-trips through binary floating point.
type Expense struct {
	ExpenseID   string          `json:"expenseID" db:"expense_id"`
	WalletID    string          `json:"walletID" db:"wallet_id"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Currency    string          `json:"currency" db:"currency"`
	Date        time.Time       `json:"date" db:"date"`
	AuditFields
}
