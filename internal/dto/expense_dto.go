package dto

import (
	"time"

	"github.com/hoalu/hoalu-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the structure for recording a new expense.
// Amount is in minor units of Currency.
type CreateExpenseRequest struct {
	WalletID    string          `json:"walletID" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required,currency"`
	Date        time.Time       `json:"date" binding:"required"`
}

// ExpenseResponse defines the structure for API responses containing expense
// details.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	WalletID    string          `json:"walletID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		WalletID:    e.WalletID,
		Description: e.Description,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToListExpenseResponse converts a slice of domain expenses.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// WalletResponse defines the structure for API responses containing wallet
// details.
type WalletResponse struct {
	WalletID string `json:"walletID"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	IsActive bool   `json:"isActive"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID: w.WalletID,
		Name:     w.Name,
		Currency: w.Currency,
		IsActive: w.IsActive,
	}
}

// ToListWalletResponse converts a slice of domain wallets.
func ToListWalletResponse(wallets []domain.Wallet) []WalletResponse {
	responses := make([]WalletResponse, len(wallets))
	for i := range wallets {
		responses[i] = ToWalletResponse(&wallets[i])
	}
	return responses
}
