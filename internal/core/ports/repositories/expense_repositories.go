package repositories

import (
	"context"
	"time"

	"github.com/hoalu/hoalu-backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense data.
type ExpenseReader interface {
	// ListExpensesBetween returns the workspace's expenses with dates inside
	// the inclusive [from, to] window.
	ListExpensesBetween(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.Expense, error)

	// ListRecentExpenses returns the workspace's most recent expenses, newest
	// first, capped at limit.
	ListRecentExpenses(ctx context.Context, workspaceID string, limit int) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// WalletReader defines read operations for wallet data.
type WalletReader interface {
	ListWallets(ctx context.Context, workspaceID string) ([]domain.Wallet, error)

	// FindWalletByID returns ErrNotFound when no such wallet exists.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
}

// ExpenseRepositoryFacade combines the expense and wallet interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	WalletReader
}
