package services

import (
	"context"
	"time"

	"github.com/hoalu/hoalu-backend/internal/core/domain"
	"github.com/hoalu/hoalu-backend/internal/dto"
)

// SummarySvcFacade computes workspace dashboard summaries.
type SummarySvcFacade interface {
	// GetWorkspaceSummary produces the summary for one workspace, denominated
	// in its primary currency. Returns ErrNotFound when the workspace does
	// not exist or the caller is not a member.
	GetWorkspaceSummary(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceSummary, error)

	// GetAllWorkspaceSummaries produces summaries for every workspace the
	// user belongs to, in membership order.
	GetAllWorkspaceSummaries(ctx context.Context, userID string) ([]domain.WorkspaceSummary, error)

	// ConvertAndSumExpenses converts a batch of expenses into the target
	// currency using rates as of `at`, resolving each distinct currency at
	// most once.
	ConvertAndSumExpenses(ctx context.Context, expenses []domain.Expense, targetCurrency string, at time.Time) (domain.ConversionResult, error)
}

// ExpenseSvcFacade exposes expense and wallet operations scoped to a
// workspace membership.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, workspaceID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, workspaceID, userID string, limit int) ([]domain.Expense, error)
	ListWallets(ctx context.Context, workspaceID, userID string) ([]domain.Wallet, error)
}
