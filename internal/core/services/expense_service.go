package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoalu/hoalu-backend/internal/apperrors"
	"github.com/hoalu/hoalu-backend/internal/core/domain"
	portsrepo "github.com/hoalu/hoalu-backend/internal/core/ports/repositories"
	portssvc "github.com/hoalu/hoalu-backend/internal/core/ports/services"
	"github.com/hoalu/hoalu-backend/internal/dto"
)

const (
	defaultExpenseListLimit = 50
	maxExpenseListLimit     = 200
)

// expenseService provides business logic for expenses and wallets.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	members     portsrepo.MembershipReader
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, members portsrepo.MembershipReader) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		members:     members,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records a new expense in one of the workspace's wallets.
func (s *expenseService) CreateExpense(ctx context.Context, workspaceID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if _, err := s.AuthorizeMember(ctx, s.members, workspaceID, creatorUserID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	wallet, err := s.expenseRepo.FindWalletByID(ctx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet.WorkspaceID != workspaceID {
		// Don't reveal that the wallet exists in another workspace.
		return nil, apperrors.NewNotFoundError("wallet " + req.WalletID + " not found")
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		WalletID:    req.WalletID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(req.Currency),
		Date:        req.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("workspace_id", workspaceID),
		slog.String("currency", expense.Currency))
	return &expense, nil
}

// ListExpenses returns the workspace's most recent expenses.
func (s *expenseService) ListExpenses(ctx context.Context, workspaceID, userID string, limit int) ([]domain.Expense, error) {
	if _, err := s.AuthorizeMember(ctx, s.members, workspaceID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultExpenseListLimit
	}
	if limit > maxExpenseListLimit {
		limit = maxExpenseListLimit
	}
	return s.expenseRepo.ListRecentExpenses(ctx, workspaceID, limit)
}

// ListWallets returns the workspace's wallets.
func (s *expenseService) ListWallets(ctx context.Context, workspaceID, userID string) ([]domain.Wallet, error) {
	if _, err := s.AuthorizeMember(ctx, s.members, workspaceID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListWallets(ctx, workspaceID)
}
