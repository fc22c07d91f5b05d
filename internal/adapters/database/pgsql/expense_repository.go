package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoalu/hoalu-backend/internal/apperrors"
	"github.com/hoalu/hoalu-backend/internal/core/domain"
	portsrepo "github.com/hoalu/hoalu-backend/internal/core/ports/repositories"
)

// PgxExpenseRepository implements expense and wallet persistence.
type PgxExpenseRepository struct {
	BaseRepository
}

// NewPgxExpenseRepository creates a new repository for expense data.
func NewPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `
	e.expense_id, e.wallet_id, e.description, e.amount, e.currency, e.date,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
`

func (r *PgxExpenseRepository) collectExpenses(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	expenses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Expense])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan expenses", err)
	}
	return expenses, nil
}

// ListExpensesBetween returns the workspace's expenses dated inside the
// inclusive [from, to] window.
func (r *PgxExpenseRepository) ListExpensesBetween(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN wallets w ON w.wallet_id = e.wallet_id
		WHERE w.workspace_id = $1 AND e.date >= $2 AND e.date <= $3
		ORDER BY e.date;
	`
	return r.collectExpenses(ctx, query, workspaceID, from, to)
}

// ListRecentExpenses returns the workspace's newest expenses first.
func (r *PgxExpenseRepository) ListRecentExpenses(ctx context.Context, workspaceID string, limit int) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN wallets w ON w.wallet_id = e.wallet_id
		WHERE w.workspace_id = $1
		ORDER BY e.date DESC, e.created_at DESC
		LIMIT $2;
	`
	return r.collectExpenses(ctx, query, workspaceID, limit)
}

// SaveExpense persists a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (
			expense_id, wallet_id, description, amount, currency, date,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.WalletID,
		expense.Description,
		expense.Amount,
		expense.Currency,
		expense.Date,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewValidationError("expense " + expense.ExpenseID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationError("wallet " + expense.WalletID + " does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save expense "+expense.ExpenseID, err)
	}
	return nil
}

// ListWallets returns the workspace's wallets ordered by name.
func (r *PgxExpenseRepository) ListWallets(ctx context.Context, workspaceID string) ([]domain.Wallet, error) {
	query := `
		SELECT wallet_id, workspace_id, name, currency, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM wallets
		WHERE workspace_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallets", err)
	}
	wallets, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Wallet])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan wallets", err)
	}
	return wallets, nil
}

// FindWalletByID returns a wallet by its ID, or ErrNotFound.
func (r *PgxExpenseRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `
		SELECT wallet_id, workspace_id, name, currency, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM wallets
		WHERE wallet_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallet", err)
	}
	wallet, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Wallet])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("wallet " + walletID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan wallet", err)
	}
	return &wallet, nil
}
