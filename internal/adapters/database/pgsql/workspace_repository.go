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

// PgxWorkspaceRepository implements workspace membership and summary reads.
type PgxWorkspaceRepository struct {
	BaseRepository
}

// NewPgxWorkspaceRepository creates a new repository for workspace data.
func NewPgxWorkspaceRepository(pool *pgxpool.Pool) *PgxWorkspaceRepository {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

// FindMembership returns the caller's membership row, or ErrNotFound when the
// workspace is absent or the user is not a member.
func (r *PgxWorkspaceRepository) FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Member, error) {
	query := `
		SELECT m.user_id, m.workspace_id, m.role, m.joined_at
		FROM members m
		JOIN workspaces w ON w.workspace_id = m.workspace_id
		WHERE m.workspace_id = $1 AND m.user_id = $2 AND w.is_active;
	`

	rows, err := r.Pool.Query(ctx, query, workspaceID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query membership", err)
	}
	member, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Member])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("workspace " + workspaceID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan membership", err)
	}
	return &member, nil
}

// ListMemberWorkspaceIDs returns the IDs of every active workspace the user
// belongs to, ordered by join time.
func (r *PgxWorkspaceRepository) ListMemberWorkspaceIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT m.workspace_id
		FROM members m
		JOIN workspaces w ON w.workspace_id = m.workspace_id
		WHERE m.user_id = $1 AND w.is_active
		ORDER BY m.joined_at;
	`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query memberships", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan memberships", err)
	}
	return ids, nil
}

// FindPrimaryCurrency returns the currency of the wallet with the most linked
// expenses. Count ties break alphabetically so the result is stable across
// requests. Empty string when the workspace has no wallets.
func (r *PgxWorkspaceRepository) FindPrimaryCurrency(ctx context.Context, workspaceID string) (string, error) {
	query := `
		SELECT w.currency
		FROM wallets w
		LEFT JOIN expenses e ON e.wallet_id = w.wallet_id
		WHERE w.workspace_id = $1
		GROUP BY w.currency
		ORDER BY COUNT(e.expense_id) DESC, w.currency ASC
		LIMIT 1;
	`

	var currency string
	err := r.Pool.QueryRow(ctx, query, workspaceID).Scan(&currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", apperrors.NewAppError(500, "failed to determine primary currency", err)
	}
	return currency, nil
}

// CountActiveWallets returns the number of active wallets in the workspace.
func (r *PgxWorkspaceRepository) CountActiveWallets(ctx context.Context, workspaceID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wallets WHERE workspace_id = $1 AND is_active;`,
		workspaceID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count active wallets", err)
	}
	return count, nil
}

// FindLastExpenseDate returns the most recent expense date in the workspace,
// or nil when it has no expenses.
func (r *PgxWorkspaceRepository) FindLastExpenseDate(ctx context.Context, workspaceID string) (*time.Time, error) {
	query := `
		SELECT MAX(e.date)
		FROM expenses e
		JOIN wallets w ON w.wallet_id = e.wallet_id
		WHERE w.workspace_id = $1;
	`

	var lastActivity *time.Time
	if err := r.Pool.QueryRow(ctx, query, workspaceID).Scan(&lastActivity); err != nil {
		return nil, apperrors.NewAppError(500, "failed to query last expense date", err)
	}
	return lastActivity, nil
}
