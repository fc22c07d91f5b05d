package repositories

import (
	"context"
	"time"

	"github.com/hoalu/hoalu-backend/internal/core/domain"
)

// MembershipReader defines read operations over workspace memberships.
type MembershipReader interface {
	// FindMembership returns the caller's membership row, or ErrNotFound when
	// the workspace does not exist or the user is not a member. The two cases
	// are deliberately indistinguishable so the API does not leak workspace
	// existence to non-members.
	FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Member, error)

	// ListMemberWorkspaceIDs returns the IDs of every workspace the user
	// belongs to, ordered by join time.
	ListMemberWorkspaceIDs(ctx context.Context, userID string) ([]string, error)
}

// SummaryReader defines the aggregate reads backing workspace summaries.
type SummaryReader interface {
	// FindPrimaryCurrency returns the currency of the wallet with the most
	// linked expenses, breaking count ties alphabetically. Empty string when
	// the workspace has no wallets.
	FindPrimaryCurrency(ctx context.Context, workspaceID string) (string, error)

	CountActiveWallets(ctx context.Context, workspaceID string) (int, error)

	// FindLastExpenseDate returns the most recent expense date, or nil when
	// the workspace has no expenses.
	FindLastExpenseDate(ctx context.Context, workspaceID string) (*time.Time, error)
}

// WorkspaceRepositoryFacade combines all workspace-related repository
// interfaces for clients that need the full surface.
type WorkspaceRepositoryFacade interface {
	MembershipReader
	SummaryReader
}
