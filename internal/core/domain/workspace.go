package domain

import "time"

// Workspace represents an isolated environment containing wallets and expenses.
type Workspace struct {
	WorkspaceID string `json:"workspaceID" db:"workspace_id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	AuditFields
}

// MemberRole defines the possible roles a user can have within a workspace.
type MemberRole string

const (
	RoleOwner    MemberRole = "OWNER"
	RoleMember   MemberRole = "MEMBER"
	RoleReadOnly MemberRole = "READONLY"
)

// allows reports whether a member holding the role may act at the required
// level. Roles are strictly ordered OWNER > MEMBER > READONLY.
func (r MemberRole) allows(required MemberRole) bool {
	rank := map[MemberRole]int{RoleReadOnly: 0, RoleMember: 1, RoleOwner: 2}
	return rank[r] >= rank[required]
}

// Member represents the membership of a user in a workspace.
type Member struct {
	UserID      string     `json:"userID" db:"user_id"`
	WorkspaceID string     `json:"workspaceID" db:"workspace_id"`
	Role        MemberRole `json:"role" db:"role"`
	JoinedAt    time.Time  `json:"joinedAt" db:"joined_at"`
}

// Can reports whether the member may act at the required role level.
func (m Member) Can(required MemberRole) bool {
	return m.Role.allows(required)
}

// WorkspaceSummary is the derived dashboard record for one workspace. Totals
// are integers in minor units of PrimaryCurrency. It is computed fresh per
// request and never persisted.
type WorkspaceSummary struct {
	WorkspaceID            string     `json:"workspaceID"`
	PrimaryCurrency        string     `json:"primaryCurrency"`
	TotalExpensesThisMonth int64      `json:"totalExpensesThisMonth"`
	TotalExpensesLastMonth int64      `json:"totalExpensesLastMonth"`
	TransactionCount       int        `json:"transactionCount"`
	ActiveWalletsCount     int        `json:"activeWalletsCount"`
	TrendPercentage        float64    `json:"trendPercentage"`
	HasMissingRates        bool       `json:"hasMissingRates,omitempty"`
	LastActivityAt         *time.Time `json:"lastActivityAt,omitempty"`
}
