package dto

import (
	"time"

	"github.com/hoalu/hoalu-backend/internal/core/domain"
)

// WorkspaceSummaryResponse is the wire shape of a workspace dashboard
// summary. Totals are integers in minor units of PrimaryCurrency.
// HasMissingRates is omitted entirely unless at least one expense could not
// be converted, keeping the payload compact in the common case.
type WorkspaceSummaryResponse struct {
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

// ToWorkspaceSummaryResponse converts a domain summary to its wire shape.
func ToWorkspaceSummaryResponse(s *domain.WorkspaceSummary) WorkspaceSummaryResponse {
	return WorkspaceSummaryResponse{
		WorkspaceID:            s.WorkspaceID,
		PrimaryCurrency:        s.PrimaryCurrency,
		TotalExpensesThisMonth: s.TotalExpensesThisMonth,
		TotalExpensesLastMonth: s.TotalExpensesLastMonth,
		TransactionCount:       s.TransactionCount,
		ActiveWalletsCount:     s.ActiveWalletsCount,
		TrendPercentage:        s.TrendPercentage,
		HasMissingRates:        s.HasMissingRates,
		LastActivityAt:         s.LastActivityAt,
	}
}

// ToListWorkspaceSummaryResponse converts a slice of domain summaries.
func ToListWorkspaceSummaryResponse(summaries []domain.WorkspaceSummary) []WorkspaceSummaryResponse {
	responses := make([]WorkspaceSummaryResponse, len(summaries))
	for i := range summaries {
		responses[i] = ToWorkspaceSummaryResponse(&summaries[i])
	}
	return responses
}
