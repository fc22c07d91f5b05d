package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/hoalu/hoalu-backend/internal/apperrors"
	"github.com/hoalu/hoalu-backend/internal/core/domain"
	portsrepo "github.com/hoalu/hoalu-backend/internal/core/ports/repositories"
	portssvc "github.com/hoalu/hoalu-backend/internal/core/ports/services"
	"github.com/hoalu/hoalu-backend/internal/utils/monetary"
	"github.com/hoalu/hoalu-backend/internal/utils/period"
)

// summaryService computes workspace dashboard summaries, converting
// heterogeneous-currency expenses into each workspace's primary currency.
type summaryService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	expenseRepo   portsrepo.ExpenseReader
	rates         portssvc.FxRateSvcFacade
	now           func() time.Time
}

// SummaryServiceOption is a functional option for configuring the service.
type SummaryServiceOption func(*summaryService)

// WithClock overrides the time source. Used by tests to pin the month windows.
func WithClock(now func() time.Time) SummaryServiceOption {
	return func(s *summaryService) {
		s.now = now
	}
}

// NewSummaryService creates a new summary service with the provided options.
func NewSummaryService(workspaceRepo portsrepo.WorkspaceRepositoryFacade, expenseRepo portsrepo.ExpenseReader, rates portssvc.FxRateSvcFacade, options ...SummaryServiceOption) portssvc.SummarySvcFacade {
	svc := &summaryService{
		workspaceRepo: workspaceRepo,
		expenseRepo:   expenseRepo,
		rates:         rates,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

// ConvertAndSumExpenses converts a batch of expenses into the target currency
// using rates as of `at` and returns the rounded minor-unit total.
//
// Each distinct source currency is resolved at most once, so the number of
// rate lookups is bounded by the number of currencies, not expenses. A
// currency with no resolvable rate flags the result and its expenses are
// skipped: a partial total is more useful than a failed request.
func (s *summaryService) ConvertAndSumExpenses(ctx context.Context, expenses []domain.Expense, targetCurrency string, at time.Time) (domain.ConversionResult, error) {
	if len(expenses) == 0 {
		return domain.ConversionResult{}, nil
	}
	targetCurrency = strings.ToUpper(targetCurrency)

	var distinct []string
	seen := make(map[string]struct{})
	for _, expense := range expenses {
		if expense.Currency == targetCurrency {
			continue
		}
		if _, ok := seen[expense.Currency]; ok {
			continue
		}
		seen[expense.Currency] = struct{}{}
		distinct = append(distinct, expense.Currency)
	}

	hasMissingRates := false
	rateByCurrency := make(map[string]decimal.Decimal, len(distinct))
	for _, currency := range distinct {
		record, err := s.rates.LookupRate(ctx, currency, targetCurrency, at)
		if err != nil {
			return domain.ConversionResult{}, fmt.Errorf("failed to resolve rate %s->%s: %w", currency, targetCurrency, err)
		}
		if record == nil {
			hasMissingRates = true
			s.LogWarn(ctx, "No exchange rate for expense conversion",
				slog.String("from", currency),
				slog.String("to", targetCurrency),
				slog.Time("at", at))
			continue
		}
		rateByCurrency[currency] = record.Rate
	}

	total := decimal.Zero
	for _, expense := range expenses {
		if expense.Currency == targetCurrency {
			total = total.Add(expense.Amount)
			continue
		}
		rate, ok := rateByCurrency[expense.Currency]
		if !ok {
			continue
		}
		major := monetary.FromMinorUnits(expense.Amount, expense.Currency)
		converted := major.Mul(rate)
		total = total.Add(monetary.ToMinorUnits(converted, targetCurrency))
	}

	return domain.ConversionResult{
		Total:           total.Round(0).IntPart(),
		HasMissingRates: hasMissingRates,
	}, nil
}

// GetWorkspaceSummary produces the dashboard summary for one workspace.
func (s *summaryService) GetWorkspaceSummary(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceSummary, error) {
	if _, err := s.workspaceRepo.FindMembership(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	primaryCurrency, err := s.workspaceRepo.FindPrimaryCurrency(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine primary currency: %w", err)
	}
	if primaryCurrency == "" {
		primaryCurrency = domain.BridgeCurrency
	}

	now := s.now()
	thisMonthStart := period.StartOfMonth(now)
	lastMonthStart, lastMonthEnd := period.PreviousMonthRange(now)

	thisMonthExpenses, err := s.expenseRepo.ListExpensesBetween(ctx, workspaceID, thisMonthStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current month expenses: %w", err)
	}
	current, err := s.ConvertAndSumExpenses(ctx, thisMonthExpenses, primaryCurrency, now)
	if err != nil {
		return nil, err
	}

	lastMonthExpenses, err := s.expenseRepo.ListExpensesBetween(ctx, workspaceID, lastMonthStart, lastMonthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch previous month expenses: %w", err)
	}
	// Previous-period conversions are valued at the end of that month, so the
	// two periods never share a rate cache.
	previous, err := s.ConvertAndSumExpenses(ctx, lastMonthExpenses, primaryCurrency, lastMonthEnd)
	if err != nil {
		return nil, err
	}

	activeWallets, err := s.workspaceRepo.CountActiveWallets(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active wallets: %w", err)
	}
	lastActivityAt, err := s.workspaceRepo.FindLastExpenseDate(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last activity: %w", err)
	}

	summary := &domain.WorkspaceSummary{
		WorkspaceID:            workspaceID,
		PrimaryCurrency:        primaryCurrency,
		TotalExpensesThisMonth: current.Total,
		TotalExpensesLastMonth: previous.Total,
		// All fetched expenses count as transactions, including ones a
		// missing rate later excluded from the total.
		TransactionCount:   len(thisMonthExpenses),
		ActiveWalletsCount: activeWallets,
		TrendPercentage:    trendPercentage(current.Total, previous.Total),
		HasMissingRates:    current.HasMissingRates || previous.HasMissingRates,
		LastActivityAt:     lastActivityAt,
	}

	s.LogInfo(ctx, "Workspace summary computed",
		slog.String("workspace_id", workspaceID),
		slog.String("primary_currency", primaryCurrency),
		slog.Int("transaction_count", summary.TransactionCount),
		slog.Bool("has_missing_rates", summary.HasMissingRates))
	return summary, nil
}

// GetAllWorkspaceSummaries computes summaries for every workspace the user
// belongs to, concurrently, preserving membership order in the output.
func (s *summaryService) GetAllWorkspaceSummaries(ctx context.Context, userID string) ([]domain.WorkspaceSummary, error) {
	workspaceIDs, err := s.workspaceRepo.ListMemberWorkspaceIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	results := make([]*domain.WorkspaceSummary, len(workspaceIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, workspaceID := range workspaceIDs {
		g.Go(func() error {
			summary, err := s.GetWorkspaceSummary(gctx, workspaceID, userID)
			if err != nil {
				// Membership can be revoked between the list and the fetch;
				// drop the workspace rather than failing the whole response.
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil
				}
				return err
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]domain.WorkspaceSummary, 0, len(workspaceIDs))
	for _, result := range results {
		if result != nil {
			summaries = append(summaries, *result)
		}
	}
	return summaries, nil
}

// trendPercentage computes month-over-month change as a percentage rounded
// to 2 decimals. A zero previous month with spending this month reads as
// 100% growth rather than a division by zero; two zero months read as flat.
func trendPercentage(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	change := decimal.NewFromInt(current - previous).
		Div(decimal.NewFromInt(previous)).
		Mul(decimal.NewFromInt(100))
	return change.Round(2).InexactFloat64()
}
