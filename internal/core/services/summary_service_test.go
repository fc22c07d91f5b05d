package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hoalu/hoalu-backend/internal/apperrors"
	"github.com/hoalu/hoalu-backend/internal/core/domain"
	portssvc "github.com/hoalu/hoalu-backend/internal/core/ports/services"
	"github.com/hoalu/hoalu-backend/internal/core/services"
)

// --- Mock WorkspaceRepository ---
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Member, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockWorkspaceRepository) ListMemberWorkspaceIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockWorkspaceRepository) FindPrimaryCurrency(ctx context.Context, workspaceID string) (string, error) {
	args := m.Called(ctx, workspaceID)
	return args.String(0), args.Error(1)
}

func (m *MockWorkspaceRepository) CountActiveWallets(ctx context.Context, workspaceID string) (int, error) {
	args := m.Called(ctx, workspaceID)
	return args.Int(0), args.Error(1)
}

func (m *MockWorkspaceRepository) FindLastExpenseDate(ctx context.Context, workspaceID string) (*time.Time, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

// --- Mock ExpenseReader ---
type MockExpenseReader struct {
	mock.Mock
}

func (m *MockExpenseReader) ListExpensesBetween(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, workspaceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseReader) ListRecentExpenses(ctx context.Context, workspaceID string, limit int) ([]domain.Expense, error) {
	args := m.Called(ctx, workspaceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

// --- Mock FxRateService ---
type MockFxRateService struct {
	mock.Mock
}

func (m *MockFxRateService) LookupRate(ctx context.Context, from, to string, at time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockFxRateService) GetExchangeRate(ctx context.Context, from, to string, at time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, from, to, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type SummaryServiceTestSuite struct {
	suite.Suite
	mockWorkspaceRepo *MockWorkspaceRepository
	mockExpenseRepo   *MockExpenseReader
	mockRates         *MockFxRateService
	service           portssvc.SummarySvcFacade

	now            time.Time
	thisMonthStart time.Time
	lastMonthStart time.Time
	lastMonthEnd   time.Time
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	suite.mockExpenseRepo = new(MockExpenseReader)
	suite.mockRates = new(MockFxRateService)

	suite.now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	suite.thisMonthStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.lastMonthStart = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.lastMonthEnd = time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)

	suite.service = services.NewSummaryService(
		suite.mockWorkspaceRepo,
		suite.mockExpenseRepo,
		suite.mockRates,
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func expenseOf(currency string, minorUnits int64) domain.Expense {
	return domain.Expense{
		ExpenseID: currency + "-" + decimal.NewFromInt(minorUnits).String(),
		Amount:    decimal.NewFromInt(minorUnits),
		Currency:  currency,
	}
}

// --- ConvertAndSumExpenses ---

func (suite *SummaryServiceTestSuite) TestConvertAndSum_EmptyBatch() {
	ctx := context.Background()

	result, err := suite.service.ConvertAndSumExpenses(ctx, nil, "USD", suite.now)

	suite.Require().NoError(err)
	suite.Equal(int64(0), result.Total)
	suite.False(result.HasMissingRates)
	suite.mockRates.AssertNotCalled(suite.T(), "LookupRate")
}

func (suite *SummaryServiceTestSuite) TestConvertAndSum_AllTargetCurrency() {
	ctx := context.Background()
	expenses := []domain.Expense{expenseOf("USD", 1000), expenseOf("USD", 550)}

	result, err := suite.service.ConvertAndSumExpenses(ctx, expenses, "USD", suite.now)

	suite.Require().NoError(err)
	suite.Equal(int64(1550), result.Total)
	suite.False(result.HasMissingRates)
	// Same-currency amounts never trigger a rate lookup.
	suite.mockRates.AssertNotCalled(suite.T(), "LookupRate")
}

func (suite *SummaryServiceTestSuite) TestConvertAndSum_ForeignCurrencyConverted() {
	ctx := context.Background()
	// 20.00 EUR at 1.1 -> 22.00 USD.
	expenses := []domain.Expense{expenseOf("USD", 1000), expenseOf("EUR", 2000)}
	suite.mockRates.On("LookupRate", ctx, "EUR", "USD", suite.now).
		Return(&domain.ExchangeRate{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.NewFromFloat(1.1)}, nil).Once()

	result, err := suite.service.ConvertAndSumExpenses(ctx, expenses, "USD", suite.now)

	suite.Require().NoError(err)
	suite.Equal(int64(3200), result.Total)
	suite.False(result.HasMissingRates)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestConvertAndSum_DistinctCurrencyResolvedOnce() {
	ctx := context.Background()
	expenses := []domain.Expense{expenseOf("EUR", 1000), expenseOf("EUR", 2000), expenseOf("EUR", 3000)}
	suite.mockRates.On("LookupRate", ctx, "EUR", "USD", suite.now).
		Return(&domain.ExchangeRate{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.NewFromInt(2)}, nil).Once()

	result, err := suite.service.ConvertAndSumExpenses(ctx, expenses, "USD", suite.now)

	suite.Require().NoError(err)
	suite.Equal(int64(12000), result.Total)
	suite.mockRates.AssertNumberOfCalls(suite.T(), "LookupRate", 1)
}

func (suite *SummaryServiceTestSuite) TestConvertAndSum_MissingRateSkipsExpenses() {
	ctx := context.Background()
	expenses := []domain.Expense{expenseOf("USD", 1000), expenseOf("EUR", 2000)}
	suite.mockRates.On("LookupRate", ctx, "EUR", "USD", suite.now).Return(nil, nil).Once()

	result, err := suite.service.ConvertAndSumExpenses(ctx, expenses, "USD", suite.now)

	suite.Require().NoError(err)
	suite.Equal(int64(1000), result.Total, "unconvertible expense is skipped, not zeroed into the total")
	suite.True(result.HasMissingRates)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestConvertAndSum_ZeroDecimalCurrency() {
	ctx := context.Background()
	// VND has no minor unit: 250000 VND at 0.00004 -> 10.00 USD -> 1000 cents.
	expenses := []domain.Expense{expenseOf("VND", 250000)}
	suite.mockRates.On("LookupRate", ctx, "VND", "USD", suite.now).
		Return(&domain.ExchangeRate{FromCurrency: "VND", ToCurrency: "USD", Rate: decimal.NewFromFloat(0.00004)}, nil).Once()

	result, err := suite.service.ConvertAndSumExpenses(ctx, expenses, "USD", suite.now)

	suite.Require().NoError(err)
	suite.Equal(int64(1000), result.Total)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestConvertAndSum_RoundsOnceAtTheEnd() {
	ctx := context.Background()
	// 333 + 333 + 334 cents at 1.005 sums to exactly 1005 when rounded once at
	// the end. Rounding each converted expense first would give 1006.
	expenses := []domain.Expense{expenseOf("EUR", 333), expenseOf("EUR", 333), expenseOf("EUR", 334)}
	suite.mockRates.On("LookupRate", ctx, "EUR", "USD", suite.now).
		Return(&domain.ExchangeRate{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.NewFromFloat(1.005)}, nil).Once()

	result, err := suite.service.ConvertAndSumExpenses(ctx, expenses, "USD", suite.now)

	suite.Require().NoError(err)
	// 1000 * 1.005 = 1005 exactly.
	suite.Equal(int64(1005), result.Total)
}

// --- GetWorkspaceSummary ---

func (suite *SummaryServiceTestSuite) expectMembership(workspaceID, userID string) {
	suite.mockWorkspaceRepo.On("FindMembership", mock.Anything, workspaceID, userID).
		Return(&domain.Member{UserID: userID, WorkspaceID: workspaceID, Role: domain.RoleMember}, nil).Once()
}

func (suite *SummaryServiceTestSuite) TestGetWorkspaceSummary_SingleCurrencyWorkspace() {
	ctx := context.Background()
	workspaceID := "ws-1"
	userID := "user-1"
	lastActivity := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	suite.expectMembership(workspaceID, userID)
	suite.mockWorkspaceRepo.On("FindPrimaryCurrency", ctx, workspaceID).Return("USD", nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.thisMonthStart, suite.now).
		Return([]domain.Expense{expenseOf("USD", 1000), expenseOf("USD", 550)}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.lastMonthStart, suite.lastMonthEnd).
		Return([]domain.Expense{expenseOf("USD", 775)}, nil).Once()
	suite.mockWorkspaceRepo.On("CountActiveWallets", ctx, workspaceID).Return(2, nil).Once()
	suite.mockWorkspaceRepo.On("FindLastExpenseDate", ctx, workspaceID).Return(&lastActivity, nil).Once()

	summary, err := suite.service.GetWorkspaceSummary(ctx, workspaceID, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(workspaceID, summary.WorkspaceID)
	suite.Equal("USD", summary.PrimaryCurrency)
	suite.Equal(int64(1550), summary.TotalExpensesThisMonth)
	suite.Equal(int64(775), summary.TotalExpensesLastMonth)
	suite.Equal(2, summary.TransactionCount)
	suite.Equal(2, summary.ActiveWalletsCount)
	suite.InDelta(100.0, summary.TrendPercentage, 0.001)
	suite.False(summary.HasMissingRates)
	suite.Require().NotNil(summary.LastActivityAt)
	suite.Equal(lastActivity, *summary.LastActivityAt)

	suite.mockRates.AssertNotCalled(suite.T(), "LookupRate")
	suite.mockWorkspaceRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestGetWorkspaceSummary_MissingRateFlagged() {
	ctx := context.Background()
	workspaceID := "ws-1"
	userID := "user-1"

	suite.expectMembership(workspaceID, userID)
	suite.mockWorkspaceRepo.On("FindPrimaryCurrency", ctx, workspaceID).Return("USD", nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.thisMonthStart, suite.now).
		Return([]domain.Expense{expenseOf("USD", 1000), expenseOf("EUR", 2000)}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.lastMonthStart, suite.lastMonthEnd).
		Return([]domain.Expense{}, nil).Once()
	suite.mockWorkspaceRepo.On("CountActiveWallets", ctx, workspaceID).Return(2, nil).Once()
	suite.mockWorkspaceRepo.On("FindLastExpenseDate", ctx, workspaceID).Return(nil, nil).Once()
	suite.mockRates.On("LookupRate", ctx, "EUR", "USD", suite.now).Return(nil, nil).Once()

	summary, err := suite.service.GetWorkspaceSummary(ctx, workspaceID, userID)

	suite.Require().NoError(err)
	suite.Equal(int64(1000), summary.TotalExpensesThisMonth)
	suite.True(summary.HasMissingRates)
	// Skipped expenses still count as transactions.
	suite.Equal(2, summary.TransactionCount)
	suite.Nil(summary.LastActivityAt)
}

func (suite *SummaryServiceTestSuite) TestGetWorkspaceSummary_EmptyWorkspaceDefaultsToUSD() {
	ctx := context.Background()
	workspaceID := "ws-empty"
	userID := "user-1"

	suite.expectMembership(workspaceID, userID)
	suite.mockWorkspaceRepo.On("FindPrimaryCurrency", ctx, workspaceID).Return("", nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.thisMonthStart, suite.now).
		Return([]domain.Expense{}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.lastMonthStart, suite.lastMonthEnd).
		Return([]domain.Expense{}, nil).Once()
	suite.mockWorkspaceRepo.On("CountActiveWallets", ctx, workspaceID).Return(0, nil).Once()
	suite.mockWorkspaceRepo.On("FindLastExpenseDate", ctx, workspaceID).Return(nil, nil).Once()

	summary, err := suite.service.GetWorkspaceSummary(ctx, workspaceID, userID)

	suite.Require().NoError(err)
	suite.Equal("USD", summary.PrimaryCurrency)
	suite.Equal(int64(0), summary.TotalExpensesThisMonth)
	suite.Equal(0.0, summary.TrendPercentage, "two empty months read as flat")
}

func (suite *SummaryServiceTestSuite) TestGetWorkspaceSummary_TrendFromZeroPreviousMonth() {
	ctx := context.Background()
	workspaceID := "ws-1"
	userID := "user-1"

	suite.expectMembership(workspaceID, userID)
	suite.mockWorkspaceRepo.On("FindPrimaryCurrency", ctx, workspaceID).Return("USD", nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.thisMonthStart, suite.now).
		Return([]domain.Expense{expenseOf("USD", 500)}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.lastMonthStart, suite.lastMonthEnd).
		Return([]domain.Expense{}, nil).Once()
	suite.mockWorkspaceRepo.On("CountActiveWallets", ctx, workspaceID).Return(1, nil).Once()
	suite.mockWorkspaceRepo.On("FindLastExpenseDate", ctx, workspaceID).Return(nil, nil).Once()

	summary, err := suite.service.GetWorkspaceSummary(ctx, workspaceID, userID)

	suite.Require().NoError(err)
	suite.Equal(100.0, summary.TrendPercentage)
}

func (suite *SummaryServiceTestSuite) TestGetWorkspaceSummary_NotAMember() {
	ctx := context.Background()
	suite.mockWorkspaceRepo.On("FindMembership", ctx, "ws-1", "stranger").
		Return(nil, apperrors.NewNotFoundError("workspace ws-1 not found")).Once()

	summary, err := suite.service.GetWorkspaceSummary(ctx, "ws-1", "stranger")

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockWorkspaceRepo.AssertNotCalled(suite.T(), "FindPrimaryCurrency")
}

func (suite *SummaryServiceTestSuite) TestGetWorkspaceSummary_PreviousMonthValuedAtMonthEnd() {
	ctx := context.Background()
	workspaceID := "ws-1"
	userID := "user-1"

	suite.expectMembership(workspaceID, userID)
	suite.mockWorkspaceRepo.On("FindPrimaryCurrency", ctx, workspaceID).Return("USD", nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.thisMonthStart, suite.now).
		Return([]domain.Expense{}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", ctx, workspaceID, suite.lastMonthStart, suite.lastMonthEnd).
		Return([]domain.Expense{expenseOf("EUR", 1000)}, nil).Once()
	suite.mockWorkspaceRepo.On("CountActiveWallets", ctx, workspaceID).Return(1, nil).Once()
	suite.mockWorkspaceRepo.On("FindLastExpenseDate", ctx, workspaceID).Return(nil, nil).Once()

	// The previous month's conversion is dated at that month's end, not now.
	suite.mockRates.On("LookupRate", ctx, "EUR", "USD", suite.lastMonthEnd).
		Return(&domain.ExchangeRate{FromCurrency: "EUR", ToCurrency: "USD", Rate: decimal.NewFromInt(2)}, nil).Once()

	summary, err := suite.service.GetWorkspaceSummary(ctx, workspaceID, userID)

	suite.Require().NoError(err)
	suite.Equal(int64(2000), summary.TotalExpensesLastMonth)
	suite.mockRates.AssertExpectations(suite.T())
}

// --- GetAllWorkspaceSummaries ---

func (suite *SummaryServiceTestSuite) expectSummaryFetch(workspaceID string, total int64) {
	suite.mockWorkspaceRepo.On("FindMembership", mock.Anything, workspaceID, "user-1").
		Return(&domain.Member{UserID: "user-1", WorkspaceID: workspaceID, Role: domain.RoleMember}, nil).Once()
	suite.mockWorkspaceRepo.On("FindPrimaryCurrency", mock.Anything, workspaceID).Return("USD", nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", mock.Anything, workspaceID, suite.thisMonthStart, suite.now).
		Return([]domain.Expense{expenseOf("USD", total)}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesBetween", mock.Anything, workspaceID, suite.lastMonthStart, suite.lastMonthEnd).
		Return([]domain.Expense{}, nil).Once()
	suite.mockWorkspaceRepo.On("CountActiveWallets", mock.Anything, workspaceID).Return(1, nil).Once()
	suite.mockWorkspaceRepo.On("FindLastExpenseDate", mock.Anything, workspaceID).Return(nil, nil).Once()
}

func (suite *SummaryServiceTestSuite) TestGetAllWorkspaceSummaries_PreservesMembershipOrder() {
	ctx := context.Background()
	suite.mockWorkspaceRepo.On("ListMemberWorkspaceIDs", ctx, "user-1").
		Return([]string{"ws-a", "ws-b", "ws-c"}, nil).Once()
	suite.expectSummaryFetch("ws-a", 100)
	suite.expectSummaryFetch("ws-b", 200)
	suite.expectSummaryFetch("ws-c", 300)

	summaries, err := suite.service.GetAllWorkspaceSummaries(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 3)
	suite.Equal("ws-a", summaries[0].WorkspaceID)
	suite.Equal("ws-b", summaries[1].WorkspaceID)
	suite.Equal("ws-c", summaries[2].WorkspaceID)
	suite.Equal(int64(200), summaries[1].TotalExpensesThisMonth)
}

func (suite *SummaryServiceTestSuite) TestGetAllWorkspaceSummaries_RevokedMembershipSkipped() {
	ctx := context.Background()
	suite.mockWorkspaceRepo.On("ListMemberWorkspaceIDs", ctx, "user-1").
		Return([]string{"ws-a", "ws-revoked", "ws-c"}, nil).Once()
	suite.expectSummaryFetch("ws-a", 100)
	suite.mockWorkspaceRepo.On("FindMembership", mock.Anything, "ws-revoked", "user-1").
		Return(nil, apperrors.NewNotFoundError("workspace ws-revoked not found")).Once()
	suite.expectSummaryFetch("ws-c", 300)

	summaries, err := suite.service.GetAllWorkspaceSummaries(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)
	suite.Equal("ws-a", summaries[0].WorkspaceID)
	suite.Equal("ws-c", summaries[1].WorkspaceID)
}

func (suite *SummaryServiceTestSuite) TestGetAllWorkspaceSummaries_NoMemberships() {
	ctx := context.Background()
	suite.mockWorkspaceRepo.On("ListMemberWorkspaceIDs", ctx, "user-1").
		Return([]string{}, nil).Once()

	summaries, err := suite.service.GetAllWorkspaceSummaries(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Empty(summaries)
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
