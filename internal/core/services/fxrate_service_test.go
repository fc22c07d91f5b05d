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

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FindDirect(ctx context.Context, pair domain.CurrencyPair, on time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, pair, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateProvider) FindCrossRate(ctx context.Context, pair domain.CurrencyPair, on time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, pair, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type FxRateServiceTestSuite struct {
	suite.Suite
	mockProvider *MockRateProvider
	service      portssvc.FxRateSvcFacade
	at           time.Time
}

func (suite *FxRateServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockRateProvider)
	suite.service = services.NewFxRateService(suite.mockProvider)
	suite.at = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
}

// --- Test Cases ---

func (suite *FxRateServiceTestSuite) TestLookupRate_SameCurrency() {
	ctx := context.Background()

	rate, err := suite.service.LookupRate(ctx, "EUR", "EUR", suite.at)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("EUR", rate.FromCurrency)
	suite.Equal("EUR", rate.ToCurrency)
	suite.True(rate.Rate.Equal(decimal.NewFromInt(1)))
	suite.True(rate.InverseRate.Equal(decimal.NewFromInt(1)))

	// Identity resolution never reaches the provider.
	suite.mockProvider.AssertNotCalled(suite.T(), "FindDirect")
	suite.mockProvider.AssertNotCalled(suite.T(), "FindCrossRate")
}

func (suite *FxRateServiceTestSuite) TestLookupRate_DirectStoredForward() {
	ctx := context.Background()
	pair := domain.CurrencyPair{From: "USD", To: "EUR"}
	stored := &domain.ExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.NewFromFloat(0.9),
		InverseRate:  decimal.NewFromFloat(1.111111),
	}
	suite.mockProvider.On("FindDirect", ctx, pair, suite.at).Return(stored, nil).Once()

	rate, err := suite.service.LookupRate(ctx, "USD", "EUR", suite.at)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("USD", rate.FromCurrency)
	suite.True(rate.Rate.Equal(decimal.NewFromFloat(0.9)))
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestLookupRate_DirectStoredOppositeDirection() {
	ctx := context.Background()
	// Request EUR->USD but the store holds USD->EUR.
	pair := domain.CurrencyPair{From: "EUR", To: "USD"}
	stored := &domain.ExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.NewFromFloat(0.9),
		InverseRate:  decimal.NewFromFloat(1.111111),
	}
	suite.mockProvider.On("FindDirect", ctx, pair, suite.at).Return(stored, nil).Once()

	rate, err := suite.service.LookupRate(ctx, "EUR", "USD", suite.at)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("EUR", rate.FromCurrency)
	suite.Equal("USD", rate.ToCurrency)
	suite.True(rate.Rate.Equal(decimal.NewFromFloat(1.111111)), "legs should be swapped")
	suite.True(rate.InverseRate.Equal(decimal.NewFromFloat(0.9)))
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestLookupRate_DirectMiss() {
	ctx := context.Background()
	pair := domain.CurrencyPair{From: "USD", To: "XYZ"}
	suite.mockProvider.On("FindDirect", ctx, pair, suite.at).Return(nil, nil).Once()

	rate, err := suite.service.LookupRate(ctx, "USD", "XYZ", suite.at)

	suite.Require().NoError(err)
	suite.Nil(rate)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestLookupRate_CrossDelegatesToProvider() {
	ctx := context.Background()
	pair := domain.CurrencyPair{From: "EUR", To: "VND"}
	bridged := &domain.ExchangeRate{
		FromCurrency: "EUR",
		ToCurrency:   "VND",
		Rate:         decimal.NewFromFloat(27777.78),
		InverseRate:  decimal.NewFromFloat(0.000036),
	}
	suite.mockProvider.On("FindCrossRate", ctx, pair, suite.at).Return(bridged, nil).Once()

	rate, err := suite.service.LookupRate(ctx, "EUR", "VND", suite.at)

	suite.Require().NoError(err)
	suite.Equal(bridged, rate)
	suite.mockProvider.AssertNotCalled(suite.T(), "FindDirect")
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestLookupRate_LowercaseInputNormalized() {
	ctx := context.Background()
	pair := domain.CurrencyPair{From: "EUR", To: "VND"}
	suite.mockProvider.On("FindCrossRate", ctx, pair, suite.at).Return(nil, nil).Once()

	rate, err := suite.service.LookupRate(ctx, "eur", "vnd", suite.at)

	suite.Require().NoError(err)
	suite.Nil(rate)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestGetExchangeRate_InvalidCurrencyCode() {
	ctx := context.Background()

	rate, err := suite.service.GetExchangeRate(ctx, "EURO", "USD", suite.at)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProvider.AssertNotCalled(suite.T(), "FindDirect")
}

func (suite *FxRateServiceTestSuite) TestGetExchangeRate_UnresolvableIsNotFound() {
	ctx := context.Background()
	pair := domain.CurrencyPair{From: "EUR", To: "VND"}
	suite.mockProvider.On("FindCrossRate", ctx, pair, suite.at).Return(nil, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "EUR", "VND", suite.at)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *FxRateServiceTestSuite) TestGetExchangeRate_Success() {
	ctx := context.Background()
	pair := domain.CurrencyPair{From: "USD", To: "EUR"}
	stored := &domain.ExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.NewFromFloat(0.9),
		InverseRate:  decimal.NewFromFloat(1.111111),
	}
	suite.mockProvider.On("FindDirect", ctx, pair, suite.at).Return(stored, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "usd", "eur", suite.at)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.Rate.Equal(decimal.NewFromFloat(0.9)))
	suite.mockProvider.AssertExpectations(suite.T())
}

func TestFxRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FxRateServiceTestSuite))
}
