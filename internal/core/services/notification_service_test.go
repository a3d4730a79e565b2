package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/services"
)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Summary(ctx context.Context, period domain.SummaryPeriod) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

func (m *MockReportingService) ExpenseByCategory(ctx context.Context, period domain.SummaryPeriod) ([]domain.CategoryExpense, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryExpense), args.Error(1)
}

func (m *MockReportingService) CashFlow(ctx context.Context, months int) ([]domain.CashFlowPoint, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowPoint), args.Error(1)
}

func (m *MockReportingService) Upcoming(ctx context.Context, days int) ([]domain.Transaction, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type NotificationServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	mockReporting    *MockReportingService
	service          portssvc.NotificationSvcFacade
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockReporting = new(MockReportingService)
	suite.service = services.NewNotificationService(suite.mockTxnRepo, suite.mockCategoryRepo, suite.mockReporting)
}

// --- Test Cases ---

func (suite *NotificationServiceTestSuite) TestBuildDueNotice_RendersRows() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	categories := []domain.Category{{CategoryID: categoryID, Name: "Aluguel"}}
	amount, _ := decimal.NewFromString("1234.56")
	upcoming := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			Description:   "Aluguel do escritório",
			Amount:        amount,
			Type:          domain.Expense,
			CategoryID:    &categoryID,
			DueDate:       time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			Status:        domain.StatusPending,
		},
		{
			TransactionID: uuid.NewString(),
			Description:   "Mensalidade cliente",
			Amount:        decimal.NewFromInt(500),
			Type:          domain.Income,
			DueDate:       time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
			Status:        domain.StatusPending,
		},
	}

	suite.mockReporting.On("Upcoming", ctx, 3).Return(upcoming, nil).Once()
	suite.mockCategoryRepo.On("ListCategories", ctx).Return(categories, nil).Once()

	notice, err := suite.service.BuildDueNotice(ctx, 3)

	suite.Require().NoError(err)
	suite.Equal(3, notice.WindowDays)
	suite.Len(notice.Transactions, 2)
	suite.Contains(notice.HTML, "Próximos Vencimentos")
	suite.Contains(notice.HTML, "Aluguel do escritório")
	suite.Contains(notice.HTML, "Aluguel")
	suite.Contains(notice.HTML, "05 de março")
	suite.Contains(notice.HTML, "-R$ 1.234,56")
	suite.Contains(notice.HTML, "+R$ 500,00")
	suite.Contains(notice.HTML, "Sem categoria")
}

func (suite *NotificationServiceTestSuite) TestBuildDueNotice_DefaultsWindow() {
	ctx := context.Background()

	suite.mockReporting.On("Upcoming", ctx, 3).Return([]domain.Transaction{}, nil).Once()
	suite.mockCategoryRepo.On("ListCategories", ctx).Return([]domain.Category{}, nil).Once()

	notice, err := suite.service.BuildDueNotice(ctx, 0)

	suite.Require().NoError(err)
	suite.Equal(3, notice.WindowDays)
	suite.Contains(notice.HTML, "Você tem 0 contas")
}

func (suite *NotificationServiceTestSuite) TestBuildDueNotice_UpcomingError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockReporting.On("Upcoming", ctx, 3).Return(nil, expectedErr).Once()

	notice, err := suite.service.BuildDueNotice(ctx, 3)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(notice)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
