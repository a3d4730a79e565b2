package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fincontrolapp/fincontrol_backend/internal/apperrors"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/services"
)

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.ReportingSvcFacade
	now              time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	// A Wednesday in mid-May, well inside month and quarter.
	suite.now = time.Date(2024, time.May, 15, 11, 0, 0, 0, time.UTC)
	suite.service = services.NewReportingService(suite.mockTxnRepo, suite.mockCategoryRepo,
		services.WithReportingClock(func() time.Time { return suite.now }))
}

func paid(txnType domain.TransactionType, amount int64, dueDate time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        decimal.NewFromInt(amount),
		Type:          txnType,
		DueDate:       dueDate,
		Status:        domain.StatusPaid,
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestSummary_Month() {
	ctx := context.Background()
	monthStart := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	allPaid := []domain.Transaction{
		paid(domain.Income, 5000, monthStart.AddDate(0, -2, 0)),
		paid(domain.Expense, 1200, monthStart.AddDate(0, -1, 0)),
		paid(domain.Income, 2000, monthStart.AddDate(0, 0, 4)),
	}
	inPeriod := []domain.Transaction{
		paid(domain.Income, 2000, monthStart.AddDate(0, 0, 4)),
		paid(domain.Expense, 500, monthStart.AddDate(0, 0, 10)),
	}

	suite.mockTxnRepo.On("FindPaid", ctx).Return(allPaid, nil).Once()
	suite.mockTxnRepo.On("FindPaidInRange", ctx, monthStart, mock.MatchedBy(func(to time.Time) bool {
		return to.After(monthStart.AddDate(0, 0, 30)) && to.Before(monthStart.AddDate(0, 1, 0))
	})).Return(inPeriod, nil).Once()
	today := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	suite.mockTxnRepo.On("CountPendingInRange", ctx, today, today.AddDate(0, 0, 7)).Return(3, nil).Once()

	summary, err := suite.service.Summary(ctx, domain.PeriodMonth)

	suite.Require().NoError(err)
	suite.True(summary.Balance.Equal(decimal.NewFromInt(5800)), "got %s", summary.Balance)
	suite.True(summary.Income.Equal(decimal.NewFromInt(2000)))
	suite.True(summary.Expense.Equal(decimal.NewFromInt(500)))
	suite.Equal(3, summary.PendingCount)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestSummary_UnknownPeriod() {
	summary, err := suite.service.Summary(context.Background(), domain.SummaryPeriod("decade"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(summary)
}

func (suite *ReportingServiceTestSuite) TestExpenseByCategory_RollsUpToRoot() {
	ctx := context.Background()
	rootID := uuid.NewString()
	childID := uuid.NewString()
	otherID := uuid.NewString()
	categories := []domain.Category{
		{CategoryID: rootID, Name: "Utilities"},
		{CategoryID: childID, Name: "Water", ParentID: &rootID},
		{CategoryID: otherID, Name: "Rent"},
	}
	expenses := []domain.Transaction{
		{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(100), Type: domain.Expense, CategoryID: &rootID},
		{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(40), Type: domain.Expense, CategoryID: &childID},
		{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(800), Type: domain.Expense, CategoryID: &otherID},
		{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(25), Type: domain.Expense},
	}

	suite.mockTxnRepo.On("FindByTypeInRange", ctx, domain.Expense, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(expenses, nil).Once()
	suite.mockCategoryRepo.On("ListCategories", ctx).Return(categories, nil).Once()

	rows, err := suite.service.ExpenseByCategory(ctx, domain.PeriodMonth)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal("Rent", rows[0].CategoryName)
	suite.True(rows[0].Total.Equal(decimal.NewFromInt(800)))
	suite.Equal("Utilities", rows[1].CategoryName)
	suite.True(rows[1].Total.Equal(decimal.NewFromInt(140)), "child total should roll up, got %s", rows[1].Total)
	suite.Equal("Uncategorized", rows[2].CategoryName)
	suite.True(rows[2].Total.Equal(decimal.NewFromInt(25)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_BucketsByMonth() {
	ctx := context.Background()
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		paid(domain.Income, 3000, march.AddDate(0, 0, 9)),
		paid(domain.Expense, 1000, march.AddDate(0, 0, 20)),
		paid(domain.Income, 3100, april.AddDate(0, 0, 9)),
		paid(domain.Expense, 900, may.AddDate(0, 0, 2)),
	}

	suite.mockTxnRepo.On("FindPaidInRange", ctx, march, mock.AnythingOfType("time.Time")).Return(txns, nil).Once()

	points, err := suite.service.CashFlow(ctx, 3)

	suite.Require().NoError(err)
	suite.Require().Len(points, 3)
	suite.True(points[0].Month.Equal(march))
	suite.True(points[0].Income.Equal(decimal.NewFromInt(3000)))
	suite.True(points[0].Expense.Equal(decimal.NewFromInt(1000)))
	suite.True(points[1].Income.Equal(decimal.NewFromInt(3100)))
	suite.True(points[1].Expense.IsZero())
	suite.True(points[2].Month.Equal(may))
	suite.True(points[2].Expense.Equal(decimal.NewFromInt(900)))
}

func (suite *ReportingServiceTestSuite) TestUpcoming_DefaultsWindow() {
	ctx := context.Background()
	today := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	pending := []domain.Transaction{
		{TransactionID: uuid.NewString(), Status: domain.StatusPending, DueDate: today.AddDate(0, 0, 2)},
	}

	suite.mockTxnRepo.On("FindPendingInRange", ctx, today, mock.MatchedBy(func(to time.Time) bool {
		return to.After(today.AddDate(0, 0, 7))
	})).Return(pending, nil).Once()

	txns, err := suite.service.Upcoming(ctx, 0)

	suite.Require().NoError(err)
	suite.Len(txns, 1)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
