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

	"github.com/fincontrolapp/fincontrol_backend/internal/apperrors"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/services"
)

// --- Test Suite ---
type ProjectionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.ProjectionSvcFacade
	now      time.Time
	today    time.Time
}

func (suite *ProjectionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.now = time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC)
	suite.today = time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	suite.service = services.NewProjectionService(suite.mockRepo,
		services.WithProjectionClock(func() time.Time { return suite.now }))
}

func (suite *ProjectionServiceTestSuite) paidTxn(txnType domain.TransactionType, amount int64) domain.Transaction {
	paymentDate := suite.now.AddDate(0, -1, 0)
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        decimal.NewFromInt(amount),
		Type:          txnType,
		DueDate:       paymentDate,
		PaymentDate:   &paymentDate,
		Status:        domain.StatusPaid,
	}
}

func (suite *ProjectionServiceTestSuite) pendingTxn(txnType domain.TransactionType, amount int64, dueDate time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        decimal.NewFromInt(amount),
		Type:          txnType,
		DueDate:       dueDate,
		Status:        domain.StatusPending,
	}
}

// --- Test Cases ---

func (suite *ProjectionServiceTestSuite) TestProject_EmptyInputsYieldZeroSeries() {
	points, err := suite.service.Project(context.Background(), nil, nil, 30)

	suite.Require().NoError(err)
	suite.Require().Len(points, 31)
	suite.True(points[0].Date.Equal(suite.today))
	suite.True(points[30].Date.Equal(suite.today.AddDate(0, 0, 30)))
	for _, p := range points {
		suite.True(p.Income.IsZero())
		suite.True(p.Expense.IsZero())
		suite.True(p.Balance.IsZero())
	}
}

func (suite *ProjectionServiceTestSuite) TestProject_PaidHistorySetsFlatBalance() {
	paid := []domain.Transaction{
		suite.paidTxn(domain.Income, 1000),
		suite.paidTxn(domain.Expense, 300),
	}

	points, err := suite.service.Project(context.Background(), paid, nil, 30)

	suite.Require().NoError(err)
	suite.Require().Len(points, 31)
	want := decimal.NewFromInt(700)
	for _, p := range points {
		suite.True(p.Balance.Equal(want), "expected flat balance 700, got %s on %s", p.Balance, p.Date)
	}
}

func (suite *ProjectionServiceTestSuite) TestProject_PendingExpenseStepsBalanceDown() {
	paid := []domain.Transaction{suite.paidTxn(domain.Income, 1000)}
	pending := []domain.Transaction{
		suite.pendingTxn(domain.Expense, 250, suite.today.AddDate(0, 0, 5).Add(9*time.Hour)),
	}

	points, err := suite.service.Project(context.Background(), paid, pending, 30)

	suite.Require().NoError(err)
	suite.Require().Len(points, 31)
	before := decimal.NewFromInt(1000)
	after := decimal.NewFromInt(750)
	for i, p := range points {
		if i < 5 {
			suite.True(p.Balance.Equal(before), "day %d", i)
		} else {
			suite.True(p.Balance.Equal(after), "day %d", i)
		}
	}
	suite.True(points[5].Expense.Equal(decimal.NewFromInt(250)))
	suite.True(points[4].Expense.IsZero())
}

func (suite *ProjectionServiceTestSuite) TestProject_SameDayFlowsAccumulate() {
	day := suite.today.AddDate(0, 0, 3)
	pending := []domain.Transaction{
		suite.pendingTxn(domain.Income, 500, day),
		suite.pendingTxn(domain.Income, 200, day.Add(18*time.Hour)),
		suite.pendingTxn(domain.Expense, 100, day),
	}

	points, err := suite.service.Project(context.Background(), nil, pending, 10)

	suite.Require().NoError(err)
	suite.True(points[3].Income.Equal(decimal.NewFromInt(700)))
	suite.True(points[3].Expense.Equal(decimal.NewFromInt(100)))
	suite.True(points[3].Balance.Equal(decimal.NewFromInt(600)))
	suite.True(points[10].Balance.Equal(decimal.NewFromInt(600)))
}

func (suite *ProjectionServiceTestSuite) TestProject_OverdueAndTodayLandOnDayZero() {
	pending := []domain.Transaction{
		suite.pendingTxn(domain.Expense, 40, suite.today.AddDate(0, 0, -10)),
		suite.pendingTxn(domain.Expense, 60, suite.now),
	}

	points, err := suite.service.Project(context.Background(), nil, pending, 7)

	suite.Require().NoError(err)
	suite.True(points[0].Expense.Equal(decimal.NewFromInt(100)))
	suite.True(points[0].Balance.Equal(decimal.NewFromInt(-100)))
}

func (suite *ProjectionServiceTestSuite) TestProject_BeyondHorizonIgnored() {
	pending := []domain.Transaction{
		suite.pendingTxn(domain.Income, 999, suite.today.AddDate(0, 0, 31)),
	}

	points, err := suite.service.Project(context.Background(), nil, pending, 30)

	suite.Require().NoError(err)
	for _, p := range points {
		suite.True(p.Income.IsZero())
		suite.True(p.Balance.IsZero())
	}
}

func (suite *ProjectionServiceTestSuite) TestProject_DecimalAmountsStayExact() {
	cents := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		suite.Require().NoError(err)
		return d
	}
	pending := []domain.Transaction{
		{TransactionID: uuid.NewString(), Amount: cents("0.10"), Type: domain.Expense, DueDate: suite.today.AddDate(0, 0, 1), Status: domain.StatusPending},
		{TransactionID: uuid.NewString(), Amount: cents("0.20"), Type: domain.Expense, DueDate: suite.today.AddDate(0, 0, 2), Status: domain.StatusPending},
	}

	points, err := suite.service.Project(context.Background(), nil, pending, 3)

	suite.Require().NoError(err)
	suite.True(points[3].Balance.Equal(cents("-0.30")), "got %s", points[3].Balance)
}

func (suite *ProjectionServiceTestSuite) TestProject_InvalidHorizon() {
	_, err := suite.service.Project(context.Background(), nil, nil, 0)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Project(context.Background(), nil, nil, -5)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProjectionServiceTestSuite) TestBuildProjection_FetchesInputs() {
	ctx := context.Background()
	paid := []domain.Transaction{suite.paidTxn(domain.Income, 1000)}
	pending := []domain.Transaction{suite.pendingTxn(domain.Expense, 200, suite.today.AddDate(0, 0, 2))}

	suite.mockRepo.On("FindPaid", ctx).Return(paid, nil).Once()
	suite.mockRepo.On("FindPendingInRange", ctx, time.Time{}, mock.MatchedBy(func(to time.Time) bool {
		return to.After(suite.today.AddDate(0, 0, 30))
	})).Return(pending, nil).Once()

	points, err := suite.service.BuildProjection(ctx, 30)

	suite.Require().NoError(err)
	suite.Require().Len(points, 31)
	suite.True(points[0].Balance.Equal(decimal.NewFromInt(1000)))
	suite.True(points[30].Balance.Equal(decimal.NewFromInt(800)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProjectionServiceTestSuite) TestBuildProjection_PaidFetchError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindPaid", ctx).Return(nil, expectedErr).Once()

	points, err := suite.service.BuildProjection(ctx, 30)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(points)
}

func TestProjectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectionServiceTestSuite))
}
