package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fincontrolapp/fincontrol_backend/internal/apperrors"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/utils/dates"
)

// projectionService computes the day-by-day cash-flow forecast. The starting
// balance is the signed sum of the entire paid history; pending transactions
// are then applied on their due date, bucketed by UTC calendar day.
type projectionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
	now     func() time.Time
}

// ProjectionServiceOption is a functional option for configuring the projection service
type ProjectionServiceOption func(*projectionService)

// WithProjectionClock overrides the time source. Tests use this to pin "today".
func WithProjectionClock(now func() time.Time) ProjectionServiceOption {
	return func(s *projectionService) {
		s.now = now
	}
}

// NewProjectionService creates a new ProjectionService.
func NewProjectionService(txnRepo portsrepo.TransactionRepositoryFacade, options ...ProjectionServiceOption) portssvc.ProjectionSvcFacade {
	svc := &projectionService{
		txnRepo: txnRepo,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure projectionService implements the ProjectionSvcFacade interface
var _ portssvc.ProjectionSvcFacade = (*projectionService)(nil)

// BuildProjection fetches the inputs and delegates to Project. Pending
// transactions already overdue still land on day zero via Project's clamping,
// so the fetch window starts at the beginning of time.
func (s *projectionService) BuildProjection(ctx context.Context, horizonDays int) ([]domain.ProjectionPoint, error) {
	if horizonDays <= 0 {
		return nil, apperrors.NewAppError(400, "projection horizon must be positive", apperrors.ErrValidation)
	}

	paid, err := s.txnRepo.FindPaid(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch paid transactions for projection")
		return nil, fmt.Errorf("failed to fetch paid transactions: %w", err)
	}

	today := dates.StartOfDayUTC(s.now())
	horizonEnd := today.AddDate(0, 0, horizonDays).Add(24*time.Hour - time.Nanosecond)
	pending, err := s.txnRepo.FindPendingInRange(ctx, time.Time{}, horizonEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch pending transactions for projection")
		return nil, fmt.Errorf("failed to fetch pending transactions: %w", err)
	}

	return s.Project(ctx, paid, pending, horizonDays)
}

// Project is pure computation over the supplied transaction sets.
func (s *projectionService) Project(_ context.Context, paid, pending []domain.Transaction, horizonDays int) ([]domain.ProjectionPoint, error) {
	if horizonDays <= 0 {
		return nil, apperrors.NewAppError(400, "projection horizon must be positive", apperrors.ErrValidation)
	}

	currentBalance := decimal.Zero
	for _, txn := range paid {
		currentBalance = currentBalance.Add(txn.SignedAmount())
	}

	today := dates.StartOfDayUTC(s.now())

	// Bucket pending amounts by the UTC day they fall due. Anything overdue
	// or due later today is applied on day zero; anything past the horizon is
	// ignored.
	type dayFlow struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	flows := make(map[time.Time]dayFlow, len(pending))
	horizonEnd := today.AddDate(0, 0, horizonDays)
	for _, txn := range pending {
		day := dates.StartOfDayUTC(txn.DueDate)
		if day.Before(today) {
			day = today
		}
		if day.After(horizonEnd) {
			continue
		}
		flow := flows[day]
		switch txn.Type {
		case domain.Income:
			flow.income = flow.income.Add(txn.Amount)
		case domain.Expense:
			flow.expense = flow.expense.Add(txn.Amount)
		}
		flows[day] = flow
	}

	points := make([]domain.ProjectionPoint, 0, horizonDays+1)
	balance := currentBalance
	for offset := 0; offset <= horizonDays; offset++ {
		day := today.AddDate(0, 0, offset)
		flow := flows[day]
		balance = balance.Add(flow.income).Sub(flow.expense)
		points = append(points, domain.ProjectionPoint{
			Date:    day,
			Income:  flow.income,
			Expense: flow.expense,
			Balance: balance,
		})
	}

	return points, nil
}
