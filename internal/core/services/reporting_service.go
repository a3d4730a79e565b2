package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fincontrolapp/fincontrol_backend/internal/apperrors"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/utils/dates"
)

// pendingLookaheadDays is the window for the dashboard's pending counter.
const pendingLookaheadDays = 7

type reportingService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	now          func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the time source used to anchor report periods.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new ReportingService.
func NewReportingService(txnRepo portsrepo.TransactionRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// periodBounds returns the inclusive calendar window containing "now" for the
// given period. Weeks start on Sunday.
func (s *reportingService) periodBounds(period domain.SummaryPeriod) (time.Time, time.Time, error) {
	today := dates.StartOfDayUTC(s.now())
	var start, end time.Time
	switch period {
	case domain.PeriodWeek:
		start = today.AddDate(0, 0, -int(today.Weekday()))
		end = start.AddDate(0, 0, 7)
	case domain.PeriodMonth, "":
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	case domain.PeriodQuarter:
		quarterStartMonth := time.Month((int(today.Month())-1)/3*3 + 1)
		start = time.Date(today.Year(), quarterStartMonth, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 3, 0)
	case domain.PeriodYear:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}, apperrors.NewAppError(http.StatusBadRequest,
			fmt.Sprintf("unknown period %q", period), apperrors.ErrValidation)
	}
	return start, end.Add(-time.Nanosecond), nil
}

func (s *reportingService) Summary(ctx context.Context, period domain.SummaryPeriod) (*domain.FinancialSummary, error) {
	from, to, err := s.periodBounds(period)
	if err != nil {
		return nil, err
	}

	paidAll, err := s.txnRepo.FindPaid(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch paid transactions for summary")
		return nil, fmt.Errorf("failed to fetch paid transactions: %w", err)
	}

	balance := decimal.Zero
	for _, txn := range paidAll {
		balance = balance.Add(txn.SignedAmount())
	}

	paidInPeriod, err := s.txnRepo.FindPaidInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch period transactions for summary")
		return nil, fmt.Errorf("failed to fetch period transactions: %w", err)
	}

	income := decimal.Zero
	expense := decimal.Zero
	for _, txn := range paidInPeriod {
		switch txn.Type {
		case domain.Income:
			income = income.Add(txn.Amount)
		case domain.Expense:
			expense = expense.Add(txn.Amount)
		}
	}

	today := dates.StartOfDayUTC(s.now())
	pendingCount, err := s.txnRepo.CountPendingInRange(ctx, today, today.AddDate(0, 0, pendingLookaheadDays))
	if err != nil {
		s.LogError(ctx, err, "Failed to count pending transactions for summary")
		return nil, fmt.Errorf("failed to count pending transactions: %w", err)
	}

	return &domain.FinancialSummary{
		Balance:      balance,
		Income:       income,
		Expense:      expense,
		PendingCount: pendingCount,
	}, nil
}

// ExpenseByCategory sums the period's expenses per category, rolling
// subcategory totals up into their root category. Uncategorized expenses are
// reported under a synthetic "Uncategorized" slice.
func (s *reportingService) ExpenseByCategory(ctx context.Context, period domain.SummaryPeriod) ([]domain.CategoryExpense, error) {
	from, to, err := s.periodBounds(period)
	if err != nil {
		return nil, err
	}

	expenses, err := s.txnRepo.FindByTypeInRange(ctx, domain.Expense, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch expenses for category report")
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch categories for category report")
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	rootOf := make(map[string]string, len(categories))
	nameOf := make(map[string]string, len(categories))
	for _, c := range categories {
		nameOf[c.CategoryID] = c.Name
		if c.ParentID != nil {
			rootOf[c.CategoryID] = *c.ParentID
		} else {
			rootOf[c.CategoryID] = c.CategoryID
		}
	}

	totals := make(map[string]decimal.Decimal)
	for _, txn := range expenses {
		key := ""
		if txn.CategoryID != nil {
			root, known := rootOf[*txn.CategoryID]
			if !known {
				root = *txn.CategoryID
			}
			key = root
		}
		totals[key] = totals[key].Add(txn.Amount)
	}

	out := make([]domain.CategoryExpense, 0, len(totals))
	for id, total := range totals {
		name := nameOf[id]
		if id == "" {
			name = "Uncategorized"
		} else if name == "" {
			name = id
		}
		out = append(out, domain.CategoryExpense{
			CategoryID:   id,
			CategoryName: name,
			Total:        total,
		})
	}

	// Largest slice first, name as tiebreaker for a stable order.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out, nil
}

func (s *reportingService) CashFlow(ctx context.Context, months int) ([]domain.CashFlowPoint, error) {
	if months <= 0 {
		months = 6
	}
	if months > 36 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "cash flow window too large", apperrors.ErrValidation)
	}

	today := dates.StartOfDayUTC(s.now())
	currentMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := currentMonth.AddDate(0, -(months - 1), 0)
	to := currentMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	paid, err := s.txnRepo.FindPaidInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch transactions for cash flow")
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	points := make([]domain.CashFlowPoint, months)
	index := make(map[time.Time]int, months)
	for i := range points {
		month := from.AddDate(0, i, 0)
		points[i] = domain.CashFlowPoint{Month: month, Income: decimal.Zero, Expense: decimal.Zero}
		index[month] = i
	}

	for _, txn := range paid {
		month := time.Date(txn.DueDate.Year(), txn.DueDate.Month(), 1, 0, 0, 0, 0, time.UTC)
		i, ok := index[month]
		if !ok {
			continue
		}
		switch txn.Type {
		case domain.Income:
			points[i].Income = points[i].Income.Add(txn.Amount)
		case domain.Expense:
			points[i].Expense = points[i].Expense.Add(txn.Amount)
		}
	}

	return points, nil
}

func (s *reportingService) Upcoming(ctx context.Context, days int) ([]domain.Transaction, error) {
	if days <= 0 {
		days = pendingLookaheadDays
	}

	today := dates.StartOfDayUTC(s.now())
	to := today.AddDate(0, 0, days).Add(24*time.Hour - time.Nanosecond)
	txns, err := s.txnRepo.FindPendingInRange(ctx, today, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch upcoming transactions")
		return nil, fmt.Errorf("failed to fetch upcoming transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}
