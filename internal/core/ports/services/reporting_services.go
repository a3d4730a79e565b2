package services

import (
	"context"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
)

// ReportingSvcFacade exposes the dashboard and report aggregations.
type ReportingSvcFacade interface {
	// Summary computes the dashboard cards: realized balance (full history),
	// paid income/expense within the period, and the count of pending
	// transactions due in the next seven days.
	Summary(ctx context.Context, period domain.SummaryPeriod) (*domain.FinancialSummary, error)

	// ExpenseByCategory groups the period's expenses by root category;
	// subcategory totals roll up to their parent.
	ExpenseByCategory(ctx context.Context, period domain.SummaryPeriod) ([]domain.CategoryExpense, error)

	// CashFlow returns a month-by-month income/expense series covering the
	// last months calendar months including the current one.
	CashFlow(ctx context.Context, months int) ([]domain.CashFlowPoint, error)

	// Upcoming lists pending transactions due within the next days days,
	// ordered by due date.
	Upcoming(ctx context.Context, days int) ([]domain.Transaction, error)
}
