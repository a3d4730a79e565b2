package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionPoint is one day of the cash-flow forecast: the income and expense
// scheduled for that day plus the running balance after applying them.
type ProjectionPoint struct {
	Date    time.Time       `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// SummaryPeriod selects the reporting window for dashboard aggregates.
type SummaryPeriod string

const (
	PeriodWeek    SummaryPeriod = "week"
	PeriodMonth   SummaryPeriod = "month"
	PeriodQuarter SummaryPeriod = "quarter"
	PeriodYear    SummaryPeriod = "year"
)

// FinancialSummary backs the dashboard summary cards.
type FinancialSummary struct {
	Balance      decimal.Decimal `json:"balance"` // Realized balance, full history
	Income       decimal.Decimal `json:"income"`  // Paid income within the period
	Expense      decimal.Decimal `json:"expense"` // Paid expense within the period
	PendingCount int             `json:"pendingCount"` // Pending due in the next 7 days
}

// CategoryExpense is one slice of the expense-by-category report. Expenses in
// subcategories are rolled up to their root category.
type CategoryExpense struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// CashFlowPoint is one month of the income-vs-expense chart series.
type CashFlowPoint struct {
	Month   time.Time       `json:"month"` // First day of the month
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
