package dto

import (
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateOnly = "2006-01-02"

// SummaryResponse backs the dashboard summary cards.
type SummaryResponse struct {
	Balance      decimal.Decimal `json:"balance"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	PendingCount int             `json:"pendingCount"`
	Period       string          `json:"period"`
}

// ProjectionPointResponse is one day of the cash-flow projection.
type ProjectionPointResponse struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ProjectionResponse is the full projection series.
type ProjectionResponse struct {
	HorizonDays int                       `json:"horizonDays"`
	Points      []ProjectionPointResponse `json:"points"`
}

// CategoryExpenseResponse is one slice of the expense-by-category report.
type CategoryExpenseResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// CashFlowPointResponse is one month of the income-vs-expense series.
type CashFlowPointResponse struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ToSummaryResponse converts a domain.FinancialSummary to its DTO.
func ToSummaryResponse(s *domain.FinancialSummary, period domain.SummaryPeriod) SummaryResponse {
	return SummaryResponse{
		Balance:      s.Balance,
		Income:       s.Income,
		Expense:      s.Expense,
		PendingCount: s.PendingCount,
		Period:       string(period),
	}
}

// ToProjectionResponse converts projection points to the response DTO.
func ToProjectionResponse(points []domain.ProjectionPoint, horizonDays int) ProjectionResponse {
	out := ProjectionResponse{
		HorizonDays: horizonDays,
		Points:      make([]ProjectionPointResponse, len(points)),
	}
	for i, p := range points {
		out.Points[i] = ProjectionPointResponse{
			Date:    p.Date.Format(dateOnly),
			Income:  p.Income,
			Expense: p.Expense,
			Balance: p.Balance,
		}
	}
	return out
}

// ToCategoryExpenseResponses converts category expense rows to their DTOs.
func ToCategoryExpenseResponses(rows []domain.CategoryExpense) []CategoryExpenseResponse {
	out := make([]CategoryExpenseResponse, len(rows))
	for i, r := range rows {
		out[i] = CategoryExpenseResponse{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Total:        r.Total,
		}
	}
	return out
}

// ToCashFlowPointResponses converts cash-flow chart points to their DTOs.
func ToCashFlowPointResponses(points []domain.CashFlowPoint) []CashFlowPointResponse {
	out := make([]CashFlowPointResponse, len(points))
	for i, p := range points {
		out[i] = CashFlowPointResponse{
			Month:   p.Month.Format("2006-01"),
			Income:  p.Income,
			Expense: p.Expense,
		}
	}
	return out
}
