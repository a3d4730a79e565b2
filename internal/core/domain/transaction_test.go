package domain_test

import (
	"testing"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        decimal.Decimal
	}{
		{
			name: "income keeps positive sign",
			transaction: domain.Transaction{
				Amount: decimal.NewFromFloat(150.25),
				Type:   domain.Income,
			},
			want: decimal.NewFromFloat(150.25),
		},
		{
			name: "expense is negated",
			transaction: domain.Transaction{
				Amount: decimal.NewFromFloat(99.90),
				Type:   domain.Expense,
			},
			want: decimal.NewFromFloat(-99.90),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.SignedAmount()
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTransaction_IsRecurring(t *testing.T) {
	tests := []struct {
		name       string
		recurrence domain.Recurrence
		want       bool
	}{
		{name: "once is not recurring", recurrence: domain.RecurrenceOnce, want: false},
		{name: "empty is not recurring", recurrence: "", want: false},
		{name: "monthly is recurring", recurrence: domain.RecurrenceMonthly, want: true},
		{name: "quarterly is recurring", recurrence: domain.RecurrenceQuarterly, want: true},
		{name: "yearly is recurring", recurrence: domain.RecurrenceYearly, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Recurrence: tt.recurrence}
			assert.Equal(t, tt.want, txn.IsRecurring())
		})
	}
}

func TestRecurrence_Months(t *testing.T) {
	assert.Equal(t, 0, domain.RecurrenceOnce.Months())
	assert.Equal(t, 1, domain.RecurrenceMonthly.Months())
	assert.Equal(t, 3, domain.RecurrenceQuarterly.Months())
	assert.Equal(t, 12, domain.RecurrenceYearly.Months())
}
