package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money in or money out.
// The stored amount is always a positive magnitude; the sign is carried here.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusPaid     TransactionStatus = "paid"
	StatusLate     TransactionStatus = "late"
	StatusCanceled TransactionStatus = "canceled"
)

// Recurrence describes how often a transaction repeats.
type Recurrence string

const (
	RecurrenceOnce      Recurrence = "once"
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceYearly    Recurrence = "yearly"
)

// Months returns the length of one recurrence period in calendar months,
// or 0 for non-recurring transactions.
func (r Recurrence) Months() int {
	switch r {
	case RecurrenceMonthly:
		return 1
	case RecurrenceQuarterly:
		return 3
	case RecurrenceYearly:
		return 12
	default:
		return 0
	}
}

// Transaction is a single financial obligation or receipt.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Description   string            `json:"description"`
	Amount        decimal.Decimal   `json:"amount"` // Positive magnitude
	Type          TransactionType   `json:"type"`
	CategoryID    *string           `json:"categoryID"` // FK -> Category, nullable
	DueDate       time.Time         `json:"dueDate"`    // Date the obligation is scheduled for
	PaymentDate   *time.Time        `json:"paymentDate"` // Present only when status is paid
	Status        TransactionStatus `json:"status"`
	Recurrence    Recurrence        `json:"recurrence"`
	// NextGenerationDate, once set, marks that this transaction has already
	// spawned its successor. It is never updated again for this record.
	NextGenerationDate *time.Time `json:"nextGenerationDate"`
	// ParentTransactionID links a generated transaction back to the one that
	// spawned it. Lineage only; the parent is not mutated by the child.
	ParentTransactionID *string `json:"parentTransactionID"`
	PaymentMethod       string  `json:"paymentMethod"`
	Notes               string  `json:"notes"`
	Department          string  `json:"department"`
	AuditFields
}

// IsRecurring reports whether the transaction repeats.
func (t Transaction) IsRecurring() bool {
	return t.Recurrence != "" && t.Recurrence != RecurrenceOnce
}

// SignedAmount returns the amount with the sign implied by the transaction type:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
