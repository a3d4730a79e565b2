package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table row shape.
// Nullable columns are pointers so scans preserve NULL.
type Transaction struct {
	TransactionID       string
	Description         string
	Amount              decimal.Decimal
	Type                string
	CategoryID          *string
	DueDate             time.Time
	PaymentDate         *time.Time
	Status              string
	Recurrence          string
	NextGenerationDate  *time.Time
	ParentTransactionID *string
	PaymentMethod       string
	Notes               string
	Department          string
	AuditFields
}
