package dto

import (
	"time"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload to create a transaction.
type CreateTransactionRequest struct {
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=income expense"`
	CategoryID    *string         `json:"categoryID"`
	DueDate       time.Time       `json:"dueDate" binding:"required"`
	PaymentDate   *time.Time      `json:"paymentDate"`
	Status        string          `json:"status" binding:"omitempty,oneof=pending paid late canceled"`
	Recurrence    string          `json:"recurrence" binding:"omitempty,oneof=once monthly quarterly yearly"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	Department    string          `json:"department"`
}

// UpdateTransactionRequest defines the payload to update a transaction's editable fields.
type UpdateTransactionRequest struct {
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=income expense"`
	CategoryID    *string         `json:"categoryID"`
	DueDate       time.Time       `json:"dueDate" binding:"required"`
	Status        string          `json:"status" binding:"omitempty,oneof=pending paid late canceled"`
	Recurrence    string          `json:"recurrence" binding:"omitempty,oneof=once monthly quarterly yearly"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	Department    string          `json:"department"`
}

// MarkPaidRequest defines the payload to mark a transaction as paid.
// PaymentDate defaults to today when omitted.
type MarkPaidRequest struct {
	PaymentDate *time.Time `json:"paymentDate"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID       string          `json:"transactionID"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type"`
	CategoryID          *string         `json:"categoryID,omitempty"`
	DueDate             time.Time       `json:"dueDate"`
	PaymentDate         *time.Time      `json:"paymentDate,omitempty"`
	Status              string          `json:"status"`
	Recurrence          string          `json:"recurrence"`
	NextGenerationDate  *time.Time      `json:"nextGenerationDate,omitempty"`
	ParentTransactionID *string         `json:"parentTransactionID,omitempty"`
	PaymentMethod       string          `json:"paymentMethod,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	Department          string          `json:"department,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ListTransactionsResponse is a page of transactions plus the token for the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       txn.TransactionID,
		Description:         txn.Description,
		Amount:              txn.Amount,
		Type:                string(txn.Type),
		CategoryID:          txn.CategoryID,
		DueDate:             txn.DueDate,
		PaymentDate:         txn.PaymentDate,
		Status:              string(txn.Status),
		Recurrence:          string(txn.Recurrence),
		NextGenerationDate:  txn.NextGenerationDate,
		ParentTransactionID: txn.ParentTransactionID,
		PaymentMethod:       txn.PaymentMethod,
		Notes:               txn.Notes,
		Department:          txn.Department,
		CreatedAt:           txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
