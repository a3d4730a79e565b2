package repositories

import (
	"context"
	"time"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
)

// ListTransactionsFilter narrows a transaction listing. Nil/zero fields are
// not applied. Conjunction semantics: every set field must match.
type ListTransactionsFilter struct {
	Status  *domain.TransactionStatus
	Type    *domain.TransactionType
	Search  string // Case-insensitive substring match on description
	DueFrom *time.Time
	DueTo   *time.Time
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated list of transactions ordered by
	// due date descending. It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindEligibleForRollForward retrieves paid recurring transactions that have not yet
	// generated a successor, ordered by due date ascending.
	FindEligibleForRollForward(ctx context.Context) ([]domain.Transaction, error)

	// FindPendingInRange retrieves pending transactions with a due date inside [from, to],
	// ordered by due date ascending.
	FindPendingInRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)

	// FindPaid retrieves every paid transaction regardless of date. The realized balance
	// is cumulative over the full history, so this is intentionally unbounded.
	FindPaid(ctx context.Context) ([]domain.Transaction, error)

	// FindPaidInRange retrieves paid transactions with a due date inside [from, to].
	FindPaidInRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)

	// FindByTypeInRange retrieves transactions of one type with a due date inside [from, to],
	// regardless of status.
	FindByTypeInRange(ctx context.Context, txnType domain.TransactionType, from, to time.Time) ([]domain.Transaction, error)

	// CountPendingInRange counts pending transactions due inside [from, to].
	CountPendingInRange(ctx context.Context, from, to time.Time) (int, error)

	// CountByCategory counts transactions referencing the given category.
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a single new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions persists a batch of new transactions in one call with
	// all-or-nothing failure semantics.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// UpdateTransaction updates the editable fields of a transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateStatus transitions a transaction's status, optionally setting the payment date.
	UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, paymentDate *time.Time, updatedBy string, updatedAt time.Time) error

	// SetNextGenerationDate marks a parent transaction as already rolled forward.
	// The write only applies while next_generation_date is still NULL; a second
	// attempt returns ErrDuplicate.
	SetNextGenerationDate(ctx context.Context, transactionID string, next time.Time, updatedBy string, updatedAt time.Time) error

	// DeleteTransaction removes a transaction.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
