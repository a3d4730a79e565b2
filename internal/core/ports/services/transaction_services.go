package services

import (
	"context"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	"github.com/fincontrolapp/fincontrol_backend/internal/dto"
)

// TransactionSvcFacade exposes transaction CRUD, the paid transition and the
// batch importer.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, updaterUserID string) (*domain.Transaction, error)
	MarkPaid(ctx context.Context, transactionID string, req dto.MarkPaidRequest, updaterUserID string) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	ImportTransactions(ctx context.Context, req dto.ImportTransactionsRequest, creatorUserID string) (*dto.ImportResult, error)
}
