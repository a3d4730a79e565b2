package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fincontrolapp/fincontrol_backend/internal/apperrors"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/dto"
)

type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	now          func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionClock overrides the time source used for audit fields and
// payment date defaulting.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) buildFromRequest(req dto.CreateTransactionRequest, creatorUserID string, now time.Time) (domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return domain.Transaction{}, apperrors.NewAppError(http.StatusBadRequest, "amount must be positive", apperrors.ErrValidation)
	}

	status := domain.TransactionStatus(req.Status)
	if status == "" {
		status = domain.StatusPending
	}
	recurrence := domain.Recurrence(req.Recurrence)
	if recurrence == "" {
		recurrence = domain.RecurrenceOnce
	}

	paymentDate := req.PaymentDate
	if status == domain.StatusPaid && paymentDate == nil {
		paymentDate = &now
	}
	if status != domain.StatusPaid {
		paymentDate = nil
	}

	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          domain.TransactionType(req.Type),
		CategoryID:    req.CategoryID,
		DueDate:       req.DueDate,
		PaymentDate:   paymentDate,
		Status:        status,
		Recurrence:    recurrence,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Department:    req.Department,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}, nil
}

func (s *transactionService) checkCategoryExists(ctx context.Context, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID); err != nil {
		return apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("category %s does not exist", *categoryID), apperrors.ErrValidation)
	}
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkCategoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	txn, err := s.buildFromRequest(req, creatorUserID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	txns, token, err := s.txnRepo.ListTransactions(ctx, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, token, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, updaterUserID string) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s for update: %w", transactionID, err)
	}

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "amount must be positive", apperrors.ErrValidation)
	}
	if err := s.checkCategoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	now := s.now()
	existing.Description = req.Description
	existing.Amount = req.Amount
	existing.Type = domain.TransactionType(req.Type)
	existing.CategoryID = req.CategoryID
	existing.DueDate = req.DueDate
	if req.Status != "" {
		existing.Status = domain.TransactionStatus(req.Status)
	}
	if req.Recurrence != "" {
		existing.Recurrence = domain.Recurrence(req.Recurrence)
	}
	existing.PaymentMethod = req.PaymentMethod
	existing.Notes = req.Notes
	existing.Department = req.Department
	if existing.Status != domain.StatusPaid {
		existing.PaymentDate = nil
	}
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = updaterUserID

	if err := s.txnRepo.UpdateTransaction(ctx, *existing); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	return existing, nil
}

// MarkPaid transitions a transaction to paid and stamps the payment date.
// Marking an already paid transaction again just refreshes the payment date.
func (s *transactionService) MarkPaid(ctx context.Context, transactionID string, req dto.MarkPaidRequest, updaterUserID string) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s to mark paid: %w", transactionID, err)
	}

	if existing.Status == domain.StatusCanceled {
		return nil, apperrors.NewAppError(http.StatusConflict, "canceled transactions cannot be marked paid", apperrors.ErrConflict)
	}

	now := s.now()
	paymentDate := req.PaymentDate
	if paymentDate == nil {
		paymentDate = &now
	}

	if err := s.txnRepo.UpdateStatus(ctx, transactionID, domain.StatusPaid, paymentDate, updaterUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark transaction paid", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to mark transaction %s paid: %w", transactionID, err)
	}

	existing.Status = domain.StatusPaid
	existing.PaymentDate = paymentDate
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = updaterUserID

	s.LogInfo(ctx, "Transaction marked paid", slog.String("transaction_id", transactionID))
	return existing, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if _, err := s.txnRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to find transaction %s for deletion: %w", transactionID, err)
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	return nil
}

// ImportTransactions validates every row and inserts the valid ones in a
// single batch. Row validation failures are reported per row and do not abort
// the import; a failing batch insert fails the whole import.
func (s *transactionService) ImportTransactions(ctx context.Context, req dto.ImportTransactionsRequest, creatorUserID string) (*dto.ImportResult, error) {
	now := s.now()
	result := &dto.ImportResult{}
	valid := make([]domain.Transaction, 0, len(req.Rows))

	// Resolve each referenced category once.
	categoryOK := make(map[string]bool)
	for i, row := range req.Rows {
		txn, err := s.buildFromRequest(row, creatorUserID, now)
		if err != nil {
			result.Rejected++
			result.Errors = append(result.Errors, dto.ImportRowError{Index: i, Reason: err.Error()})
			continue
		}
		if row.CategoryID != nil {
			ok, seen := categoryOK[*row.CategoryID]
			if !seen {
				ok = s.checkCategoryExists(ctx, row.CategoryID) == nil
				categoryOK[*row.CategoryID] = ok
			}
			if !ok {
				result.Rejected++
				result.Errors = append(result.Errors, dto.ImportRowError{Index: i, Reason: fmt.Sprintf("category %s does not exist", *row.CategoryID)})
				continue
			}
		}
		valid = append(valid, txn)
	}

	if len(valid) > 0 {
		if err := s.txnRepo.SaveTransactions(ctx, valid); err != nil {
			s.LogError(ctx, err, "Batch insert of imported transactions failed", slog.Int("batch_size", len(valid)))
			return nil, fmt.Errorf("failed to import transactions: %w", err)
		}
	}

	result.Imported = len(valid)
	s.LogInfo(ctx, "Transactions imported",
		slog.Int("imported", result.Imported),
		slog.Int("rejected", result.Rejected))
	return result, nil
}
