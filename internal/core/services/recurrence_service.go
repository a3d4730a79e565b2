package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/utils/dates"
)

// recurrenceService rolls paid recurring transactions forward: it computes the
// next occurrence's due date and materializes a pending successor, at most once
// per parent. The next_generation_date column on the parent is the
// idempotency guard; it is written before the successor batch so that a crash
// between the two writes can only lose a successor, never duplicate one.
//
// There is no cross-run locking. Two runs racing over the same eligible parent
// are serialized only by the repository's compare-and-set on the guard column.
type recurrenceService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
	now     func() time.Time
}

// RecurrenceServiceOption is a functional option for configuring the recurrence service
type RecurrenceServiceOption func(*recurrenceService)

// WithRecurrenceClock overrides the time source. Tests use this to pin "now".
func WithRecurrenceClock(now func() time.Time) RecurrenceServiceOption {
	return func(s *recurrenceService) {
		s.now = now
	}
}

// NewRecurrenceService creates a new RecurrenceService.
func NewRecurrenceService(txnRepo portsrepo.TransactionRepositoryFacade, options ...RecurrenceServiceOption) portssvc.RecurrenceSvcFacade {
	svc := &recurrenceService{
		txnRepo: txnRepo,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure recurrenceService implements the RecurrenceSvcFacade interface
var _ portssvc.RecurrenceSvcFacade = (*recurrenceService)(nil)

// GenerateDue fetches the eligible transactions and rolls them forward.
func (s *recurrenceService) GenerateDue(ctx context.Context) (int, error) {
	eligible, err := s.txnRepo.FindEligibleForRollForward(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch transactions eligible for roll-forward")
		return 0, fmt.Errorf("failed to fetch eligible transactions: %w", err)
	}
	return s.RollForward(ctx, eligible)
}

// RollForward processes a batch of eligible transactions. Eligibility
// filtering (recurrence, status, missing guard) is the caller's query's
// responsibility; the engine trusts its input.
func (s *recurrenceService) RollForward(ctx context.Context, eligible []domain.Transaction) (int, error) {
	now := s.now()
	successors := make([]domain.Transaction, 0, len(eligible))

	for _, txn := range eligible {
		if txn.DueDate.IsZero() {
			// Malformed input: skip this transaction, keep processing the rest.
			s.LogWarn(ctx, "Skipping roll-forward for transaction with invalid due date",
				slog.String("transaction_id", txn.TransactionID))
			continue
		}

		months := txn.Recurrence.Months()
		if months == 0 {
			s.LogWarn(ctx, "Skipping roll-forward for non-recurring transaction",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("recurrence", string(txn.Recurrence)))
			continue
		}

		nextDate := dates.AddMonthsClamped(txn.DueDate, months)

		// Only generate if the next occurrence lies strictly in the future.
		// The parent stays untouched and remains eligible for a later run.
		if !nextDate.After(now) {
			s.LogInfo(ctx, "Next occurrence not in the future, skipping",
				slog.String("transaction_id", txn.TransactionID),
				slog.Time("next_date", nextDate))
			continue
		}

		parentID := txn.TransactionID
		successor := domain.Transaction{
			TransactionID:       uuid.NewString(),
			Description:         txn.Description,
			Amount:              txn.Amount,
			Type:                txn.Type,
			CategoryID:          txn.CategoryID,
			DueDate:             nextDate,
			Status:              domain.StatusPending,
			Recurrence:          txn.Recurrence,
			ParentTransactionID: &parentID,
			PaymentMethod:       txn.PaymentMethod,
			Notes:               txn.Notes,
			Department:          txn.Department,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     txn.CreatedBy,
				LastUpdatedAt: now,
				LastUpdatedBy: txn.CreatedBy,
			},
		}

		// Mark the parent first. If this write lands and the batch insert
		// later fails, the parent is marked generated with no successor:
		// the safer failure direction compared to duplicate generation.
		if err := s.txnRepo.SetNextGenerationDate(ctx, txn.TransactionID, nextDate, txn.CreatedBy, now); err != nil {
			s.LogError(ctx, err, "Failed to set next generation date on parent",
				slog.String("transaction_id", txn.TransactionID))
			return 0, fmt.Errorf("failed to mark parent %s as generated: %w", txn.TransactionID, err)
		}

		successors = append(successors, successor)
	}

	if len(successors) == 0 {
		return 0, nil
	}

	// All successors go in one batch write with all-or-nothing semantics.
	if err := s.txnRepo.SaveTransactions(ctx, successors); err != nil {
		s.LogError(ctx, err, "Batch insert of generated transactions failed",
			slog.Int("batch_size", len(successors)))
		return 0, fmt.Errorf("failed to insert generated transactions: %w", err)
	}

	s.LogInfo(ctx, "Recurring transactions generated", slog.Int("generated_count", len(successors)))
	return len(successors), nil
}
