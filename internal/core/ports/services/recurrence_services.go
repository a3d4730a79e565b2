package services

import (
	"context"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
)

// RecurrenceSvcFacade is the roll-forward engine: it materializes the next
// occurrence of paid recurring transactions, exactly once per parent.
type RecurrenceSvcFacade interface {
	// RollForward processes a batch of eligible transactions (paid, recurring,
	// no successor yet) and returns the number of successors generated. The
	// caller is responsible for passing only eligible transactions; the engine
	// does not re-filter.
	RollForward(ctx context.Context, eligible []domain.Transaction) (int, error)

	// GenerateDue fetches the currently eligible transactions and rolls them
	// forward. This is the entry point for the cron endpoint.
	GenerateDue(ctx context.Context) (int, error)
}
