package services

import (
	"context"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
)

// ProjectionSvcFacade is the cash-flow projection engine.
type ProjectionSvcFacade interface {
	// Project computes a day-by-day balance forecast from already-fetched
	// transaction sets. It performs no I/O. horizonDays must be positive;
	// the result has horizonDays+1 points starting today.
	Project(ctx context.Context, paid, pending []domain.Transaction, horizonDays int) ([]domain.ProjectionPoint, error)

	// BuildProjection fetches the paid history and the pending transactions in
	// the horizon window, then delegates to Project.
	BuildProjection(ctx context.Context, horizonDays int) ([]domain.ProjectionPoint, error)
}
