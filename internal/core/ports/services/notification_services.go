package services

import (
	"context"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
)

// NotificationSvcFacade prepares upcoming-due-date notices. Content only;
// delivery is out of scope.
type NotificationSvcFacade interface {
	// BuildDueNotice renders an HTML notice for pending transactions due within
	// the next windowDays days.
	BuildDueNotice(ctx context.Context, windowDays int) (*domain.DueNotice, error)
}
