package services

import (
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.CategoryRepo)
	container.Recurrence = NewRecurrenceService(repos.TransactionRepo)
	container.Projection = NewProjectionService(repos.TransactionRepo)
	container.Reporting = NewReportingService(repos.TransactionRepo, repos.CategoryRepo)

	// The notice builder reuses the reporting service's upcoming query.
	container.Notification = NewNotificationService(repos.TransactionRepo, repos.CategoryRepo, container.Reporting)

	return container
}
