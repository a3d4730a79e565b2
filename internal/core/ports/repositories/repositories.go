package repositories

// RepositoryProvider aggregates the repositories needed to wire the service layer.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	UserRepo        UserRepositoryFacade
}
