package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	JournalRepo JournalRepositoryFacade
	PeriodRepo  PeriodRepositoryFacade
	RateRepo    RateRepositoryFacade
}
