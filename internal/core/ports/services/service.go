package services

// ServiceContainer bundles all service facades for route registration.
type ServiceContainer struct {
	Account AccountSvcFacade
	Journal JournalSvcFacade
	Period  PeriodSvcFacade
	Rate    RateSvcFacade
	Posting PostingSvcFacade
}
