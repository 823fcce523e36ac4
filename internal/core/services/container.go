package services

import (
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
)

// NewServiceContainer wires the repositories into the full service graph.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	periodSvc := NewPeriodService(repos.PeriodRepo, repos.JournalRepo)
	rateSvc := NewRateService(repos.RateRepo)
	journalSvc := NewJournalService(repos.JournalRepo, accountSvc, periodSvc)
	postingSvc := NewPostingService(journalSvc, rateSvc)

	return &portssvc.ServiceContainer{
		Account: accountSvc,
		Journal: journalSvc,
		Period:  periodSvc,
		Rate:    rateSvc,
		Posting: postingSvc,
	}
}
