package repositories

import (
	"context"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
)

// RateReader defines read operations for effective-dated interest rates.
// Point-in-time resolution is a service concern built on ListRates.
type RateReader interface {
	// FindRateByID retrieves a rate by its unique identifier.
	FindRateByID(ctx context.Context, rateID string) (*domain.InterestRate, error)

	// ListRates retrieves the full rate history for (scopeRef, txnType),
	// newest effective date first.
	ListRates(ctx context.Context, scopeRef string, txnType domain.RateTransactionType) ([]domain.InterestRate, error)
}

// RateWriter defines write operations for effective-dated interest rates.
type RateWriter interface {
	// SaveRate appends a new rate; prior history is never overwritten.
	SaveRate(ctx context.Context, rate domain.InterestRate) error

	// UpdateRate rewrites a scheduled rate's percentage and effective date.
	UpdateRate(ctx context.Context, rate domain.InterestRate) error

	// DeleteRate removes a scheduled rate.
	DeleteRate(ctx context.Context, rateID string) error
}

// RateRepositoryFacade combines all rate repository interfaces.
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
