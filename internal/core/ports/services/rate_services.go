package services

import (
	"context"
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
)

// RateSvcFacade is the effective-dated interest rate boundary.
type RateSvcFacade interface {
	// ScheduleRate appends a new rate to the history. Rates effective in the
	// future become active automatically once their date arrives.
	ScheduleRate(ctx context.Context, req dto.ScheduleRateRequest, creatorActorID string) (*domain.InterestRate, error)

	// ResolveActiveRate returns the rate in force as of the given date, or
	// ErrNotFound when none qualifies.
	ResolveActiveRate(ctx context.Context, scopeRef string, txnType domain.RateTransactionType, asOf time.Time) (*domain.InterestRate, error)

	// ListRates returns the full history for (scopeRef, txnType), newest
	// effective date first.
	ListRates(ctx context.Context, scopeRef string, txnType domain.RateTransactionType) ([]domain.InterestRate, error)

	// UpdateRate edits a rate that is not yet active (future effective date).
	UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest, actorID string) (*domain.InterestRate, error)

	// DeleteRate removes a rate that is not yet active.
	DeleteRate(ctx context.Context, rateID string, actorID string) error
}
