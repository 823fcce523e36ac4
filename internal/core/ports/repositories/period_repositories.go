package repositories

import (
	"context"
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
)

// PeriodReader defines read operations for accounting periods.
type PeriodReader interface {
	// FindPeriodByID retrieves a period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodByDate retrieves the period whose range contains the date,
	// or ErrNotFound.
	FindPeriodByDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error)

	// FindOverlappingPeriod retrieves any period whose range intersects
	// [start, end], or ErrNotFound.
	FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting periods.
type PeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriodStatus transitions a period's status, recording who closed
	// it and when for CLOSED transitions.
	UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, closedAt *time.Time, closedBy *string, updatedBy string, updatedAt time.Time) error

	// DeletePeriod removes a period. Only valid for empty open periods;
	// enforcement lives in the service.
	DeletePeriod(ctx context.Context, periodID string) error
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
