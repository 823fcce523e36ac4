package services

import (
	"context"
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
)

// PeriodSvcFacade is the accounting-period state machine boundary.
// Valid transitions: open->closed, closed->open, closed->locked,
// locked->closed (administrative override), open->deleted (empty only).
type PeriodSvcFacade interface {
	// OpenPeriod creates a new period in OPEN state. The range must not
	// overlap any existing period.
	OpenPeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorActorID string) (*domain.AccountingPeriod, error)

	// ClosePeriod transitions open->closed. Blocked while draft entries are
	// dated inside the period.
	ClosePeriod(ctx context.Context, periodID string, actorID string) error

	// ReopenPeriod transitions closed->open.
	ReopenPeriod(ctx context.Context, periodID string, actorID string) error

	// LockPeriod transitions closed->locked.
	LockPeriod(ctx context.Context, periodID string, actorID string) error

	// UnlockPeriod transitions locked->closed. Administrative override.
	UnlockPeriod(ctx context.Context, periodID string, actorID string) error

	// DeletePeriod removes an OPEN period containing zero entries.
	DeletePeriod(ctx context.Context, periodID string, actorID string) error

	// GetPeriod retrieves a period by id.
	GetPeriod(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error)

	// IsPostable reports whether the period containing the date exists and
	// is OPEN.
	IsPostable(ctx context.Context, date time.Time) (bool, error)

	// AcquirePostingLock checks that the date is postable and takes the
	// containing period's read lock so a concurrent close cannot race the
	// posting. The returned release function must be called once the posting
	// completes. Fails with ErrPeriodClosed or ErrNotFound.
	AcquirePostingLock(ctx context.Context, date time.Time) (release func(), err error)
}
