package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
	"github.com/koperasi-digital/koperasi-ledger/internal/middleware"
)

var (
	ErrInvalidTransition = fmt.Errorf("%w: invalid period transition", apperrors.ErrConflict)
	ErrPeriodClosed      = fmt.Errorf("%w: period does not accept postings", apperrors.ErrConflict)
	ErrPeriodOverlap     = fmt.Errorf("%w: period range overlaps an existing period", apperrors.ErrValidation)
	ErrPeriodHasDrafts   = fmt.Errorf("%w: period has unresolved draft entries", apperrors.ErrConflict)
	ErrPeriodNotEmpty    = fmt.Errorf("%w: period has journal entries", apperrors.ErrConflict)
)

// periodService implements the accounting-period state machine. Transitions
// are serialized against in-flight postings through per-period RW locks.
type periodService struct {
	periodRepo  portsrepo.PeriodRepositoryFacade
	journalRepo portsrepo.JournalReader
	locks       *periodLockManager
}

// NewPeriodService creates a new PeriodService. The journal reader is needed
// to guard closing (pending drafts) and deletion (any entries at all).
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, journalRepo portsrepo.JournalReader) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:  periodRepo,
		journalRepo: journalRepo,
		locks:       newPeriodLockManager(),
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// OpenPeriod creates a new period in OPEN state.
func (s *periodService) OpenPeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorActorID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date %s precedes start date %s", apperrors.ErrValidation,
			req.EndDate.Format("2006-01-02"), req.StartDate.Format("2006-01-02"))
	}

	if overlap, err := s.periodRepo.FindOverlappingPeriod(ctx, req.StartDate, req.EndDate); err == nil && overlap != nil {
		return nil, fmt.Errorf("%w: overlaps %s", ErrPeriodOverlap, overlap.Name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for overlapping periods: %w", err)
	}

	now := time.Now().UTC()
	period := domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save period: %w", err)
	}

	logger.Info("Accounting period opened", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

// ClosePeriod transitions open->closed. Closing is blocked while draft
// entries are dated inside the period: stranding drafts would make them
// permanently unpostable with no recovery path.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, actorID string) error {
	return s.transition(ctx, periodID, actorID, domain.PeriodOpen, domain.PeriodClosed, func(period *domain.AccountingPeriod) error {
		draft := domain.Draft
		count, err := s.journalRepo.CountEntriesInRange(ctx, period.StartDate, period.EndDate, &draft)
		if err != nil {
			return fmt.Errorf("failed to count draft entries in period %s: %w", period.Name, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %d draft entries dated in %s must be posted or deleted first", ErrPeriodHasDrafts, count, period.Name)
		}
		return nil
	})
}

// ReopenPeriod transitions closed->open.
func (s *periodService) ReopenPeriod(ctx context.Context, periodID string, actorID string) error {
	return s.transition(ctx, periodID, actorID, domain.PeriodClosed, domain.PeriodOpen, nil)
}

// LockPeriod transitions closed->locked. Locked periods reject all mutation
// until explicitly unlocked.
func (s *periodService) LockPeriod(ctx context.Context, periodID string, actorID string) error {
	return s.transition(ctx, periodID, actorID, domain.PeriodClosed, domain.PeriodLocked, nil)
}

// UnlockPeriod transitions locked->closed. Administrative override.
func (s *periodService) UnlockPeriod(ctx context.Context, periodID string, actorID string) error {
	return s.transition(ctx, periodID, actorID, domain.PeriodLocked, domain.PeriodClosed, nil)
}

// transition performs a guarded state change under the period's write lock.
func (s *periodService) transition(ctx context.Context, periodID, actorID string, from, to domain.PeriodStatus, guard func(*domain.AccountingPeriod) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	lock := s.locks.lockFor(periodID)
	lock.Lock()
	defer lock.Unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to find period %s: %w", periodID, err)
	}

	if period.Status != from {
		return fmt.Errorf("%w: %s -> %s not allowed, period %s is %s", ErrInvalidTransition, from, to, period.Name, period.Status)
	}

	if guard != nil {
		if err := guard(period); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	var closedAt *time.Time
	var closedBy *string
	if to == domain.PeriodClosed && from == domain.PeriodOpen {
		closedAt = &now
		closedBy = &actorID
	}

	if err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, to, closedAt, closedBy, actorID, now); err != nil {
		logger.Error("Failed to update period status", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to transition period %s to %s: %w", periodID, to, err)
	}

	logger.Info("Period transitioned",
		slog.String("period_id", periodID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("actor", actorID),
	)
	return nil
}

// DeletePeriod removes an OPEN period with zero journal entries of any
// status. Everything else is preserved.
func (s *periodService) DeletePeriod(ctx context.Context, periodID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	lock := s.locks.lockFor(periodID)
	lock.Lock()
	defer lock.Unlock()

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.Status != domain.PeriodOpen {
		return fmt.Errorf("%w: only open periods can be deleted, %s is %s", ErrInvalidTransition, period.Name, period.Status)
	}

	count, err := s.journalRepo.CountEntriesInRange(ctx, period.StartDate, period.EndDate, nil)
	if err != nil {
		return fmt.Errorf("failed to count entries in period %s: %w", period.Name, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d entries dated in %s", ErrPeriodNotEmpty, count, period.Name)
	}

	if err := s.periodRepo.DeletePeriod(ctx, periodID); err != nil {
		logger.Error("Failed to delete period", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete period %s: %w", periodID, err)
	}

	s.locks.forget(periodID)
	logger.Info("Period deleted", slog.String("period_id", periodID), slog.String("actor", actorID))
	return nil
}

// GetPeriod retrieves a period by id.
func (s *periodService) GetPeriod(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return period, nil
}

// ListPeriods retrieves all periods ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// IsPostable reports whether the period containing the date exists and is
// OPEN.
func (s *periodService) IsPostable(ctx context.Context, date time.Time) (bool, error) {
	period, err := s.periodRepo.FindPeriodByDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find period for date %s: %w", date.Format("2006-01-02"), err)
	}
	return period.Status == domain.PeriodOpen, nil
}

// AcquirePostingLock validates that the date falls in an open period and
// takes that period's read lock. The status is re-checked under the lock so
// a transition that won the write lock first is observed.
func (s *periodService) AcquirePostingLock(ctx context.Context, date time.Time) (func(), error) {
	period, err := s.periodRepo.FindPeriodByDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no accounting period contains %s", ErrPeriodClosed, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find period for date %s: %w", date.Format("2006-01-02"), err)
	}

	lock := s.locks.lockFor(period.PeriodID)
	lock.RLock()

	current, err := s.periodRepo.FindPeriodByID(ctx, period.PeriodID)
	if err != nil {
		lock.RUnlock()
		return nil, fmt.Errorf("failed to re-check period %s: %w", period.PeriodID, err)
	}
	if current.Status != domain.PeriodOpen {
		lock.RUnlock()
		return nil, fmt.Errorf("%w: period %s is %s", ErrPeriodClosed, current.Name, current.Status)
	}

	return lock.RUnlock, nil
}
