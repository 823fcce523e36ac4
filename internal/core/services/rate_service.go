package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
	"github.com/koperasi-digital/koperasi-ledger/internal/middleware"
)

var (
	ErrRateOutOfRange  = fmt.Errorf("%w: rate percentage must be between 0 and 100", apperrors.ErrValidation)
	ErrRateAlreadyLive = fmt.Errorf("%w: rate is already active and cannot be changed", apperrors.ErrConflict)
)

var hundred = decimal.NewFromInt(100)

// rateService provides effective-dated interest rate operations. The rate
// history is append-only so the rate applied on any past date can always be
// reconstructed for audit.
type rateService struct {
	rateRepo portsrepo.RateRepositoryFacade
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade) portssvc.RateSvcFacade {
	return &rateService{rateRepo: rateRepo}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// ScheduleRate appends a new rate. Rates effective in the future become
// active automatically once their date arrives; no activation step exists.
func (s *rateService) ScheduleRate(ctx context.Context, req dto.ScheduleRateRequest, creatorActorID string) (*domain.InterestRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	scopeRef := strings.TrimSpace(req.ScopeRef)
	if scopeRef == "" {
		return nil, fmt.Errorf("%w: scope reference is required", apperrors.ErrValidation)
	}
	if req.RatePercentage.IsNegative() || req.RatePercentage.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: got %s", ErrRateOutOfRange, req.RatePercentage.String())
	}

	now := time.Now().UTC()
	rate := domain.InterestRate{
		RateID:          uuid.NewString(),
		ScopeRef:        scopeRef,
		TransactionType: req.TransactionType,
		RatePercentage:  req.RatePercentage,
		EffectiveDate:   req.EffectiveDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		logger.Error("Failed to save interest rate", slog.String("scope_ref", scopeRef), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save rate: %w", err)
	}

	logger.Info("Interest rate scheduled",
		slog.String("rate_id", rate.RateID),
		slog.String("scope_ref", scopeRef),
		slog.String("type", string(rate.TransactionType)),
		slog.String("rate", rate.RatePercentage.String()),
		slog.Time("effective_date", rate.EffectiveDate),
	)
	return &rate, nil
}

// ResolveActiveRate returns the rate with the greatest effective date not
// after asOf for (scopeRef, txnType). Ties on effective date resolve to the
// most recently created rate.
func (s *rateService) ResolveActiveRate(ctx context.Context, scopeRef string, txnType domain.RateTransactionType, asOf time.Time) (*domain.InterestRate, error) {
	rates, err := s.rateRepo.ListRates(ctx, scopeRef, txnType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rate: %w", err)
	}
	rate := activeRate(rates, asOf)
	if rate == nil {
		return nil, fmt.Errorf("%w: no %s rate for %s as of %s", apperrors.ErrNotFound, txnType, scopeRef, asOf.Format("2006-01-02"))
	}
	return rate, nil
}

// activeRate picks the rate in force as of the given date, independent of
// input order: greatest effective date not after asOf, ties broken by most
// recent creation, then by id for rows created in the same instant.
func activeRate(rates []domain.InterestRate, asOf time.Time) *domain.InterestRate {
	var best *domain.InterestRate
	for i := range rates {
		candidate := &rates[i]
		if candidate.EffectiveDate.After(asOf) {
			continue
		}
		if best == nil || outranks(candidate, best) {
			best = candidate
		}
	}
	if best == nil {
		return nil
	}
	picked := *best
	return &picked
}

func outranks(candidate, best *domain.InterestRate) bool {
	if !candidate.EffectiveDate.Equal(best.EffectiveDate) {
		return candidate.EffectiveDate.After(best.EffectiveDate)
	}
	if !candidate.CreatedAt.Equal(best.CreatedAt) {
		return candidate.CreatedAt.After(best.CreatedAt)
	}
	return candidate.RateID > best.RateID
}

// ListRates returns the full rate history for (scopeRef, txnType).
func (s *rateService) ListRates(ctx context.Context, scopeRef string, txnType domain.RateTransactionType) ([]domain.InterestRate, error) {
	rates, err := s.rateRepo.ListRates(ctx, scopeRef, txnType)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return rates, nil
}

// UpdateRate edits a scheduled rate. Only rates whose effective date is
// strictly in the future may change; everything else is history.
func (s *rateService) UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest, actorID string) (*domain.InterestRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rate %s: %w", rateID, err)
	}

	if err := s.ensureNotLive(rate.RateID, rate.EffectiveDate); err != nil {
		return nil, err
	}

	updated := false
	if req.RatePercentage != nil {
		if req.RatePercentage.IsNegative() || req.RatePercentage.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: got %s", ErrRateOutOfRange, req.RatePercentage.String())
		}
		rate.RatePercentage = *req.RatePercentage
		updated = true
	}
	if req.EffectiveDate != nil {
		// The new date must stay in the future too; allowing a backdate
		// would rewrite what past resolutions returned.
		if err := s.ensureNotLive(rate.RateID, *req.EffectiveDate); err != nil {
			return nil, err
		}
		rate.EffectiveDate = *req.EffectiveDate
		updated = true
	}
	if !updated {
		return rate, nil
	}

	rate.LastUpdatedAt = time.Now().UTC()
	rate.LastUpdatedBy = actorID

	if err := s.rateRepo.UpdateRate(ctx, *rate); err != nil {
		logger.Error("Failed to update rate", slog.String("rate_id", rateID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update rate %s: %w", rateID, err)
	}

	logger.Info("Interest rate updated", slog.String("rate_id", rateID))
	return rate, nil
}

// DeleteRate removes a scheduled rate. Rates that have been active at any
// point stay in the history for audit.
func (s *rateService) DeleteRate(ctx context.Context, rateID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return fmt.Errorf("failed to find rate %s: %w", rateID, err)
	}

	if err := s.ensureNotLive(rate.RateID, rate.EffectiveDate); err != nil {
		return err
	}

	if err := s.rateRepo.DeleteRate(ctx, rateID); err != nil {
		logger.Error("Failed to delete rate", slog.String("rate_id", rateID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete rate %s: %w", rateID, err)
	}

	logger.Info("Interest rate deleted", slog.String("rate_id", rateID), slog.String("actor", actorID))
	return nil
}

func (s *rateService) ensureNotLive(rateID string, effectiveDate time.Time) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !effectiveDate.UTC().Truncate(24 * time.Hour).After(today) {
		return fmt.Errorf("%w: rate %s effective %s", ErrRateAlreadyLive, rateID, effectiveDate.Format("2006-01-02"))
	}
	return nil
}
