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
	"github.com/koperasi-digital/koperasi-ledger/internal/utils/accounting"
)

var (
	ErrUnbalancedEntry   = fmt.Errorf("%w: entry debits and credits do not balance", apperrors.ErrValidation)
	ErrInsufficientLines = fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	ErrBothSidedLine     = fmt.Errorf("%w: line must have exactly one positive side", apperrors.ErrValidation)
	ErrInvalidAccount    = fmt.Errorf("%w: line references an unknown or inactive account", apperrors.ErrValidation)
	ErrInvalidState      = fmt.Errorf("%w: entry status does not allow this operation", apperrors.ErrConflict)
)

// journalService is the double-entry engine. All balance, line and
// numbering invariants are enforced here; callers cannot persist an entry
// that violates them.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	periodSvc   portssvc.PeriodSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, periodSvc portssvc.PeriodSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		periodSvc:   periodSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLines checks the structural invariants: at least two lines, each
// line single-sided with a positive amount, and debits equal to credits
// with a positive total.
func (s *journalService) validateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientLines, len(lines))
	}

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet { // both or neither
			return fmt.Errorf("%w: line %d (account %s)", ErrBothSidedLine, i+1, line.AccountCode)
		}
	}

	debits, credits := accounting.EntryTotals(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s, credits to %s", ErrUnbalancedEntry, debits.String(), credits.String())
	}
	if !debits.IsPositive() {
		return fmt.Errorf("%w: entry total must be positive", ErrUnbalancedEntry)
	}

	return nil
}

// validateAccounts checks that every referenced account exists and is
// active.
func (s *journalService) validateAccounts(ctx context.Context, lines []domain.JournalLine) error {
	codes := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountCode]; !ok {
			seen[line.AccountCode] = struct{}{}
			codes = append(codes, line.AccountCode)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, code := range codes {
		account, found := accounts[code]
		if !found {
			return fmt.Errorf("%w: account %s not found", ErrInvalidAccount, code)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", ErrInvalidAccount, code)
		}
	}
	return nil
}

// buildLines maps request lines to domain lines bound to the given entry.
func buildLines(reqLines []dto.CreateLineRequest, entryID, actorID string, now time.Time) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, req := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountCode: req.AccountCode,
			Debit:       req.Debit,
			Credit:      req.Credit,
			Description: req.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}
	return lines
}

// CreateEntry validates and persists a new journal entry. The save is
// all-or-nothing; a failed validation leaves no trace.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorActorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// A retried submission with the same idempotency key returns the entry
	// created by the first attempt instead of double-posting.
	if req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		existing, err := s.journalRepo.FindEntryByIdempotencyKey(ctx, *req.IdempotencyKey)
		if err == nil {
			logger.Info("Idempotent replay of entry creation", slog.String("entry_id", existing.EntryID), slog.String("idempotency_key", *req.IdempotencyKey))
			return s.withLines(ctx, existing)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	lines := buildLines(req.Lines, entryID, creatorActorID, now)

	if err := s.validateLines(lines); err != nil {
		return nil, err
	}
	if err := s.validateAccounts(ctx, lines); err != nil {
		return nil, err
	}

	// Hold the period's read lock until the entry is saved so a concurrent
	// close cannot slip between the check and the insert.
	release, err := s.periodSvc.AcquirePostingLock(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	status := domain.Draft
	if req.PostImmediately {
		status = domain.Posted
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		EntryDate:      req.Date,
		Description:    req.Description,
		Reference:      req.Reference,
		Status:         status,
		IdempotencyKey: req.IdempotencyKey,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}
	if err := s.journalRepo.SaveEntry(ctx, &entry, lines); err != nil {
		// A concurrent submission with the same key can win the race between
		// the pre-check and the insert; replay its entry instead of failing.
		if errors.Is(err, apperrors.ErrDuplicate) && req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
			winner, findErr := s.journalRepo.FindEntryByIdempotencyKey(ctx, *req.IdempotencyKey)
			if findErr == nil {
				logger.Info("Idempotent replay after concurrent entry creation", slog.String("entry_id", winner.EntryID), slog.String("idempotency_key", *req.IdempotencyKey))
				return s.withLines(ctx, winner)
			}
		}
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)),
	)
	entry.Lines = lines
	return &entry, nil
}

// PostEntry finalizes a draft entry. Posted entries are permanently
// immutable.
func (s *journalService) PostEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s, expected DRAFT", ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	release, err := s.periodSvc.AcquirePostingLock(ctx, entry.EntryDate)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.Posted, actorID, now); err != nil {
		logger.Error("Failed to post entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return s.withLines(ctx, entry)
}

// EditEntry replaces a draft entry's lines and header fields, re-running
// the full creation validation.
func (s *journalService) EditEntry(ctx context.Context, entryID string, req dto.EditEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s, expected DRAFT", ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	now := time.Now().UTC()
	lines := buildLines(req.Lines, entryID, actorID, now)

	if err := s.validateLines(lines); err != nil {
		return nil, err
	}
	if err := s.validateAccounts(ctx, lines); err != nil {
		return nil, err
	}

	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}

	release, err := s.periodSvc.AcquirePostingLock(ctx, entry.EntryDate)
	if err != nil {
		return nil, err
	}
	defer release()

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID

	if err := s.journalRepo.ReplaceEntryLines(ctx, *entry, lines); err != nil {
		logger.Error("Failed to edit entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to edit entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry edited", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	entry.Lines = lines
	return entry, nil
}

// DeleteEntry removes a draft entry. Posted and reversed entries are
// permanent.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status != domain.Draft {
		return fmt.Errorf("%w: entry %s is %s, expected DRAFT", ErrInvalidState, entry.EntryNumber, entry.Status)
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID), slog.String("actor", actorID))
	return nil
}

// ReverseEntry creates a new posted entry with every line's debit and
// credit swapped, dated at reversalDate, and marks the original REVERSED.
// Both writes happen in one database transaction; a failure leaves the
// original posted and unreversed.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, reversalDate time.Time, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s is %s, expected POSTED", ErrInvalidState, original.EntryNumber, original.Status)
	}
	if original.OriginalEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", ErrInvalidState, original.EntryNumber)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines of entry %s: %w", entryID, err)
	}

	release, err := s.periodSvc.AcquirePostingLock(ctx, reversalDate)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now().UTC()
	reversingID := uuid.NewString()

	reversing := domain.JournalEntry{
		EntryID:         reversingID,
		EntryDate:       reversalDate,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, original.Description),
		Reference:       original.Reference,
		Status:          domain.Posted,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	swapped := accounting.SwapSides(originalLines)
	reversingLines := make([]domain.JournalLine, len(swapped))
	for i, line := range swapped {
		reversingLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversingID,
			AccountCode: line.AccountCode,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}

	if err := s.journalRepo.SaveReversal(ctx, *original, &reversing, reversingLines); err != nil {
		logger.Error("Failed to save reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reverse entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversing_entry_id", reversing.EntryID),
		slog.String("reversing_entry_number", reversing.EntryNumber),
	)
	reversing.Lines = reversingLines
	return &reversing, nil
}

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return s.withLines(ctx, entry)
}

// ListEntries retrieves entry headers ordered by date descending.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.journalRepo.ListEntries(ctx, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// withLines populates the entry's lines.
func (s *journalService) withLines(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error) {
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines of entry %s: %w", entry.EntryID, err)
	}
	entry.Lines = lines
	return entry, nil
}
