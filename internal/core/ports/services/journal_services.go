package services

import (
	"context"
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
)

// JournalSvcFacade is the double-entry ledger boundary. Balance and
// numbering invariants are enforced here so no caller can persist an entry
// that violates double-entry bookkeeping.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a new journal entry, allocating the
	// next sequential entry number. Never partially persists.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorActorID string) (*domain.JournalEntry, error)

	// PostEntry finalizes a draft entry; it is immutable afterwards.
	PostEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)

	// EditEntry replaces a draft entry's lines and header fields, re-running
	// the same validation as CreateEntry.
	EditEntry(ctx context.Context, entryID string, req dto.EditEntryRequest, actorID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry.
	DeleteEntry(ctx context.Context, entryID string, actorID string) error

	// ReverseEntry creates the inverse of a posted entry dated at
	// reversalDate, marks the original REVERSED and links the two. The
	// reversal date must fall in an open period.
	ReverseEntry(ctx context.Context, entryID string, reversalDate time.Time, actorID string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry headers ordered by date descending.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, error)
}
