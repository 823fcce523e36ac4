package repositories

import (
	"context"
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves an entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByIdempotencyKey retrieves an entry previously created with
	// the given idempotency key, or ErrNotFound.
	FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of an entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves entries ordered by entry date descending.
	ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error)

	// CountEntriesInRange counts entries dated within [start, end],
	// optionally filtered to a single status.
	CountEntriesInRange(ctx context.Context, start, end time.Time, status *domain.EntryStatus) (int, error)
}

// JournalWriter defines write operations for journal entry data.
type JournalWriter interface {
	// SaveEntry persists an entry and its lines atomically, allocating the
	// next sequential entry number into entry.EntryNumber.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryStatus transitions an entry's status.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error

	// ReplaceEntryLines swaps an entry's lines and header fields atomically.
	// Only valid for draft entries; enforcement lives in the service.
	ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteEntry removes an entry and its lines atomically.
	DeleteEntry(ctx context.Context, entryID string) error

	// SaveReversal persists the reversing entry with its lines and marks the
	// original entry REVERSED in one database transaction. A failure leaves
	// the original untouched.
	SaveReversal(ctx context.Context, original domain.JournalEntry, reversing *domain.JournalEntry, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
