package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_number, entry_date, description, reference, status, original_entry_id, reversing_entry_id, idempotency_key, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_code, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.Description,
		&e.Reference,
		&e.Status,
		&e.OriginalEntryID,
		&e.ReversingEntryID,
		&e.IdempotencyKey,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanLine(row pgx.Row) (*domain.JournalLine, error) {
	var l domain.JournalLine
	err := row.Scan(
		&l.LineID,
		&l.EntryID,
		&l.AccountCode,
		&l.Debit,
		&l.Credit,
		&l.Description,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// insertEntryTx inserts an entry header within the given transaction,
// allocating the next entry number from the database sequence into
// entry.EntryNumber.
func (r *PgxJournalRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&seq); err != nil {
		return apperrors.NewAppError(500, "failed to allocate entry number", err)
	}
	entry.EntryNumber = fmt.Sprintf("JE-%06d", seq)

	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.Status,
		entry.OriginalEntryID,
		entry.ReversingEntryID,
		entry.IdempotencyKey,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		// Two concurrent submissions with the same idempotency key race past
		// the service's pre-check; the loser hits the partial unique index
		// and must be surfaced as a duplicate, not an internal error.
		if isUniqueViolation(err) && entry.IdempotencyKey != nil {
			return fmt.Errorf("%w: idempotency key already used", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// insertLinesTx batch-inserts the lines within the given transaction.
func (r *PgxJournalRepository) insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query,
			line.LineID,
			line.EntryID,
			line.AccountCode,
			line.Debit,
			line.Credit,
			line.Description,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert journal line", err)
		}
	}
	return nil
}

// SaveEntry persists an entry and its lines atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := r.insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its unique identifier.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}
	return entry, nil
}

// FindEntryByIdempotencyKey retrieves the entry previously created with the key.
func (r *PgxJournalRepository) FindEntryByIdempotencyKey(ctx context.Context, key string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE idempotency_key = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by idempotency key", err)
	}
	return entry, nil
}

// FindLinesByEntryID retrieves all lines of an entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY created_at, line_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		lines = append(lines, *line)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return lines, nil
}

// ListEntries retrieves entries newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		ORDER BY entry_date DESC, entry_number DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

// CountEntriesInRange counts entries dated within [start, end], optionally
// filtered to a single status.
func (r *PgxJournalRepository) CountEntriesInRange(ctx context.Context, start, end time.Time, status *domain.EntryStatus) (int, error) {
	query := `SELECT COUNT(*) FROM journal_entries WHERE entry_date >= $1 AND entry_date <= $2`
	args := []any{start, end}
	if status != nil {
		query += ` AND status = $3`
		args = append(args, *status)
	}
	query += `;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journal entries", err)
	}
	return count, nil
}

// UpdateEntryStatus transitions an entry's status.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, status, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entryID + " not found for update")
	}
	return nil
}

// ReplaceEntryLines swaps an entry's lines and header fields atomically.
func (r *PgxJournalRepository) ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE journal_entries
		SET entry_date = $2,
		    description = $3,
		    reference = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE entry_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entry.EntryID + " not found for update")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal lines", err)
	}
	if err := r.insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteEntry removes an entry and its lines atomically.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal lines", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entryID + " not found for delete")
	}
	return r.Commit(ctx, tx)
}

// SaveReversal persists the reversing entry with its lines and marks the
// original entry REVERSED in one database transaction.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, original domain.JournalEntry, reversing *domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := r.insertEntryTx(ctx, tx, reversing); err != nil {
		return err
	}
	if err := r.insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET status = $2,
		    reversing_entry_id = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE entry_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query,
		original.EntryID,
		domain.Reversed,
		reversing.EntryID,
		reversing.CreatedAt,
		reversing.CreatedBy,
		domain.Posted,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+original.EntryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Entry changed state since the service loaded it.
		return fmt.Errorf("%w: entry %s is no longer posted", apperrors.ErrConcurrency, original.EntryID)
	}
	return r.Commit(ctx, tx)
}
