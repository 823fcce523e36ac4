package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, name, start_date, end_date, status, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (*domain.AccountingPeriod, error) {
	var p domain.AccountingPeriod
	err := row.Scan(
		&p.PeriodID,
		&p.Name,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.ClosedAt,
		&p.ClosedBy,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePeriod persists a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	query := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		period.PeriodID,
		period.Name,
		period.StartDate,
		period.EndDate,
		period.Status,
		period.ClosedAt,
		period.ClosedBy,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert accounting period", err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its unique identifier.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1;`

	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find accounting period "+periodID, err)
	}
	return period, nil
}

// FindPeriodByDate retrieves the period whose range contains the date.
func (r *PgxPeriodRepository) FindPeriodByDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE start_date <= $1 AND end_date >= $1;
	`
	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find accounting period by date", err)
	}
	return period, nil
}

// FindOverlappingPeriod retrieves any period whose range intersects [start, end].
func (r *PgxPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE start_date <= $2 AND end_date >= $1
		LIMIT 1;
	`
	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find overlapping accounting period", err)
	}
	return period, nil
}

// ListPeriods retrieves all periods ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounting periods", err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accounting period row", err)
		}
		periods = append(periods, *period)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accounting period rows", err)
	}
	return periods, nil
}

// UpdatePeriodStatus transitions a period's status.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, closedAt *time.Time, closedBy *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE accounting_periods
		SET status = $2,
		    closed_at = $3,
		    closed_by = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE period_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, periodID, status, closedAt, closedBy, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update accounting period "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accounting period " + periodID + " not found for update")
	}
	return nil
}

// DeletePeriod removes a period.
func (r *PgxPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounting_periods WHERE period_id = $1;`, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete accounting period "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accounting period " + periodID + " not found for delete")
	}
	return nil
}
