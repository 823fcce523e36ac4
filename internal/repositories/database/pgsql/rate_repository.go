package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
)

type PgxRateRepository struct {
	BaseRepository
}

// newPgxRateRepository creates a new repository for interest rate data.
func newPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

const rateColumns = `rate_id, scope_ref, transaction_type, rate_percentage, effective_date, created_at, created_by, last_updated_at, last_updated_by`

func scanRate(row pgx.Row) (*domain.InterestRate, error) {
	var rt domain.InterestRate
	err := row.Scan(
		&rt.RateID,
		&rt.ScopeRef,
		&rt.TransactionType,
		&rt.RatePercentage,
		&rt.EffectiveDate,
		&rt.CreatedAt,
		&rt.CreatedBy,
		&rt.LastUpdatedAt,
		&rt.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// SaveRate appends a new rate row; history is never overwritten.
func (r *PgxRateRepository) SaveRate(ctx context.Context, rate domain.InterestRate) error {
	query := `
		INSERT INTO interest_rates (` + rateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.RateID,
		rate.ScopeRef,
		rate.TransactionType,
		rate.RatePercentage,
		rate.EffectiveDate,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert interest rate", err)
	}
	return nil
}

// FindRateByID retrieves a rate by its unique identifier.
func (r *PgxRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.InterestRate, error) {
	query := `SELECT ` + rateColumns + ` FROM interest_rates WHERE rate_id = $1;`

	rate, err := scanRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find interest rate "+rateID, err)
	}
	return rate, nil
}

// ListRates retrieves the full rate history for (scopeRef, txnType).
func (r *PgxRateRepository) ListRates(ctx context.Context, scopeRef string, txnType domain.RateTransactionType) ([]domain.InterestRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM interest_rates
		WHERE scope_ref = $1 AND transaction_type = $2
		ORDER BY effective_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, scopeRef, txnType)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query interest rates", err)
	}
	defer rows.Close()

	rates := []domain.InterestRate{}
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan interest rate row", err)
		}
		rates = append(rates, *rate)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating interest rate rows", err)
	}
	return rates, nil
}

// UpdateRate rewrites a scheduled rate's percentage and effective date.
func (r *PgxRateRepository) UpdateRate(ctx context.Context, rate domain.InterestRate) error {
	query := `
		UPDATE interest_rates
		SET rate_percentage = $2,
		    effective_date = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE rate_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		rate.RateID,
		rate.RatePercentage,
		rate.EffectiveDate,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update interest rate "+rate.RateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("interest rate " + rate.RateID + " not found for update")
	}
	return nil
}

// DeleteRate removes a scheduled rate.
func (r *PgxRateRepository) DeleteRate(ctx context.Context, rateID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM interest_rates WHERE rate_id = $1;`, rateID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete interest rate "+rateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("interest rate " + rateID + " not found for delete")
	}
	return nil
}
