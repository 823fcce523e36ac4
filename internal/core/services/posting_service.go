package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
	"github.com/koperasi-digital/koperasi-ledger/internal/middleware"
)

// Well-known account codes of the cooperative's chart of accounts, seeded
// by migration.
const (
	AccountCash            = "1001" // Kas
	AccountLoansReceivable = "1201" // Piutang Pinjaman Anggota
	AccountMemberSavings   = "2101" // Simpanan Anggota
	AccountInterestIncome  = "4101" // Pendapatan Bunga Pinjaman
	AccountInterestExpense = "5101" // Beban Bunga Simpanan
)

var (
	ErrUnknownTransactionKind = fmt.Errorf("%w: unknown transaction kind", apperrors.ErrValidation)
	ErrNoRateScheduled        = fmt.Errorf("%w: no interest rate is scheduled", apperrors.ErrValidation)
	ErrAmountNotPositive      = fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
)

// postingService is the single integration point for the savings and loan
// modules. It maps transaction kinds to fixed account templates, resolves
// applicable interest rates and delegates to the journal ledger, so callers
// can never construct malformed or unbalanced entries.
type postingService struct {
	journalSvc portssvc.JournalSvcFacade
	rateSvc    portssvc.RateSvcFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(journalSvc portssvc.JournalSvcFacade, rateSvc portssvc.RateSvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		journalSvc: journalSvc,
		rateSvc:    rateSvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// SubmitTransaction turns a transaction intent into a balanced, posted
// journal entry.
func (s *postingService) SubmitTransaction(ctx context.Context, req dto.SubmitTransactionRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, req.Amount.String())
	}

	lines, description, err := s.buildTemplate(ctx, req)
	if err != nil {
		return nil, err
	}

	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateEntryRequest{
		Date:            req.Date,
		Description:     description,
		Reference:       req.Reference,
		PostImmediately: true,
		IdempotencyKey:  req.IdempotencyKey,
		Lines:           lines,
	}, actorID)
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction posted",
		slog.String("kind", req.Kind),
		slog.String("scope_ref", req.ScopeRef),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("amount", req.Amount.String()),
	)
	return entry, nil
}

// buildTemplate maps the transaction kind to its journal lines.
func (s *postingService) buildTemplate(ctx context.Context, req dto.SubmitTransactionRequest) ([]dto.CreateLineRequest, string, error) {
	switch req.Kind {
	case dto.KindSavingsDeposit:
		return []dto.CreateLineRequest{
			{AccountCode: AccountCash, Debit: req.Amount, Description: "Setoran simpanan " + req.ScopeRef},
			{AccountCode: AccountMemberSavings, Credit: req.Amount, Description: "Setoran simpanan " + req.ScopeRef},
		}, fmt.Sprintf("Savings deposit (%s)", req.ScopeRef), nil

	case dto.KindSavingsWithdrawal:
		return []dto.CreateLineRequest{
			{AccountCode: AccountMemberSavings, Debit: req.Amount, Description: "Penarikan simpanan " + req.ScopeRef},
			{AccountCode: AccountCash, Credit: req.Amount, Description: "Penarikan simpanan " + req.ScopeRef},
		}, fmt.Sprintf("Savings withdrawal (%s)", req.ScopeRef), nil

	case dto.KindSavingsInterestAccrual:
		rate, err := s.resolveRate(ctx, req.ScopeRef, domain.RateSavings, req)
		if err != nil {
			return nil, "", err
		}
		interest := interestPortion(req.Amount, rate.RatePercentage)
		if !interest.IsPositive() {
			return nil, "", fmt.Errorf("%w: %s%% of %s yields no interest", apperrors.ErrValidation, rate.RatePercentage.String(), req.Amount.String())
		}
		return []dto.CreateLineRequest{
			{AccountCode: AccountInterestExpense, Debit: interest, Description: "Bunga simpanan " + req.ScopeRef},
			{AccountCode: AccountMemberSavings, Credit: interest, Description: "Bunga simpanan " + req.ScopeRef},
		}, fmt.Sprintf("Savings interest accrual (%s, %s%%)", req.ScopeRef, rate.RatePercentage.String()), nil

	case dto.KindLoanDisbursement:
		return []dto.CreateLineRequest{
			{AccountCode: AccountLoansReceivable, Debit: req.Amount, Description: "Pencairan pinjaman " + req.ScopeRef},
			{AccountCode: AccountCash, Credit: req.Amount, Description: "Pencairan pinjaman " + req.ScopeRef},
		}, fmt.Sprintf("Loan disbursement (%s)", req.ScopeRef), nil

	case dto.KindInstallmentPayment:
		rate, err := s.resolveRate(ctx, req.ScopeRef, domain.RateLoans, req)
		if err != nil {
			return nil, "", err
		}
		interest := interestPortion(req.Amount, rate.RatePercentage)
		principal := req.Amount.Sub(interest)
		if !principal.IsPositive() {
			return nil, "", fmt.Errorf("%w: interest portion %s consumes the full payment %s", apperrors.ErrValidation, interest.String(), req.Amount.String())
		}
		lines := []dto.CreateLineRequest{
			{AccountCode: AccountCash, Debit: req.Amount, Description: "Angsuran pinjaman " + req.ScopeRef},
			{AccountCode: AccountLoansReceivable, Credit: principal, Description: "Pokok angsuran " + req.ScopeRef},
		}
		if interest.IsPositive() {
			lines = append(lines, dto.CreateLineRequest{
				AccountCode: AccountInterestIncome, Credit: interest, Description: "Bunga angsuran " + req.ScopeRef,
			})
		}
		return lines, fmt.Sprintf("Installment payment (%s, %s%% interest)", req.ScopeRef, rate.RatePercentage.String()), nil

	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownTransactionKind, req.Kind)
	}
}

func (s *postingService) resolveRate(ctx context.Context, scopeRef string, txnType domain.RateTransactionType, req dto.SubmitTransactionRequest) (*domain.InterestRate, error) {
	rate, err := s.rateSvc.ResolveActiveRate(ctx, scopeRef, txnType, req.Date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w for (%s, %s) as of %s", ErrNoRateScheduled, scopeRef, txnType, req.Date.Format("2006-01-02"))
		}
		return nil, err
	}
	return rate, nil
}

// interestPortion computes the interest part of an amount at the given
// percentage, rounded to 2 decimal places.
func interestPortion(amount, ratePercentage decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercentage).Div(hundred).Round(2)
}
