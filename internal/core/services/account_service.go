package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portsrepo "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/repositories"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
	"github.com/koperasi-digital/koperasi-ledger/internal/middleware"
	"github.com/koperasi-digital/koperasi-ledger/internal/utils/accounting"
)

var (
	ErrInactiveAccount   = fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	ErrNormalSideInvalid = fmt.Errorf("%w: normal balance does not match account type", apperrors.ErrValidation)
)

// accountService provides the chart-of-accounts registry operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account after validating that its declared
// normal balance agrees with the account type's conventional side.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorActorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	conventional, err := accounting.NormalBalanceFor(req.AccountType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.NormalBalance != conventional {
		return nil, fmt.Errorf("%w: %s accounts carry a %s normal balance", ErrNormalSideInvalid, req.AccountType, conventional)
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing account %s: %w", code, err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:          code,
		Name:          req.Name,
		AccountType:   req.AccountType,
		NormalBalance: req.NormalBalance,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("code", code), slog.String("type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByCode retrieves an account by code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByCodes retrieves multiple accounts keyed by code.
func (s *accountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves all registered accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// NormalBalanceOf returns the account's normal balance side.
func (s *accountService) NormalBalanceOf(ctx context.Context, code string) (domain.BalanceSide, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account.NormalBalance, nil
}

// DeactivateAccount soft-disables an account. The account remains in the
// registry so posted history referencing it stays resolvable.
func (s *accountService) DeactivateAccount(ctx context.Context, code string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", code, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s", ErrInactiveAccount, code)
	}

	if err := s.accountRepo.SetAccountActive(ctx, code, false, actorID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("code", code), slog.String("error", err.Error()))
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}

	logger.Info("Account deactivated", slog.String("code", code))
	return nil
}
