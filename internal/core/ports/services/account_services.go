package services

import (
	"context"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts registry boundary.
type AccountSvcFacade interface {
	// CreateAccount registers a new account in the chart of accounts.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorActorID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its unique code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByCodes retrieves multiple accounts keyed by code.
	GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// NormalBalanceOf returns the side on which the account's balance
	// ordinarily increases.
	NormalBalanceOf(ctx context.Context, code string) (domain.BalanceSide, error)

	// DeactivateAccount soft-disables an account; posting against it fails
	// afterwards but history referencing it is preserved.
	DeactivateAccount(ctx context.Context, code string, actorID string) error
}
