package dto

import (
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
)

// CreateAccountRequest defines the payload for registering a new account in
// the chart of accounts.
type CreateAccountRequest struct {
	Code          string             `json:"code" binding:"required"`
	Name          string             `json:"name" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance domain.BalanceSide `json:"normalBalance" binding:"required,oneof=DEBIT CREDIT"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	NormalBalance domain.BalanceSide `json:"normalBalance"`
	IsActive      bool               `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		Code:          a.Code,
		Name:          a.Name,
		AccountType:   a.AccountType,
		NormalBalance: a.NormalBalance,
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain.Account to responses.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
