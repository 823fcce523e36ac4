package services

import (
	"context"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
)

// PostingSvcFacade is the single integration point external modules (savings,
// loans) use to record transactions. It maps transaction kinds to account
// templates, resolves applicable rates and delegates to the journal ledger.
type PostingSvcFacade interface {
	// SubmitTransaction turns a transaction intent into a balanced, posted
	// journal entry.
	SubmitTransaction(ctx context.Context, req dto.SubmitTransactionRequest, actorID string) (*domain.JournalEntry, error)
}
