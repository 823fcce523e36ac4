package dto

import (
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest defines a single journal line in a create/edit request.
// Exactly one of debit/credit must be strictly positive.
type CreateLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines the payload for creating a journal entry.
type CreateEntryRequest struct {
	Date            time.Time           `json:"date" binding:"required"`
	Description     string              `json:"description" binding:"required"`
	Reference       string              `json:"reference"`
	PostImmediately bool                `json:"postImmediately"`
	IdempotencyKey  *string             `json:"idempotencyKey,omitempty"`
	Lines           []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EditEntryRequest defines the payload for editing a draft entry. The lines
// replace the existing ones wholesale and are revalidated as on create.
type EditEntryRequest struct {
	Date        *time.Time          `json:"date,omitempty"`
	Description *string             `json:"description,omitempty"`
	Reference   *string             `json:"reference,omitempty"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest defines the payload for reversing a posted entry.
type ReverseEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
}

// ListEntriesParams holds pagination parameters for listing entries.
type ListEntriesParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string             `json:"entryID"`
	EntryNumber      string             `json:"entryNumber"`
	Date             time.Time          `json:"date"`
	Description      string             `json:"description"`
	Reference        string             `json:"reference"`
	Status           domain.EntryStatus `json:"status"`
	OriginalEntryID  *string            `json:"originalEntryID,omitempty"`
	ReversingEntryID *string            `json:"reversingEntryID,omitempty"`
	Lines            []LineResponse     `json:"lines,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountCode: l.AccountCode,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		Date:             e.EntryDate,
		Description:      e.Description,
		Reference:        e.Reference,
		Status:           e.Status,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of domain.JournalEntry to responses.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
