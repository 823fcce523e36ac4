package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of at
// least two lines. Posted entries are immutable; corrections go through
// reversal entries that swap every line's debit and credit.
type JournalEntry struct {
	EntryID          string        `json:"entryID"`     // Primary Key (UUID)
	EntryNumber      string        `json:"entryNumber"` // Sequential human-readable number (JE-000001)
	EntryDate        time.Time     `json:"entryDate"`   // Date the event occurred; must fall in an open period
	Description      string        `json:"description"`
	Reference        string        `json:"reference"` // External reference (member no, loan no, ...)
	Status           EntryStatus   `json:"status"`
	OriginalEntryID  *string       `json:"originalEntryID,omitempty"`  // Set on reversal entries, points at the entry being reversed
	ReversingEntryID *string       `json:"reversingEntryID,omitempty"` // Set on reversed entries, points at the reversal
	IdempotencyKey   *string       `json:"idempotencyKey,omitempty"`
	Lines            []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single line within a journal entry, affecting one account.
// Exactly one of Debit/Credit is strictly positive, the other is zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary Key (UUID)
	EntryID     string          `json:"entryID"` // FK -> JournalEntry.EntryID
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}
