package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTransactionType scopes an interest rate to savings or loan pricing.
type RateTransactionType string

const (
	RateSavings RateTransactionType = "SAVINGS"
	RateLoans   RateTransactionType = "LOANS"
)

// InterestRate is an effective-dated rate. The rate in force for
// (scopeRef, transactionType) as of date D is the one with the greatest
// EffectiveDate <= D; ties resolve to the most recently created rate.
// Rates with a future EffectiveDate are scheduled and become active
// automatically once their date arrives. History is append-only so that
// "what rate applied on date X" can always be reconstructed.
type InterestRate struct {
	RateID          string              `json:"rateID"` // Primary Key (UUID)
	ScopeRef        string              `json:"scopeRef"`
	TransactionType RateTransactionType `json:"transactionType"`
	RatePercentage  decimal.Decimal     `json:"ratePercentage"` // 0..100
	EffectiveDate   time.Time           `json:"effectiveDate"`
	AuditFields
}
