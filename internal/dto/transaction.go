package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds accepted by the posting orchestrator.
const (
	KindSavingsDeposit         = "savings_deposit"
	KindSavingsWithdrawal      = "savings_withdrawal"
	KindSavingsInterestAccrual = "savings_interest_accrual"
	KindLoanDisbursement       = "loan_disbursement"
	KindInstallmentPayment     = "installment_payment"
)

// SubmitTransactionRequest defines the payload external modules use to post
// a transaction. Callers never construct journal lines themselves; the
// orchestrator maps the kind to an account template.
type SubmitTransactionRequest struct {
	Kind           string            `json:"kind" binding:"required,oneof=savings_deposit savings_withdrawal savings_interest_accrual loan_disbursement installment_payment"`
	ScopeRef       string            `json:"scopeRef" binding:"required"`
	Date           time.Time         `json:"date" binding:"required"`
	Amount         decimal.Decimal   `json:"amount" binding:"required"`
	Reference      string            `json:"reference"`
	IdempotencyKey *string           `json:"idempotencyKey,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}
