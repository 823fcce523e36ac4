package dto

import (
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ScheduleRateRequest defines the payload for scheduling an interest rate.
type ScheduleRateRequest struct {
	ScopeRef        string                     `json:"scopeRef" binding:"required"`
	TransactionType domain.RateTransactionType `json:"transactionType" binding:"required,oneof=SAVINGS LOANS"`
	RatePercentage  decimal.Decimal            `json:"ratePercentage" binding:"required"`
	EffectiveDate   time.Time                  `json:"effectiveDate" binding:"required"`
}

// UpdateRateRequest defines the payload for editing a scheduled rate.
type UpdateRateRequest struct {
	RatePercentage *decimal.Decimal `json:"ratePercentage,omitempty"`
	EffectiveDate  *time.Time       `json:"effectiveDate,omitempty"`
}

// ResolveRateParams holds query parameters for resolving the active rate.
type ResolveRateParams struct {
	ScopeRef        string    `form:"scopeRef" binding:"required"`
	TransactionType string    `form:"transactionType" binding:"required,oneof=SAVINGS LOANS"`
	AsOf            time.Time `form:"asOf" time_format:"2006-01-02"`
}

// RateResponse defines the data returned for an interest rate.
type RateResponse struct {
	RateID          string                     `json:"rateID"`
	ScopeRef        string                     `json:"scopeRef"`
	TransactionType domain.RateTransactionType `json:"transactionType"`
	RatePercentage  decimal.Decimal            `json:"ratePercentage"`
	EffectiveDate   time.Time                  `json:"effectiveDate"`
	CreatedAt       time.Time                  `json:"createdAt"`
	CreatedBy       string                     `json:"createdBy"`
}

// ToRateResponse converts a domain.InterestRate to RateResponse.
func ToRateResponse(r *domain.InterestRate) RateResponse {
	return RateResponse{
		RateID:          r.RateID,
		ScopeRef:        r.ScopeRef,
		TransactionType: r.TransactionType,
		RatePercentage:  r.RatePercentage,
		EffectiveDate:   r.EffectiveDate,
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
	}
}

// ToRateResponses converts a slice of domain.InterestRate to responses.
func ToRateResponses(rates []domain.InterestRate) []RateResponse {
	responses := make([]RateResponse, len(rates))
	for i := range rates {
		responses[i] = ToRateResponse(&rates[i])
	}
	return responses
}
