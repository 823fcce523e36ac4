package dto

import (
	"time"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
)

// CreatePeriodRequest defines the payload for opening an accounting period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID  string              `json:"periodID"`
	Name      string              `json:"name"`
	StartDate time.Time           `json:"startDate"`
	EndDate   time.Time           `json:"endDate"`
	Status    domain.PeriodStatus `json:"status"`
	ClosedAt  *time.Time          `json:"closedAt,omitempty"`
	ClosedBy  *string             `json:"closedBy,omitempty"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to PeriodResponse.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
		ClosedAt:  p.ClosedAt,
		ClosedBy:  p.ClosedBy,
	}
}

// ToPeriodResponses converts a slice of domain.AccountingPeriod to responses.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}
