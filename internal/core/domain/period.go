package domain

import "time"

// PeriodStatus indicates the state of an accounting period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// AccountingPeriod is a non-overlapping date range that gates which entry
// dates currently accept postings. Only OPEN periods are postable.
type AccountingPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary Key (UUID)
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	ClosedAt  *time.Time   `json:"closedAt,omitempty"`
	ClosedBy  *string      `json:"closedBy,omitempty"`
	AuditFields
}

// Contains reports whether the given date falls inside the period range.
// Comparison is by calendar date in UTC.
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(p.StartDate)) && !d.After(truncateToDate(p.EndDate))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
