package domain

import "time"

// PeriodStatus indicates whether a fiscal period accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FiscalPeriod is a date range a company may post into while it is open.
// Periods for one company are contiguous and non-overlapping; they are never
// deleted once a journal entry references them.
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"`  // Primary Key (UUID)
	CompanyID string       `json:"companyID"` // FK -> companies.company_id (Not Null)
	Name      string       `json:"name"`      // e.g. "2026-04"
	StartDate time.Time    `json:"startDate"` // Inclusive
	EndDate   time.Time    `json:"endDate"`   // Inclusive
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// Covers reports whether the given date falls inside the period (date-granular,
// boundary days included).
func (p FiscalPeriod) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate.Truncate(24*time.Hour)) && !d.After(p.EndDate.Truncate(24*time.Hour))
}
