package domain

import "time"

// PeriodStatus is the lifecycle state of an accounting period.
type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "OPEN"
	PeriodSoftClose PeriodStatus = "SOFT_CLOSE" // advisory, postings still allowed
	PeriodClosed    PeriodStatus = "CLOSED"
	PeriodLocked    PeriodStatus = "LOCKED" // terminal
)

// AcceptsPostings reports whether new entries may resolve to a period in this status.
func (s PeriodStatus) AcceptsPostings() bool {
	return s == PeriodOpen || s == PeriodSoftClose
}

// AccountingPeriod is one calendar month of a fiscal year.
// Periods within a fiscal year never overlap; they are created in batches of 12.
type AccountingPeriod struct {
	PeriodID     string       `json:"periodID"`
	FiscalYear   int          `json:"fiscalYear"`
	PeriodNumber int          `json:"periodNumber"` // 1..12
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"`
	Status       PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether the date falls within the period boundaries (inclusive).
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := date.UTC().Truncate(24 * time.Hour)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// periodTransitions enumerates the legal period status transitions.
// Reopen is the only backwards edge and is unavailable from Locked.
var periodTransitions = map[PeriodStatus][]PeriodStatus{
	PeriodOpen:      {PeriodSoftClose, PeriodClosed},
	PeriodSoftClose: {PeriodClosed, PeriodOpen},
	PeriodClosed:    {PeriodLocked, PeriodOpen},
	PeriodLocked:    {},
}

// CanTransitionTo reports whether the period status machine allows from→to.
func (s PeriodStatus) CanTransitionTo(to PeriodStatus) bool {
	for _, next := range periodTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
