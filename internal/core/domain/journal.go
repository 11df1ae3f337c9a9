package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
// Draft is the only mutable state; Posted entries are immutable except for the
// transition to Reversed.
type EntryStatus string

const (
	EntryDraft           EntryStatus = "DRAFT"
	EntryPendingApproval EntryStatus = "PENDING_APPROVAL"
	EntryApproved        EntryStatus = "APPROVED"
	EntryPosted          EntryStatus = "POSTED"
	EntryRejected        EntryStatus = "REJECTED"
	EntryReversed        EntryStatus = "REVERSED"
)

// entryTransitions enumerates the legal entry status transitions.
var entryTransitions = map[EntryStatus][]EntryStatus{
	EntryDraft:           {EntryPendingApproval},
	EntryPendingApproval: {EntryApproved, EntryRejected},
	EntryApproved:        {EntryPosted, EntryRejected},
	EntryPosted:          {EntryReversed},
	EntryRejected:        {},
	EntryReversed:        {},
}

// CanTransitionTo reports whether the entry status machine allows from→to.
func (s EntryStatus) CanTransitionTo(to EntryStatus) bool {
	for _, next := range entryTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// SourceType identifies the domain event a journal entry originated from.
type SourceType string

const (
	SourceLoanDisbursement SourceType = "LOAN_DISBURSEMENT"
	SourceRepayment        SourceType = "REPAYMENT"
	SourceInterestAccrual  SourceType = "INTEREST_ACCRUAL"
	SourceFee              SourceType = "FEE"
	SourceProvision        SourceType = "PROVISION"
	SourceWriteOff         SourceType = "WRITE_OFF"
	SourceReversal         SourceType = "REVERSAL"
	SourceClosing          SourceType = "CLOSING"
	SourceManual           SourceType = "MANUAL"
	SourceSystem           SourceType = "SYSTEM"
)

// Valid reports whether the source type is a known origin event.
func (s SourceType) Valid() bool {
	switch s {
	case SourceLoanDisbursement, SourceRepayment, SourceInterestAccrual, SourceFee,
		SourceProvision, SourceWriteOff, SourceReversal, SourceClosing, SourceManual, SourceSystem:
		return true
	}
	return false
}

// JournalEntry is the atomic accounting transaction. An entry exclusively owns its
// ordered, non-empty set of lines and belongs to exactly one accounting period.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`
	EntryNumber     int64           `json:"entryNumber"` // unique, sequential, immutable once assigned
	Status          EntryStatus     `json:"status"`
	SourceType      SourceType      `json:"sourceType"`
	SourceReference string          `json:"sourceReference"` // free-text correlation id
	PeriodID        string          `json:"periodID"`        // resolved from EffectiveDate
	EffectiveDate   time.Time       `json:"effectiveDate"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"` // to functional currency, 1 when same
	Description     string          `json:"description"`
	Narrative       string          `json:"narrative"`

	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy     string     `json:"approvedBy,omitempty"`
	PostedAt       *time.Time `json:"postedAt,omitempty"`
	RejectedAt     *time.Time `json:"rejectedAt,omitempty"`
	RejectedReason string     `json:"rejectedReason,omitempty"`
	ReversedAt     *time.Time `json:"reversedAt,omitempty"`

	// Mutual back-references between an entry and its reversal.
	ReversalOfEntryID *string `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string `json:"reversedByEntryID,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one leg of an entry. Exactly one of Debit/Credit is non-zero.
type JournalLine struct {
	LineID        string          `json:"lineID"`
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	LoanReference string          `json:"loanReference,omitempty"`
	AuditFields
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
