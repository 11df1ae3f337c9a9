package dto

import (
	"time"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest is one leg of a posting request. Exactly one of Debit/Credit
// must be positive; the other must be absent or zero.
type CreateLineRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	LoanReference string          `json:"loanReference"`
}

// CreateEntryRequest is the posting request callers feed to the journal engine.
type CreateEntryRequest struct {
	SourceType      string              `json:"sourceType" binding:"required,sourcetype"`
	SourceReference string              `json:"sourceReference"`
	Description     string              `json:"description" binding:"required"`
	Narrative       string              `json:"narrative"`
	EffectiveDate   time.Time           `json:"effectiveDate" binding:"required" time_format:"2006-01-02"`
	CurrencyCode    string              `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate    *decimal.Decimal    `json:"exchangeRate"`
	Lines           []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
	AutoPost        bool                `json:"autoPost"`
	// AllowFrozen permits corrective entries touching frozen accounts at
	// creation time; the posting-time check remains binding.
	AllowFrozen bool `json:"allowFrozen"`
}

// RejectEntryRequest carries the rejection reason.
type RejectEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseEntryRequest carries the reversal reason.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID        string          `json:"lineID"`
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	LoanReference string          `json:"loanReference,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID           string          `json:"entryID"`
	EntryNumber       int64           `json:"entryNumber"`
	Status            string          `json:"status"`
	SourceType        string          `json:"sourceType"`
	SourceReference   string          `json:"sourceReference"`
	PeriodID          string          `json:"periodID"`
	EffectiveDate     time.Time       `json:"effectiveDate"`
	CurrencyCode      string          `json:"currencyCode"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	Description       string          `json:"description"`
	Narrative         string          `json:"narrative,omitempty"`
	ReversalOfEntryID *string         `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string         `json:"reversedByEntryID,omitempty"`
	Lines             []LineResponse  `json:"lines,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
	PostedAt          *time.Time      `json:"postedAt,omitempty"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse DTO.
func ToLineResponse(line *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:        line.LineID,
		EntryID:       line.EntryID,
		AccountID:     line.AccountID,
		Debit:         line.Debit,
		Credit:        line.Credit,
		Description:   line.Description,
		LoanReference: line.LoanReference,
	}
}

// ToLineResponses converts a slice of domain.JournalLine to DTOs.
func ToLineResponses(lines []domain.JournalLine) []LineResponse {
	res := make([]LineResponse, len(lines))
	for i, line := range lines {
		res[i] = ToLineResponse(&line)
	}
	return res
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		Status:            string(e.Status),
		SourceType:        string(e.SourceType),
		SourceReference:   e.SourceReference,
		PeriodID:          e.PeriodID,
		EffectiveDate:     e.EffectiveDate,
		CurrencyCode:      e.CurrencyCode,
		ExchangeRate:      e.ExchangeRate,
		Description:       e.Description,
		Narrative:         e.Narrative,
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		Lines:             ToLineResponses(e.Lines),
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		PostedAt:          e.PostedAt,
	}
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	PeriodID   string  `form:"periodID"`
	Status     string  `form:"status"`
	SourceType string  `form:"sourceType"`
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ListLinesParams defines query parameters for listing lines by account.
type ListLinesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListLinesResponse wraps a page of lines.
type ListLinesResponse struct {
	Lines     []LineResponse `json:"lines"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// PreviewEntryResponse is the dry-run result of a posting request: the computed
// lines and totals with no persistence.
type PreviewEntryResponse struct {
	Lines       []LineResponse  `json:"lines"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Delta       decimal.Decimal `json:"delta"`
	IsBalanced  bool            `json:"isBalanced"`
}
