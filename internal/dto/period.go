package dto

import (
	"time"

	"github.com/meridianlend/ledger/internal/core/domain"
)

// CreateFiscalYearRequest defines the data needed to open a fiscal year.
type CreateFiscalYearRequest struct {
	FiscalYear int `json:"fiscalYear" binding:"required,gte=1900,lte=2200"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID     string    `json:"periodID"`
	FiscalYear   int       `json:"fiscalYear"`
	PeriodNumber int       `json:"periodNumber"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to PeriodResponse DTO.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		FiscalYear:   p.FiscalYear,
		PeriodNumber: p.PeriodNumber,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       string(p.Status),
	}
}

// ToPeriodResponses converts a slice of periods to DTOs.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	res := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		res[i] = ToPeriodResponse(&p)
	}
	return res
}

// YearEndClosingRequest triggers closing-entry generation for a fiscal year.
type YearEndClosingRequest struct {
	FiscalYear int `json:"fiscalYear" binding:"required,gte=1900,lte=2200"`
}
