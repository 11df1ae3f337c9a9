package dto

import (
	"time"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a GL account.
// AccountCode is optional; when omitted the code is generated from the parent.
type CreateAccountRequest struct {
	Name             string  `json:"name" binding:"required"`
	Category         string  `json:"category" binding:"required,accountcategory"`
	CurrencyCode     string  `json:"currencyCode" binding:"required,len=3"`
	ParentAccountID  *string `json:"parentAccountID"`
	AccountCode      *string `json:"accountCode"`
	Description      string  `json:"description"`
	IsControlAccount bool    `json:"isControlAccount"`
	IsSystemAccount  bool    `json:"isSystemAccount"`
}

// UpdateAccountRequest defines the fields allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided. System
// accounts accept only Name and Description.
type UpdateAccountRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	IsControlAccount *bool   `json:"isControlAccount"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string    `json:"accountID"`
	AccountCode      string    `json:"accountCode"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	NormalSide       string    `json:"normalSide"`
	CurrencyCode     string    `json:"currencyCode"`
	ParentAccountID  string    `json:"parentAccountID"`
	Level            int16     `json:"level"`
	Status           string    `json:"status"`
	IsControlAccount bool      `json:"isControlAccount"`
	IsSystemAccount  bool      `json:"isSystemAccount"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        string    `json:"createdBy"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy    string    `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		AccountCode:      acc.AccountCode,
		Name:             acc.Name,
		Description:      acc.Description,
		Category:         string(acc.Category),
		NormalSide:       string(acc.NormalSide),
		CurrencyCode:     acc.CurrencyCode,
		ParentAccountID:  acc.ParentAccountID,
		Level:            acc.Level,
		Status:           string(acc.Status),
		IsControlAccount: acc.IsControlAccount,
		IsSystemAccount:  acc.IsSystemAccount,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// BalanceQueryParams defines query parameters for a balance query.
type BalanceQueryParams struct {
	AsOfDate        *time.Time `form:"asOfDate" time_format:"2006-01-02"`
	PeriodID        string     `form:"periodID"`
	IncludeChildren bool       `form:"includeChildren"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	NormalSide  string          `json:"normalSide"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Balance     decimal.Decimal `json:"balance"`
}

// AuditRecordResponse defines one row of an account's change log.
type AuditRecordResponse struct {
	AuditID      string    `json:"auditID"`
	AccountID    string    `json:"accountID"`
	FieldChanged string    `json:"fieldChanged"`
	OldValue     string    `json:"oldValue"`
	NewValue     string    `json:"newValue"`
	ChangedBy    string    `json:"changedBy"`
	ChangedAt    time.Time `json:"changedAt"`
}

// ToAuditRecordResponses converts audit records to DTOs.
func ToAuditRecordResponses(records []domain.AccountAuditRecord) []AuditRecordResponse {
	res := make([]AuditRecordResponse, len(records))
	for i, rec := range records {
		res[i] = AuditRecordResponse{
			AuditID:      rec.AuditID,
			AccountID:    rec.AccountID,
			FieldChanged: rec.FieldChanged,
			OldValue:     rec.OldValue,
			NewValue:     rec.NewValue,
			ChangedBy:    rec.ChangedBy,
			ChangedAt:    rec.ChangedAt,
		}
	}
	return res
}

// TrialBalanceRow is one account line of the trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse wraps the trial balance rows with ledger-wide totals.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRow `json:"rows"`
	DebitTotal  decimal.Decimal   `json:"debitTotal"`
	CreditTotal decimal.Decimal   `json:"creditTotal"`
	IsBalanced  bool              `json:"isBalanced"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
