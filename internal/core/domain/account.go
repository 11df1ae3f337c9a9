package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// BalanceSide indicates the side on which an account's balance is conventionally positive.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalSide returns the normal balance side for the category.
// Assets and Expenses carry debit balances; everything else carries credit.
func (c AccountCategory) NormalSide() BalanceSide {
	switch c {
	case Asset, Expense:
		return DebitSide
	default:
		return CreditSide
	}
}

// Valid reports whether the category is one of the five known categories.
func (c AccountCategory) Valid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountStatus is the lifecycle state of a GL account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN" // blocks new postings, preserves history
	AccountClosed AccountStatus = "CLOSED" // terminal, only reachable with zero history
)

// MaxAccountDepth is the deepest level permitted in the account hierarchy.
const MaxAccountDepth = 5

// Account is a node in the chart of accounts.
type Account struct {
	AccountID        string          `json:"accountID"`
	AccountCode      string          `json:"accountCode"` // unique, structured L1-L2L3[-NNN]
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Category         AccountCategory `json:"category"`
	NormalSide       BalanceSide     `json:"normalSide"` // derived from Category at creation
	CurrencyCode     string          `json:"currencyCode"`
	ParentAccountID  string          `json:"parentAccountID"` // empty for root accounts
	Level            int16           `json:"level"`           // 1..MaxAccountDepth, parent.Level+1
	Status           AccountStatus   `json:"status"`
	IsControlAccount bool            `json:"isControlAccount"`
	IsSystemAccount  bool            `json:"isSystemAccount"`
	AuditFields
}

// AccountAuditRecord is one append-only row of the account change log.
// Records are never updated or deleted.
type AccountAuditRecord struct {
	AuditID      string    `json:"auditID"`
	AccountID    string    `json:"accountID"`
	FieldChanged string    `json:"fieldChanged"`
	OldValue     string    `json:"oldValue"`
	NewValue     string    `json:"newValue"`
	ChangedBy    string    `json:"changedBy"`
	ChangedAt    time.Time `json:"changedAt"`
}

// AccountBalance is the result of a balance query over posted lines.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Balance     decimal.Decimal `json:"balance"` // direction-aware per NormalSide
}
