package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/meridianlend/ledger/internal/core/domain"
)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPeriodStatusTransitions(t *testing.T) {
	cases := []struct {
		from    domain.PeriodStatus
		to      domain.PeriodStatus
		allowed bool
	}{
		{domain.PeriodOpen, domain.PeriodSoftClose, true},
		{domain.PeriodOpen, domain.PeriodClosed, true},
		{domain.PeriodOpen, domain.PeriodLocked, false},
		{domain.PeriodSoftClose, domain.PeriodClosed, true},
		{domain.PeriodSoftClose, domain.PeriodOpen, true},
		{domain.PeriodSoftClose, domain.PeriodLocked, false},
		{domain.PeriodClosed, domain.PeriodLocked, true},
		{domain.PeriodClosed, domain.PeriodOpen, true},
		{domain.PeriodLocked, domain.PeriodOpen, false},
		{domain.PeriodLocked, domain.PeriodClosed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPeriodAcceptsPostings(t *testing.T) {
	assert.True(t, domain.PeriodOpen.AcceptsPostings())
	assert.True(t, domain.PeriodSoftClose.AcceptsPostings())
	assert.False(t, domain.PeriodClosed.AcceptsPostings())
	assert.False(t, domain.PeriodLocked.AcceptsPostings())
}

func TestPeriodContains(t *testing.T) {
	period := domain.AccountingPeriod{
		StartDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, period.Contains(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.True(t, period.Contains(time.Date(2026, time.February, 14, 15, 4, 5, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAccountCategoryNormalSide(t *testing.T) {
	assert.Equal(t, domain.DebitSide, domain.Asset.NormalSide())
	assert.Equal(t, domain.DebitSide, domain.Expense.NormalSide())
	assert.Equal(t, domain.CreditSide, domain.Liability.NormalSide())
	assert.Equal(t, domain.CreditSide, domain.Equity.NormalSide())
	assert.Equal(t, domain.CreditSide, domain.Revenue.NormalSide())
}
