package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/meridianlend/ledger/internal/utils/accounting"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSumLines(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: d("100.00")},
		{Credit: d("60.00")},
		{Credit: d("40.00")},
	}

	debits, credits := accounting.SumLines(lines)

	assert.True(t, debits.Equal(d("100.00")))
	assert.True(t, credits.Equal(d("100.00")))
}

func TestRoundToPrecision(t *testing.T) {
	cases := []struct {
		in       string
		places   int32
		expected string
	}{
		{"100.005", 2, "100.01"}, // half rounds up
		{"100.004", 2, "100.00"},
		{"100.5", 0, "101"},
		{"100.123456", 4, "100.1235"},
		{"100", 2, "100"},
	}
	for _, tc := range cases {
		got := accounting.RoundToPrecision(d(tc.in), tc.places)
		assert.True(t, got.Equal(d(tc.expected)), "%s @ %d places: got %s", tc.in, tc.places, got)
	}
}

func TestDirectionalBalance(t *testing.T) {
	debit := d("500.00")
	credit := d("120.00")

	assert.True(t, accounting.DirectionalBalance(debit, credit, domain.DebitSide).Equal(d("380.00")))
	assert.True(t, accounting.DirectionalBalance(debit, credit, domain.CreditSide).Equal(d("-380.00")))
}

func TestMirrorLines(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "a", Debit: d("1500.00"), Description: "disbursement", LoanReference: "L-42"},
		{AccountID: "b", Credit: d("1500.00")},
	}

	mirrored := accounting.MirrorLines(lines)

	assert.Len(t, mirrored, 2)
	assert.True(t, mirrored[0].Credit.Equal(d("1500.00")))
	assert.True(t, mirrored[0].Debit.IsZero())
	assert.Equal(t, "a", mirrored[0].AccountID)
	assert.Equal(t, "L-42", mirrored[0].LoanReference)
	assert.True(t, mirrored[1].Debit.Equal(d("1500.00")))

	// A mirror of a balanced set stays balanced.
	debits, credits := accounting.SumLines(mirrored)
	assert.True(t, debits.Equal(credits))
}
