package accounting

import (
	"github.com/meridianlend/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumLines returns the debit and credit totals of a line set.
func SumLines(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// RoundToPrecision rounds an amount half-up to the currency's minor-unit precision.
func RoundToPrecision(amount decimal.Decimal, decimalPlaces int32) decimal.Decimal {
	return amount.Round(decimalPlaces)
}

// DirectionalBalance computes the balance of an account from its debit and credit
// totals, honouring the account's normal balance side. A raw debit-minus-credit
// number is only correct for debit-normal accounts.
func DirectionalBalance(debitTotal, creditTotal decimal.Decimal, side domain.BalanceSide) decimal.Decimal {
	if side == domain.DebitSide {
		return debitTotal.Sub(creditTotal)
	}
	return creditTotal.Sub(debitTotal)
}

// MirrorLines produces the reversing line set for an entry: same accounts and
// amounts with debit and credit swapped. The result is fed back through the
// ordinary entry creation pipeline so a reversal is itself balance-checked.
func MirrorLines(lines []domain.JournalLine) []domain.JournalLine {
	mirrored := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		mirrored[i] = domain.JournalLine{
			AccountID:     line.AccountID,
			Debit:         line.Credit,
			Credit:        line.Debit,
			Description:   line.Description,
			LoanReference: line.LoanReference,
		}
	}
	return mirrored
}
