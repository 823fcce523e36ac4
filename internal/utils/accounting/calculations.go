package accounting

import (
	"fmt"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalBalanceFor returns the conventional balance side for an account type.
// ASSET/EXPENSE balances increase on the debit side, LIABILITY/EQUITY/REVENUE
// on the credit side.
func NormalBalanceFor(accountType domain.AccountType) (domain.BalanceSide, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return domain.Debit, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return domain.Credit, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// EntryTotals sums the debit and credit sides of a set of lines.
func EntryTotals(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// SwapSides returns a copy of the lines with every debit and credit
// exchanged. Used to build reversal entries.
func SwapSides(lines []domain.JournalLine) []domain.JournalLine {
	swapped := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		swapped[i] = line
		swapped[i].Debit = line.Credit
		swapped[i].Credit = line.Debit
	}
	return swapped
}
