package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	"github.com/koperasi-digital/koperasi-ledger/internal/utils/accounting"
)

func TestNormalBalanceFor(t *testing.T) {
	cases := []struct {
		accountType domain.AccountType
		want        domain.BalanceSide
	}{
		{domain.Asset, domain.Debit},
		{domain.Expense, domain.Debit},
		{domain.Liability, domain.Credit},
		{domain.Equity, domain.Credit},
		{domain.Revenue, domain.Credit},
	}
	for _, tc := range cases {
		got, err := accounting.NormalBalanceFor(tc.accountType)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "account type %s", tc.accountType)
	}

	_, err := accounting.NormalBalanceFor(domain.AccountType("CONTRA"))
	assert.Error(t, err)
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountCode: "1001", Debit: decimal.NewFromInt(70)},
		{AccountCode: "1201", Debit: decimal.NewFromInt(30)},
		{AccountCode: "2101", Credit: decimal.NewFromInt(100)},
	}

	debits, credits := accounting.EntryTotals(lines)

	assert.True(t, debits.Equal(decimal.NewFromInt(100)))
	assert.True(t, credits.Equal(decimal.NewFromInt(100)))
}

func TestSwapSides(t *testing.T) {
	original := []domain.JournalLine{
		{AccountCode: "1001", Debit: decimal.NewFromInt(500)},
		{AccountCode: "2101", Credit: decimal.NewFromInt(500)},
	}

	swapped := accounting.SwapSides(original)

	require.Len(t, swapped, 2)
	assert.True(t, swapped[0].Credit.Equal(decimal.NewFromInt(500)))
	assert.True(t, swapped[0].Debit.IsZero())
	assert.True(t, swapped[1].Debit.Equal(decimal.NewFromInt(500)))
	assert.True(t, swapped[1].Credit.IsZero())

	// Originals untouched.
	assert.True(t, original[0].Debit.Equal(decimal.NewFromInt(500)))
}
