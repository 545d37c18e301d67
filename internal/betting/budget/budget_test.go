package budget_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/smart-betting-dashboard/internal/betting/budget"
	"github.com/radieske/smart-betting-dashboard/internal/betting/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNew_RejectsNegativeTotal(t *testing.T) {
	_, err := budget.New(d("-1"), ledger.New(nil))
	assert.ErrorIs(t, err, budget.ErrInvalidBudget)
}

func TestAvailableTracksLedger(t *testing.T) {
	l := ledger.New(nil)
	acc, err := budget.New(d("100000"), l)
	require.NoError(t, err)

	_, err = l.Toggle("Team 1", d("2.40"), d("1000"), 0, acc)
	require.NoError(t, err)
	assert.True(t, d("99000").Equal(acc.Available()))

	_, err = l.Toggle("Team 1", d("2.40"), d("1000"), 0, acc)
	require.NoError(t, err)
	assert.True(t, d("100000").Equal(acc.Available()))
}

func TestSetTotalBudget_InvalidKeepsPrevious(t *testing.T) {
	acc, err := budget.New(d("100000"), ledger.New(nil))
	require.NoError(t, err)

	for _, in := range []string{"-5", "abc", "", "1,000"} {
		prev, err := acc.SetTotalBudget(in)
		assert.ErrorIs(t, err, budget.ErrInvalidBudget, in)
		assert.True(t, d("100000").Equal(prev), "rollback value for %q", in)
		assert.True(t, d("100000").Equal(acc.Total()))
	}

	got, err := acc.SetTotalBudget("0")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.True(t, acc.Total().IsZero())
}

func TestAvailableInvariantAfterSetTotal(t *testing.T) {
	l := ledger.New(nil)
	acc, err := budget.New(d("500"), l)
	require.NoError(t, err)
	_, err = l.Toggle("Team 2", d("15"), d("300"), 0, acc)
	require.NoError(t, err)

	_, err = acc.SetTotalBudget("1200.75")
	require.NoError(t, err)
	assert.True(t, acc.Total().Sub(l.TotalCommitted()).Equal(acc.Available()))
	assert.True(t, d("900.75").Equal(acc.Available()))
}

func TestLoweringBelowCommittedIsAllowed(t *testing.T) {
	l := ledger.New(nil)
	acc, err := budget.New(d("1000"), l)
	require.NoError(t, err)
	_, err = l.Toggle("Team 1", d("1.6"), d("800"), 0, acc)
	require.NoError(t, err)

	require.NoError(t, acc.SetTotal(d("500")))
	assert.True(t, d("-300").Equal(acc.Available()))
	assert.True(t, acc.Overcommitted())

	st := acc.State()
	assert.True(t, st.Overcommitted)
	assert.True(t, d("800").Equal(st.Committed))
	assert.True(t, d("160").Equal(st.UsedPercent), "got %s", st.UsedPercent)

	_, err = l.Toggle("Team 2", d("2"), d("1"), 0, acc)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBudget)
}

func TestUsedPercent(t *testing.T) {
	l := ledger.New(nil)
	acc, err := budget.New(d("100000"), l)
	require.NoError(t, err)
	assert.True(t, acc.UsedPercent().IsZero())

	_, err = l.Toggle("Team 1", d("2"), d("2500"), 0, acc)
	require.NoError(t, err)
	assert.True(t, d("2.5").Equal(acc.UsedPercent()), "got %s", acc.UsedPercent())

	require.NoError(t, acc.SetTotal(decimal.Zero))
	assert.True(t, acc.UsedPercent().IsZero())
}
