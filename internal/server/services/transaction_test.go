package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

const (
	alice = "11111111-1111-1111-1111-111111111111"
	bob   = "22222222-2222-2222-2222-222222222222"
)

func TestTransactionService_CreateValidation(t *testing.T) {
	s := NewTransactionService(nil, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	cases := []TransactionInput{
		{Type: "transfer", Amount: 1, Category: "x", Date: day(2024, 1, 1)},
		{Type: models.TransactionExpense, Amount: 0, Category: "x", Date: day(2024, 1, 1)},
		{Type: models.TransactionExpense, Amount: -5, Category: "x", Date: day(2024, 1, 1)},
		{Type: models.TransactionExpense, Amount: 1, Category: "  ", Date: day(2024, 1, 1)},
		{Type: models.TransactionExpense, Amount: 1, Category: "x"},
	}
	for _, in := range cases {
		_, err := s.Create(ctx, alice, in)
		require.ErrorIs(t, err, common.ErrValidation, "%+v", in)
	}
}

func TestTransactionService_CrossUserIsolation(t *testing.T) {
	s := NewTransactionService(nil, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	mine, err := s.Create(ctx, alice, TransactionInput{Type: models.TransactionExpense, Amount: 12.5, Category: "Food", Date: day(2024, 3, 5)})
	require.NoError(t, err)
	assert.Equal(t, alice, mine.UserID)

	theirs, err := s.List(ctx, bob, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = s.Update(ctx, bob, mine.ID, models.TransactionPatch{Amount: ptr(1.0)})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, s.Delete(ctx, bob, mine.ID), common.ErrorNotFound)

	list, err := s.List(ctx, alice, ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 12.5, list[0].Amount)
}

func TestTransactionService_UpdateAndDelete(t *testing.T) {
	s := NewTransactionService(nil, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	tx, err := s.Create(ctx, alice, TransactionInput{Type: models.TransactionExpense, Amount: 10, Category: "Food", Date: day(2024, 3, 5)})
	require.NoError(t, err)

	_, err = s.Update(ctx, alice, tx.ID, models.TransactionPatch{Amount: ptr(-1.0)})
	require.ErrorIs(t, err, common.ErrValidation)

	income := models.TransactionIncome
	updated, err := s.Update(ctx, alice, tx.ID, models.TransactionPatch{Type: &income, Category: ptr(" Gift ")})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionIncome, updated.Type)
	assert.Equal(t, "Gift", updated.Category)

	_, err = s.Update(ctx, alice, "bogus", models.TransactionPatch{})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, s.Delete(ctx, alice, "bogus"), common.ErrorNotFound)

	require.NoError(t, s.Delete(ctx, alice, tx.ID))
}

func TestTransactionService_ListFilters(t *testing.T) {
	s := NewTransactionService(nil, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	for _, d := range []time.Time{day(2024, 2, 29), day(2024, 3, 1), day(2024, 3, 31), day(2024, 4, 1)} {
		_, err := s.Create(ctx, alice, TransactionInput{Type: models.TransactionExpense, Amount: 1, Category: "x", Date: d})
		require.NoError(t, err)
	}

	march, err := s.List(ctx, alice, ListQuery{Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Len(t, march, 2)

	inclusive, err := s.List(ctx, alice, ListQuery{From: ptr(day(2024, 3, 31)), To: ptr(day(2024, 4, 1))})
	require.NoError(t, err)
	assert.Len(t, inclusive, 2, "to date is inclusive")

	_, err = s.List(ctx, alice, ListQuery{Month: 13, Year: 2024})
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = s.List(ctx, alice, ListQuery{Month: 3})
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = s.List(ctx, alice, ListQuery{From: ptr(day(2024, 5, 1)), To: ptr(day(2024, 4, 1))})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestTransactionService_Summary(t *testing.T) {
	s := NewTransactionService(nil, repomanager.NewInMemoryRepositoryManager())
	ctx := context.Background()

	mustCreate := func(uid string, typ models.TransactionType, amount float64, cat string) {
		t.Helper()
		_, err := s.Create(ctx, uid, TransactionInput{Type: typ, Amount: amount, Category: cat, Date: day(2024, 3, 10)})
		require.NoError(t, err)
	}
	mustCreate(alice, models.TransactionIncome, 2000, "Salary")
	mustCreate(alice, models.TransactionExpense, 700, "Rent")
	mustCreate(alice, models.TransactionExpense, 300, "Food")
	mustCreate(bob, models.TransactionExpense, 999, "Rent")

	sum, err := s.Summary(ctx, alice, ListQuery{Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 2000.0, sum.TotalIncome)
	assert.Equal(t, 1000.0, sum.TotalExpenses)
	assert.Equal(t, 1000.0, sum.Balance)
	require.Len(t, sum.ExpensesByCategory, 2)
	assert.Equal(t, "Rent", sum.ExpensesByCategory[0].Category)
}

func TestListQuery_Resolve(t *testing.T) {
	f, err := ListQuery{From: ptr(time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)), To: ptr(day(2024, 3, 7))}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 5), f.From)
	assert.Equal(t, day(2024, 3, 8), f.Until)

	f, err = ListQuery{Month: 12, Year: 2024, From: ptr(day(2000, 1, 1))}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, day(2024, 12, 1), f.From)
	assert.Equal(t, day(2025, 1, 1), f.Until)

	f, err = ListQuery{}.Resolve()
	require.NoError(t, err)
	assert.True(t, f.From.IsZero() && f.Until.IsZero())
}
