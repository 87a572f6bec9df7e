package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	store := NewStore()
	accounts := NewAccountRepository(store)
	ctx := context.Background()

	_, err := accounts.Create(ctx, domain.Account{AccountNumber: "ACC1", CustomerID: 1, Balance: decimal.NewFromInt(100), Status: domain.AccountStatusActive})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, accounts.UpdateBalance(ctx, "ACC1", decimal.NewFromInt(1)))
		_, err := accounts.Create(ctx, domain.Account{AccountNumber: "ACC2", CustomerID: 1})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	account, err := accounts.GetByAccountNumber(ctx, "ACC1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)))

	exists, err := accounts.ExistsByAccountNumber(ctx, "ACC2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetMissingReturnsRecordNotFound(t *testing.T) {
	store := NewStore()

	_, err := NewCardRepository(store).GetByCardNumber(context.Background(), "1234567890123456")
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
}

func TestSumCompletedActivityCountsEachRecordOnce(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	accounts := NewAccountRepository(store)
	transactions := NewTransactionRepository(store)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, number := range []string{"A", "B"} {
		_, err := accounts.Create(ctx, domain.Account{AccountNumber: number, CustomerID: 7, Status: domain.AccountStatusActive})
		require.NoError(t, err)
	}

	seed := []domain.Transaction{
		{ID: "1", DebitAccountNumber: "A", CreditAccountNumber: "B", Amount: decimal.NewFromInt(10), TransactionDate: now, Status: domain.TransactionStatusCompleted, Type: domain.TransactionTypeTransfer},
		{ID: "2", DebitAccountNumber: "A", CreditAccountNumber: "A", Amount: decimal.NewFromInt(5), TransactionDate: now, Status: domain.TransactionStatusCompleted, Type: domain.TransactionTypeDeposit},
		{ID: "3", DebitAccountNumber: "A", CreditAccountNumber: "B", Amount: decimal.NewFromInt(99), TransactionDate: now, Status: domain.TransactionStatusPending, Type: domain.TransactionTypeTransfer},
		{ID: "4", DebitAccountNumber: "A", CreditAccountNumber: "B", Amount: decimal.NewFromInt(99), TransactionDate: now.AddDate(0, -2, 0), Status: domain.TransactionStatusCompleted, Type: domain.TransactionTypeTransfer},
	}
	for _, tx := range seed {
		_, err := transactions.Create(ctx, tx)
		require.NoError(t, err)
	}

	total, err := transactions.SumCompletedActivity(ctx, 7, now.AddDate(0, -1, 0), now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(15)), total.String())

	debits, err := transactions.SumCompletedDebits(ctx, 7, domain.TransactionTypeTransfer, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, debits.Equal(decimal.NewFromInt(10)), debits.String())
}

func TestListPagesAreSortedNewestFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	accounts := NewAccountRepository(store)
	cards := NewCardRepository(store)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := accounts.Create(ctx, domain.Account{AccountNumber: "A", CustomerID: 1, Status: domain.AccountStatusActive})
	require.NoError(t, err)
	for i, number := range []string{"1000000000000001", "1000000000000002", "1000000000000003"} {
		_, err := cards.Create(ctx, domain.Card{CardNumber: number, AccountNumber: "A", IssueDate: base.AddDate(0, 0, i), Status: domain.CardStatusActive})
		require.NoError(t, err)
	}

	items, total, err := cards.ListByCustomerIDPaged(ctx, 1, commons.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "1000000000000003", items[0].CardNumber)
	assert.Equal(t, "1000000000000002", items[1].CardNumber)

	items, _, err = cards.ListByCustomerIDPaged(ctx, 1, commons.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1000000000000001", items[0].CardNumber)
}
